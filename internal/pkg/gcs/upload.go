package gcs

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/logger"
)

type GCSClient struct {
	Client     *storage.Client
	BucketName string
	FolderName string
}

func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSClient{
		Client:     client,
		BucketName: bucketName,
		FolderName: consts.GCSReportFolderName,
	}, nil
}

func (g *GCSClient) Close(ctx context.Context) {
	if g.Client == nil {
		return
	}
	if err := g.Client.Close(); err != nil {
		logger.CtxError(ctx, "Error closing GCS client", err)
	}
}

// Upload writes the object only if it does not already exist, so a retried
// export never clobbers a previous run.
func (g *GCSClient) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	fullName := fmt.Sprintf("%s/%s", g.FolderName, objectName)
	object := g.Client.Bucket(g.BucketName).Object(fullName)

	writer := object.If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := writer.Write(data); err != nil {
		logger.CtxError(ctx, "Error uploading report to GCS bucket", err, slog.String("object", fullName))
		return err
	}
	if err := writer.Close(); err != nil {
		logger.CtxError(ctx, "Error closing GCS writer", err, slog.String("object", fullName))
		return err
	}

	logger.CtxInfo(ctx, "Report uploaded to GCS bucket", slog.String("object", fullName))
	return nil
}
