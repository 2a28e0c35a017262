package overdue

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/logger"
	"mutual/loanlifecycle/internal/pkg/models"
	"mutual/loanlifecycle/internal/service/interfaces"
)

// ReportService exports the filtered overdue set as a CSV object in the
// report bucket.
type ReportService struct {
	overdue  *OverdueService
	uploader interfaces.ReportUploaderInterface
}

func NewReportService(overdue *OverdueService, uploader interfaces.ReportUploaderInterface) *ReportService {
	return &ReportService{overdue: overdue, uploader: uploader}
}

// Export builds the CSV and uploads it, returning the object name.
func (s *ReportService) Export(ctx context.Context, filters Filters) (string, error) {
	rows, err := s.overdue.ListOverdue(ctx, filters)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"LoanId", "InstallmentNumber", "AssociateId", "LoanTypeId",
		"DueDate", "InstallmentAmount", "LoanAmount", "DaysOverdue",
	}
	if err := writer.Write(header); err != nil {
		return "", models.NewServerError(consts.MsgUnexpected)
	}

	for _, row := range rows {
		record := []string{
			row.LoanID.Hex(),
			strconv.Itoa(row.InstallmentNumber),
			row.AssociateID,
			row.LoanTypeID.Hex(),
			row.DueDate.Format(consts.ReportDateFormat),
			fmt.Sprintf("%.2f", row.Amount),
			fmt.Sprintf("%.2f", row.LoanAmount),
			strconv.Itoa(row.DaysOverdue),
		}
		if err := writer.Write(record); err != nil {
			return "", models.NewServerError(consts.MsgUnexpected)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", models.NewServerError(consts.MsgUnexpected)
	}

	objectName := fmt.Sprintf("overdue_report_%s.csv", s.overdue.now().UTC().Format(consts.ReportFileNameDateFormat))
	if err := s.uploader.Upload(ctx, objectName, buf.Bytes(), "text/csv"); err != nil {
		logger.CtxError(ctx, "Overdue report upload failed", err, slog.String("object", objectName))
		return "", models.NewServerError(consts.MsgUnexpected)
	}

	logger.CtxInfo(ctx, "Overdue report exported",
		slog.String("object", objectName),
		slog.Int("rows", len(rows)),
	)
	return objectName, nil
}
