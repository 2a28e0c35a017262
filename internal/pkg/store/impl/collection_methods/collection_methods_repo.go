package collectionmethods

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mutual/loanlifecycle/internal/pkg/consts"
	mongodb "mutual/loanlifecycle/internal/pkg/db/mongo"
	"mutual/loanlifecycle/internal/pkg/logger"
	"mutual/loanlifecycle/internal/pkg/store/models"
	"mutual/loanlifecycle/internal/pkg/store/repository"
	"mutual/loanlifecycle/internal/service/interfaces"
)

type CollectionMethodRepository struct {
	repo interfaces.CollectionMethodStoreInterface
}

func NewCollectionMethodsRepository(client *mongodb.MongoClient) *CollectionMethodRepository {
	collection := client.Database.Collection(consts.CollectionMethodsCollection)
	repo := repository.NewMongoRepository[models.CollectionMethod](collection)
	return &CollectionMethodRepository{repo: repo}
}

// EnsureIndexes creates the unique index on codeLower, so case-insensitive
// code uniqueness holds even across concurrent batches.
func EnsureIndexes(ctx context.Context, client *mongodb.MongoClient) error {
	collection := client.Database.Collection(consts.CollectionMethodsCollection)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "codeLower", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_code_lower"),
	})
	if err != nil {
		logger.CtxError(ctx, "Error creating collection method code index", err)
		return err
	}
	return nil
}

func NewCollectionMethodRepositoryWithInterface(
	repo interfaces.CollectionMethodStoreInterface,
) *CollectionMethodRepository {
	return &CollectionMethodRepository{repo: repo}
}

// CreateMethods inserts the batch in order. The caller owns atomicity: on a
// partial failure it compensates with DeleteMethodsByIDs.
func (cr *CollectionMethodRepository) CreateMethods(
	ctx context.Context,
	methods []models.CollectionMethod,
) ([]primitive.ObjectID, error) {
	docs := make([]interface{}, 0, len(methods))
	for i := range methods {
		methods[i].CodeLower = strings.ToLower(strings.TrimSpace(methods[i].Code))
		docs = append(docs, methods[i])
	}

	result, err := cr.repo.CreateMany(ctx, docs)

	var ids []primitive.ObjectID
	if result != nil {
		for _, inserted := range result.InsertedIDs {
			if id, ok := inserted.(primitive.ObjectID); ok {
				ids = append(ids, id)
			}
		}
	}

	if err != nil {
		logger.CtxError(ctx, "Error inserting collection methods", err, slog.Int("count", len(methods)))
		return ids, err
	}

	logger.CtxInfo(ctx, "Collection methods registered", slog.Int("count", len(ids)))
	return ids, nil
}

func (cr *CollectionMethodRepository) DeleteMethodsByIDs(
	ctx context.Context,
	ids []primitive.ObjectID,
) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	deleted, err := cr.repo.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		logger.CtxError(ctx, "Error deleting collection methods", err, slog.Int("count", len(ids)))
		return 0, err
	}
	return deleted, nil
}

func (cr *CollectionMethodRepository) GetMethodByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*models.CollectionMethod, error) {
	method, err := cr.repo.FindOne(ctx, bson.M{"_id": id}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "No collection method found", slog.String("method_id", id.Hex()))
			return nil, err
		}
		logger.CtxError(ctx, "Error finding collection method", err, slog.String("method_id", id.Hex()))
		return nil, err
	}
	return &method, nil
}

func (cr *CollectionMethodRepository) FindMethodsByLowerCodes(
	ctx context.Context,
	lowerCodes []string,
) ([]models.CollectionMethod, error) {
	if len(lowerCodes) == 0 {
		return nil, nil
	}

	methods, err := cr.repo.Find(ctx, bson.M{"codeLower": bson.M{"$in": lowerCodes}})
	if err != nil {
		logger.CtxError(ctx, "Error finding collection methods by code", err)
		return nil, err
	}
	return methods, nil
}

func (cr *CollectionMethodRepository) ListMethods(ctx context.Context) ([]models.CollectionMethod, error) {
	methods, err := cr.repo.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		logger.CtxError(ctx, "Error listing collection methods", err)
		return nil, err
	}
	return methods, nil
}

func (cr *CollectionMethodRepository) UpdateMethod(
	ctx context.Context,
	id primitive.ObjectID,
	fields map[string]interface{},
) error {
	if code, ok := fields["code"].(string); ok {
		fields["codeLower"] = strings.ToLower(strings.TrimSpace(code))
	}

	update := bson.M{}
	for k, v := range fields {
		update[k] = v
	}

	if err := cr.repo.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		logger.CtxError(ctx, "Error updating collection method", err, slog.String("method_id", id.Hex()))
		return err
	}

	logger.CtxInfo(ctx, "Collection method updated", slog.String("method_id", id.Hex()))
	return nil
}

func (cr *CollectionMethodRepository) SetMethodActive(
	ctx context.Context,
	id primitive.ObjectID,
	active bool,
) error {
	if err := cr.repo.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"isActive": active}); err != nil {
		logger.CtxError(ctx, "Error toggling collection method", err,
			slog.String("method_id", id.Hex()),
			slog.Bool("active", active),
		)
		return err
	}

	logger.CtxInfo(ctx, fmt.Sprintf("Collection method set active=%t", active), slog.String("method_id", id.Hex()))
	return nil
}
