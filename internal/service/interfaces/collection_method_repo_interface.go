package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mutual/loanlifecycle/internal/pkg/store/models"
)

type CollectionMethodRepositoryInterface interface {
	CreateMethods(ctx context.Context, methods []models.CollectionMethod) ([]primitive.ObjectID, error)
	DeleteMethodsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	GetMethodByID(ctx context.Context, id primitive.ObjectID) (*models.CollectionMethod, error)
	FindMethodsByLowerCodes(ctx context.Context, lowerCodes []string) ([]models.CollectionMethod, error)
	ListMethods(ctx context.Context) ([]models.CollectionMethod, error)
	UpdateMethod(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error
	SetMethodActive(ctx context.Context, id primitive.ObjectID, active bool) error
}

type CollectionMethodStoreInterface interface {
	CreateMany(ctx context.Context, documents []interface{}) (*mongo.InsertManyResult, error)
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.CollectionMethod, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.CollectionMethod, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
}
