package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mutual/loanlifecycle/internal/pkg/store/models"
)

type LoanTypeRepositoryInterface interface {
	CreateLoanType(ctx context.Context, loanType models.LoanType) (primitive.ObjectID, error)
	GetLoanTypeByID(ctx context.Context, id primitive.ObjectID) (*models.LoanType, error)
	GetLoanTypeByCode(ctx context.Context, code string) (*models.LoanType, error)
	ListLoanTypes(ctx context.Context, activeOnly bool) ([]models.LoanType, error)
	// DeactivateLoanType succeeds only while the type is still active,
	// returning mongo.ErrNoDocuments otherwise.
	DeactivateLoanType(ctx context.Context, id primitive.ObjectID) (*models.LoanType, error)
}

type LoanTypeStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.LoanType, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}) (models.LoanType, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.LoanType, error)
}
