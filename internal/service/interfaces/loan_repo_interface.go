package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/store/models"
)

type LoanRepositoryInterface interface {
	CreateLoan(ctx context.Context, loan models.Loan) (primitive.ObjectID, error)
	GetLoanByID(ctx context.Context, id primitive.ObjectID) (*models.Loan, error)
	GetLoansByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Loan, error)
	ListLoans(ctx context.Context, status consts.LoanStatus) ([]models.Loan, error)
	// SwapStatus is the compare-and-swap transition guard: it succeeds only
	// when the loan is currently in `from`, returning mongo.ErrNoDocuments
	// otherwise.
	SwapStatus(ctx context.Context, id primitive.ObjectID, from, to consts.LoanStatus) (*models.Loan, error)
	SetInstallmentsSummary(ctx context.Context, id primitive.ObjectID, current, total int) error
}

type LoanStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Loan, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}) (models.Loan, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Loan, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
}
