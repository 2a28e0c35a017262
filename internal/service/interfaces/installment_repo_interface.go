package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mutual/loanlifecycle/internal/pkg/store/models"
)

type InstallmentRepositoryInterface interface {
	// CreateSchedule persists the whole schedule of a loan as one ordered batch.
	CreateSchedule(ctx context.Context, installments []models.Installment) error
	DeleteScheduleByLoan(ctx context.Context, loanID primitive.ObjectID) (int64, error)
	GetScheduleByLoan(ctx context.Context, loanID primitive.ObjectID, dateFrom, dateTo *time.Time) ([]models.Installment, error)
	GetInstallmentByID(ctx context.Context, id primitive.ObjectID) (*models.Installment, error)
	ListUncollectedDueBefore(ctx context.Context, cutoff time.Time) ([]models.Installment, error)
	CountUncollectedByLoan(ctx context.Context, loanID primitive.ObjectID) (int64, error)
	CountCollectedByLoan(ctx context.Context, loanID primitive.ObjectID) (int64, error)
	// MarkCollected flips collected under a collected:false guard, failing
	// with mongo.ErrNoDocuments when the installment is absent or already
	// collected.
	MarkCollected(
		ctx context.Context,
		id primitive.ObjectID,
		methodID primitive.ObjectID,
		receipt string,
		at time.Time,
	) (*models.Installment, error)
}

type InstallmentStoreInterface interface {
	CreateMany(ctx context.Context, documents []interface{}) (*mongo.InsertManyResult, error)
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Installment, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}) (models.Installment, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Installment, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}
