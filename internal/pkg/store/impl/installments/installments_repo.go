package installments

import (
	"context"
	"errors"
	"log/slog"
	"time"

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

type InstallmentRepository struct {
	repo interfaces.InstallmentStoreInterface
}

func NewInstallmentsRepository(client *mongodb.MongoClient) *InstallmentRepository {
	collection := client.Database.Collection(consts.InstallmentsCollection)
	repo := repository.NewMongoRepository[models.Installment](collection)
	return &InstallmentRepository{repo: repo}
}

func NewInstallmentRepositoryWithInterface(repo interfaces.InstallmentStoreInterface) *InstallmentRepository {
	return &InstallmentRepository{repo: repo}
}

func (ir *InstallmentRepository) CreateSchedule(ctx context.Context, installments []models.Installment) error {
	if len(installments) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(installments))
	for _, inst := range installments {
		docs = append(docs, inst)
	}

	if _, err := ir.repo.CreateMany(ctx, docs); err != nil {
		logger.CtxError(ctx, "Error inserting installment schedule", err,
			slog.String("loan_id", installments[0].LoanID.Hex()),
			slog.Int("count", len(installments)),
		)
		return err
	}

	logger.CtxInfo(ctx, "Installment schedule persisted",
		slog.String("loan_id", installments[0].LoanID.Hex()),
		slog.Int("count", len(installments)),
	)
	return nil
}

func (ir *InstallmentRepository) DeleteScheduleByLoan(ctx context.Context, loanID primitive.ObjectID) (int64, error) {
	deleted, err := ir.repo.DeleteMany(ctx, bson.M{"loanId": loanID})
	if err != nil {
		logger.CtxError(ctx, "Error deleting installment schedule", err, slog.String("loan_id", loanID.Hex()))
		return 0, err
	}
	return deleted, nil
}

func (ir *InstallmentRepository) GetScheduleByLoan(
	ctx context.Context,
	loanID primitive.ObjectID,
	dateFrom, dateTo *time.Time,
) ([]models.Installment, error) {
	filter := bson.M{"loanId": loanID}

	// Inclusive due-date bounds
	dueDateFilter := bson.M{}
	if dateFrom != nil {
		dueDateFilter["$gte"] = *dateFrom
	}
	if dateTo != nil {
		dueDateFilter["$lte"] = *dateTo
	}
	if len(dueDateFilter) > 0 {
		filter["dueDate"] = dueDateFilter
	}

	schedule, err := ir.repo.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "installmentNumber", Value: 1}}))
	if err != nil {
		logger.CtxError(ctx, "Error fetching schedule", err, slog.String("loan_id", loanID.Hex()))
		return nil, err
	}

	return schedule, nil
}

func (ir *InstallmentRepository) GetInstallmentByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*models.Installment, error) {
	inst, err := ir.repo.FindOne(ctx, bson.M{"_id": id}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "No installment found", slog.String("installment_id", id.Hex()))
			return nil, err
		}
		logger.CtxError(ctx, "Error finding installment", err, slog.String("installment_id", id.Hex()))
		return nil, err
	}
	return &inst, nil
}

func (ir *InstallmentRepository) ListUncollectedDueBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]models.Installment, error) {
	filter := bson.M{
		"collected": false,
		"dueDate":   bson.M{"$lt": cutoff},
	}

	overdue, err := ir.repo.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}}))
	if err != nil {
		logger.CtxError(ctx, "Error fetching uncollected installments", err)
		return nil, err
	}

	logger.CtxDebug(ctx, "Fetched uncollected installments", slog.Int("count", len(overdue)))
	return overdue, nil
}

func (ir *InstallmentRepository) CountUncollectedByLoan(
	ctx context.Context,
	loanID primitive.ObjectID,
) (int64, error) {
	return ir.repo.CountDocuments(ctx, bson.M{"loanId": loanID, "collected": false})
}

func (ir *InstallmentRepository) CountCollectedByLoan(
	ctx context.Context,
	loanID primitive.ObjectID,
) (int64, error) {
	return ir.repo.CountDocuments(ctx, bson.M{"loanId": loanID, "collected": true})
}

// MarkCollected records the collection under a collected:false guard so that
// two concurrent collection attempts succeed exactly once.
func (ir *InstallmentRepository) MarkCollected(
	ctx context.Context,
	id primitive.ObjectID,
	methodID primitive.ObjectID,
	receipt string,
	at time.Time,
) (*models.Installment, error) {
	filter := bson.M{"_id": id, "collected": false}
	update := bson.M{"$set": bson.M{
		"collected":          true,
		"collectionMethodId": methodID,
		"collectionReceipt":  receipt,
		"collectedAt":        at,
	}}

	inst, err := ir.repo.FindOneAndUpdate(ctx, filter, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "Collection guard did not match", slog.String("installment_id", id.Hex()))
			return nil, err
		}
		logger.CtxError(ctx, "Error marking installment collected", err, slog.String("installment_id", id.Hex()))
		return nil, err
	}

	logger.CtxInfo(ctx, "Installment collected",
		slog.String("installment_id", id.Hex()),
		slog.String("collection_method_id", methodID.Hex()),
	)
	return &inst, nil
}
