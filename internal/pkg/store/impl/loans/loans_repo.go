package loans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

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

type LoanRepository struct {
	repo interfaces.LoanStoreInterface
}

func NewLoansRepository(client *mongodb.MongoClient) *LoanRepository {
	collection := client.Database.Collection(consts.LoansCollection)
	repo := repository.NewMongoRepository[models.Loan](collection)
	return &LoanRepository{repo: repo}
}

func NewLoanRepositoryWithInterface(repo interfaces.LoanStoreInterface) *LoanRepository {
	return &LoanRepository{repo: repo}
}

func (lr *LoanRepository) CreateLoan(ctx context.Context, loan models.Loan) (primitive.ObjectID, error) {
	result, err := lr.repo.Create(ctx, loan)
	if err != nil {
		logger.CtxError(ctx, "Error inserting loan", err, slog.String("associate_id", loan.AssociateID))
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	logger.CtxInfo(ctx, "Loan created",
		slog.String("loan_id", id.Hex()),
		slog.String("associate_id", loan.AssociateID),
	)
	return id, nil
}

func (lr *LoanRepository) GetLoanByID(ctx context.Context, id primitive.ObjectID) (*models.Loan, error) {
	filter := bson.M{"_id": id}
	loan, err := lr.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "No loan found", slog.String("loan_id", id.Hex()))
			return nil, err
		}
		logger.CtxError(ctx, "Error finding loan by id", err, slog.String("loan_id", id.Hex()))
		return nil, err
	}

	return &loan, nil
}

func (lr *LoanRepository) GetLoansByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Loan, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}}

	loans, err := lr.repo.Find(ctx, filter)
	if err != nil {
		logger.CtxError(ctx, "Error fetching loans by id list", err, slog.Int("count", len(ids)))
		return nil, err
	}

	return loans, nil
}

func (lr *LoanRepository) ListLoans(ctx context.Context, status consts.LoanStatus) ([]models.Loan, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	loans, err := lr.repo.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		logger.CtxError(ctx, "Error listing loans", err, slog.String("status", string(status)))
		return nil, err
	}

	logger.CtxDebug(ctx, "Fetched loans", slog.Int("count", len(loans)), slog.String("status", string(status)))
	return loans, nil
}

// SwapStatus flips the status only when the stored value still equals `from`.
// Two concurrent transitions on the same loan see exactly one match.
func (lr *LoanRepository) SwapStatus(
	ctx context.Context,
	id primitive.ObjectID,
	from, to consts.LoanStatus,
) (*models.Loan, error) {
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to}}

	loan, err := lr.repo.FindOneAndUpdate(ctx, filter, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "Status swap guard did not match",
				slog.String("loan_id", id.Hex()),
				slog.String("from", string(from)),
				slog.String("to", string(to)),
			)
			return nil, err
		}
		logger.CtxError(ctx, "Error swapping loan status", err, slog.String("loan_id", id.Hex()))
		return nil, err
	}

	logger.CtxInfo(ctx, "Loan status updated",
		slog.String("loan_id", id.Hex()),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
	return &loan, nil
}

func (lr *LoanRepository) SetInstallmentsSummary(
	ctx context.Context,
	id primitive.ObjectID,
	current, total int,
) error {
	filter := bson.M{"_id": id}
	update := bson.M{"installmentsSummary": models.InstallmentsSummary{Current: current, Total: total}}

	if err := lr.repo.UpdateOne(ctx, filter, update); err != nil {
		logger.CtxError(ctx, "Error updating installments summary", err, slog.String("loan_id", id.Hex()))
		return err
	}
	return nil
}
