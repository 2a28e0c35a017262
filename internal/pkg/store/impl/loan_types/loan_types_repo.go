package loantypes

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

type LoanTypeRepository struct {
	repo interfaces.LoanTypeStoreInterface
}

func NewLoanTypesRepository(client *mongodb.MongoClient) *LoanTypeRepository {
	collection := client.Database.Collection(consts.LoanTypesCollection)
	repo := repository.NewMongoRepository[models.LoanType](collection)
	return &LoanTypeRepository{repo: repo}
}

// EnsureIndexes creates the unique index on code, so two concurrent creates
// with the same code cannot both land.
func EnsureIndexes(ctx context.Context, client *mongodb.MongoClient) error {
	collection := client.Database.Collection(consts.LoanTypesCollection)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_code"),
	})
	if err != nil {
		logger.CtxError(ctx, "Error creating loan type code index", err)
		return err
	}
	return nil
}

func NewLoanTypeRepositoryWithInterface(repo interfaces.LoanTypeStoreInterface) *LoanTypeRepository {
	return &LoanTypeRepository{repo: repo}
}

func (tr *LoanTypeRepository) CreateLoanType(ctx context.Context, loanType models.LoanType) (primitive.ObjectID, error) {
	// Codes are stored uppercased so uniqueness is case-insensitive.
	loanType.Code = strings.ToUpper(strings.TrimSpace(loanType.Code))

	result, err := tr.repo.Create(ctx, loanType)
	if err != nil {
		logger.CtxError(ctx, "Error inserting loan type", err, slog.String("code", loanType.Code))
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	logger.CtxInfo(ctx, "Loan type created", slog.String("loan_type_id", id.Hex()), slog.String("code", loanType.Code))
	return id, nil
}

func (tr *LoanTypeRepository) GetLoanTypeByID(ctx context.Context, id primitive.ObjectID) (*models.LoanType, error) {
	loanType, err := tr.repo.FindOne(ctx, bson.M{"_id": id}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "No loan type found", slog.String("loan_type_id", id.Hex()))
			return nil, err
		}
		logger.CtxError(ctx, "Error finding loan type", err, slog.String("loan_type_id", id.Hex()))
		return nil, err
	}
	return &loanType, nil
}

func (tr *LoanTypeRepository) GetLoanTypeByCode(ctx context.Context, code string) (*models.LoanType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	loanType, err := tr.repo.FindOne(ctx, bson.M{"code": normalized}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		logger.CtxError(ctx, "Error finding loan type by code", err, slog.String("code", normalized))
		return nil, err
	}
	return &loanType, nil
}

func (tr *LoanTypeRepository) ListLoanTypes(ctx context.Context, activeOnly bool) ([]models.LoanType, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	loanTypes, err := tr.repo.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		logger.CtxError(ctx, "Error listing loan types", err)
		return nil, err
	}
	return loanTypes, nil
}

// DeactivateLoanType clears the active flag under an active:true guard.
// Existing loans referencing the type are untouched.
func (tr *LoanTypeRepository) DeactivateLoanType(ctx context.Context, id primitive.ObjectID) (*models.LoanType, error) {
	filter := bson.M{"_id": id, "active": true}
	update := bson.M{"$set": bson.M{"active": false}}

	loanType, err := tr.repo.FindOneAndUpdate(ctx, filter, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "Deactivation guard did not match", slog.String("loan_type_id", id.Hex()))
			return nil, err
		}
		logger.CtxError(ctx, "Error deactivating loan type", err, slog.String("loan_type_id", id.Hex()))
		return nil, err
	}

	logger.CtxInfo(ctx, "Loan type deactivated", slog.String("loan_type_id", id.Hex()))
	return &loanType, nil
}
