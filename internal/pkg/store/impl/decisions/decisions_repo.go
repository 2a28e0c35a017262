package decisions

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mutual/loanlifecycle/internal/pkg/consts"
	mongodb "mutual/loanlifecycle/internal/pkg/db/mongo"
	"mutual/loanlifecycle/internal/pkg/logger"
	"mutual/loanlifecycle/internal/pkg/store/models"
	"mutual/loanlifecycle/internal/pkg/store/repository"
	"mutual/loanlifecycle/internal/service/interfaces"
)

type DecisionRepository struct {
	repo interfaces.DecisionStoreInterface
}

func NewDecisionsRepository(client *mongodb.MongoClient) *DecisionRepository {
	collection := client.Database.Collection(consts.ApprovalDecisionsCollection)
	repo := repository.NewMongoRepository[models.ApprovalDecision](collection)
	return &DecisionRepository{repo: repo}
}

func NewDecisionRepositoryWithInterface(repo interfaces.DecisionStoreInterface) *DecisionRepository {
	return &DecisionRepository{repo: repo}
}

func (dr *DecisionRepository) AppendDecision(ctx context.Context, decision models.ApprovalDecision) error {
	if _, err := dr.repo.Create(ctx, decision); err != nil {
		logger.CtxError(ctx, "Error appending approval decision", err,
			slog.String("loan_id", decision.LoanID.Hex()),
			slog.String("new_status", string(decision.NewStatus)),
		)
		return err
	}

	logger.CtxInfo(ctx, "Approval decision recorded",
		slog.String("loan_id", decision.LoanID.Hex()),
		slog.String("new_status", string(decision.NewStatus)),
		slog.String("actor_role", decision.ActorRole),
	)
	return nil
}

func (dr *DecisionRepository) ListDecisionsByLoan(
	ctx context.Context,
	loanID primitive.ObjectID,
) ([]models.ApprovalDecision, error) {
	filter := bson.M{"loanId": loanID}

	decisions, err := dr.repo.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		logger.CtxError(ctx, "Error listing approval decisions", err, slog.String("loan_id", loanID.Hex()))
		return nil, err
	}
	return decisions, nil
}
