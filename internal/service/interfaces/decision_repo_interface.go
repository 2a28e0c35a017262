package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mutual/loanlifecycle/internal/pkg/store/models"
)

// DecisionRepositoryInterface is the append-only audit trail of lifecycle
// decisions. There is deliberately no update or delete.
type DecisionRepositoryInterface interface {
	AppendDecision(ctx context.Context, decision models.ApprovalDecision) error
	ListDecisionsByLoan(ctx context.Context, loanID primitive.ObjectID) ([]models.ApprovalDecision, error)
}

type DecisionStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ApprovalDecision, error)
}
