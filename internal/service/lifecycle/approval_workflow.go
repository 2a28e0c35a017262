package lifecycle

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
	storemodels "mutual/loanlifecycle/internal/pkg/store/models"
)

// ApprovalWorkflow is the thin orchestration over the guarded transitions.
// It maps a requested target status onto the one operation allowed to reach
// it; anything else is a validation error before any state is touched.
type ApprovalWorkflow struct {
	lifecycle *LifecycleService
}

func NewApprovalWorkflow(lifecycle *LifecycleService) *ApprovalWorkflow {
	return &ApprovalWorkflow{lifecycle: lifecycle}
}

// Decide applies the requested transition. Pendiente and Finalizado are
// never valid targets here: the first is the creation state, the second is
// reached only by exhausting the schedule.
func (w *ApprovalWorkflow) Decide(
	ctx context.Context,
	loanID primitive.ObjectID,
	target consts.LoanStatus,
	motive string,
	actorRole string,
) (*storemodels.Loan, error) {
	switch target {
	case consts.LoanStatusAprobado:
		return w.lifecycle.Approve(ctx, loanID, motive, actorRole)
	case consts.LoanStatusRechazado:
		return w.lifecycle.Reject(ctx, loanID, motive, actorRole)
	case consts.LoanStatusVigente:
		return w.lifecycle.Activate(ctx, loanID)
	default:
		return nil, models.NewValidationError(consts.MsgInvalidStatus)
	}
}
