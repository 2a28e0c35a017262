package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/logger"
	"mutual/loanlifecycle/internal/pkg/models"
	storemodels "mutual/loanlifecycle/internal/pkg/store/models"
	"mutual/loanlifecycle/internal/service/interfaces"
	"mutual/loanlifecycle/internal/service/schedule"
)

const minMotiveLength = 8

// LifecycleService owns the loan entity and its status state machine.
// Approve and Reject are deliberately not idempotent: repeating a decision
// on a settled loan is reported as a conflict, never silently accepted,
// because re-approving must not regenerate a schedule.
type LifecycleService struct {
	loanRepo        interfaces.LoanRepositoryInterface
	loanTypeRepo    interfaces.LoanTypeRepositoryInterface
	installmentRepo interfaces.InstallmentRepositoryInterface
	decisionRepo    interfaces.DecisionRepositoryInterface
	associates      interfaces.AssociateCheckerInterface
	notifier        interfaces.NotifierInterface
	now             func() time.Time
}

func NewLifecycleService(
	loanRepo interfaces.LoanRepositoryInterface,
	loanTypeRepo interfaces.LoanTypeRepositoryInterface,
	installmentRepo interfaces.InstallmentRepositoryInterface,
	decisionRepo interfaces.DecisionRepositoryInterface,
	associates interfaces.AssociateCheckerInterface,
	notifier interfaces.NotifierInterface,
	now func() time.Time,
) *LifecycleService {
	if now == nil {
		now = time.Now
	}
	return &LifecycleService{
		loanRepo:        loanRepo,
		loanTypeRepo:    loanTypeRepo,
		installmentRepo: installmentRepo,
		decisionRepo:    decisionRepo,
		associates:      associates,
		notifier:        notifier,
		now:             now,
	}
}

// RequestLoan creates a loan in Pendiente against an active loan type.
func (s *LifecycleService) RequestLoan(
	ctx context.Context,
	associateID string,
	loanTypeID primitive.ObjectID,
	amount float64,
	term int,
	loanDate time.Time,
) (*storemodels.Loan, error) {
	if term <= 0 {
		return nil, models.NewValidationError(consts.MsgInvalidTerm)
	}

	if s.associates != nil {
		if err := s.associates.CheckAssociate(ctx, associateID); err != nil {
			return nil, err
		}
	}

	loanType, err := s.loanTypeRepo.GetLoanTypeByID(ctx, loanTypeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError(consts.MsgLoanTypeNotFound)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}
	if !loanType.Active {
		return nil, models.NewValidationError(consts.MsgLoanTypeInactive)
	}
	if amount <= 0 || amount > loanType.MaxAmount {
		return nil, models.NewValidationError(consts.MsgAmountOutOfRange)
	}

	loan := storemodels.Loan{
		AssociateID:  associateID,
		LoanTypeID:   loanTypeID,
		Amount:       amount,
		InterestRate: loanType.InterestRate,
		Term:         term,
		LoanDate:     loanDate,
		DueDate:      loanDate.AddDate(0, term, 0),
		Status:       consts.LoanStatusPendiente,
		InstallmentsSummary: storemodels.InstallmentsSummary{
			Current: 0,
			Total:   term,
		},
		CreatedAt: s.now().UTC(),
	}

	id, err := s.loanRepo.CreateLoan(context.WithoutCancel(ctx), loan)
	if err != nil {
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	loan.ID = id
	return &loan, nil
}

// Approve transitions a pending loan to Aprobado and materializes its
// installment schedule, all-or-nothing.
func (s *LifecycleService) Approve(
	ctx context.Context,
	loanID primitive.ObjectID,
	motive string,
	actorRole string,
) (*storemodels.Loan, error) {
	if err := validateMotive(motive); err != nil {
		return nil, err
	}
	if !consts.CanDecideLoan(actorRole) {
		return nil, models.NewAuthorizationError(consts.MsgRoleNotAllowed)
	}

	// Writes run to completion even if the caller stops waiting.
	writeCtx := context.WithoutCancel(ctx)

	loan, err := s.loanRepo.SwapStatus(writeCtx, loanID, consts.LoanStatusPendiente, consts.LoanStatusAprobado)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, s.explainGuardMiss(ctx, loanID)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	installments, err := schedule.Generate(loanID, loan.Amount, loan.Term, loan.LoanDate)
	if err == nil {
		err = s.installmentRepo.CreateSchedule(writeCtx, installments)
	}
	if err != nil {
		s.rollbackApproval(writeCtx, loanID)
		return nil, models.NewServerError(consts.MsgScheduleFailed)
	}

	// Audited only once the schedule is in place, so a rolled-back approval
	// leaves no Aprobado decision behind.
	s.appendDecision(writeCtx, loanID, consts.LoanStatusAprobado, motive, actorRole)

	if err := s.loanRepo.SetInstallmentsSummary(writeCtx, loanID, 0, loan.Term); err != nil {
		logger.CtxError(ctx, "Failed to reset installments summary", err, slog.String("loan_id", loanID.Hex()))
	}

	s.notifyDecision(ctx, loan, consts.LoanStatusAprobado, motive)

	logger.CtxInfo(ctx, "Loan approved",
		slog.String("loan_id", loanID.Hex()),
		slog.String("actor_role", actorRole),
		slog.Int("installments", len(installments)),
	)
	return loan, nil
}

// Reject transitions a pending loan to Rechazado. No schedule is generated.
func (s *LifecycleService) Reject(
	ctx context.Context,
	loanID primitive.ObjectID,
	motive string,
	actorRole string,
) (*storemodels.Loan, error) {
	if err := validateMotive(motive); err != nil {
		return nil, err
	}
	if !consts.CanDecideLoan(actorRole) {
		return nil, models.NewAuthorizationError(consts.MsgRoleNotAllowed)
	}

	writeCtx := context.WithoutCancel(ctx)

	loan, err := s.loanRepo.SwapStatus(writeCtx, loanID, consts.LoanStatusPendiente, consts.LoanStatusRechazado)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, s.explainGuardMiss(ctx, loanID)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	s.appendDecision(writeCtx, loanID, consts.LoanStatusRechazado, motive, actorRole)
	s.notifyDecision(ctx, loan, consts.LoanStatusRechazado, motive)

	logger.CtxInfo(ctx, "Loan rejected",
		slog.String("loan_id", loanID.Hex()),
		slog.String("actor_role", actorRole),
	)
	return loan, nil
}

// Activate moves an approved loan into servicing. Driven by the
// disbursement collaborator, not by a committee decision, so it carries no
// motive or role gate.
func (s *LifecycleService) Activate(ctx context.Context, loanID primitive.ObjectID) (*storemodels.Loan, error) {
	loan, err := s.loanRepo.SwapStatus(
		context.WithoutCancel(ctx),
		loanID,
		consts.LoanStatusAprobado,
		consts.LoanStatusVigente,
	)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			existing, lookupErr := s.loanRepo.GetLoanByID(ctx, loanID)
			if lookupErr != nil {
				return nil, models.NewNotFoundError(consts.MsgLoanNotFound)
			}
			logger.CtxWarn(ctx, "Activation refused",
				slog.String("loan_id", loanID.Hex()),
				slog.String("status", string(existing.Status)),
			)
			return nil, models.NewConflictError(consts.MsgLoanNotApproved)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	logger.CtxInfo(ctx, "Loan activated", slog.String("loan_id", loanID.Hex()))
	return loan, nil
}

func (s *LifecycleService) GetLoan(ctx context.Context, loanID primitive.ObjectID) (*storemodels.Loan, error) {
	loan, err := s.loanRepo.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError(consts.MsgLoanNotFound)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}
	return loan, nil
}

func (s *LifecycleService) ListLoans(ctx context.Context, status consts.LoanStatus) ([]storemodels.Loan, error) {
	if status != "" && !status.IsValid() {
		return nil, models.NewValidationError(consts.MsgInvalidStatus)
	}

	loans, err := s.loanRepo.ListLoans(ctx, status)
	if err != nil {
		return nil, models.NewServerError(consts.MsgUnexpected)
	}
	return loans, nil
}

func (s *LifecycleService) ListDecisions(
	ctx context.Context,
	loanID primitive.ObjectID,
) ([]storemodels.ApprovalDecision, error) {
	decisions, err := s.decisionRepo.ListDecisionsByLoan(ctx, loanID)
	if err != nil {
		return nil, models.NewServerError(consts.MsgUnexpected)
	}
	return decisions, nil
}

// explainGuardMiss turns a failed status CAS into the caller-facing error:
// not found, already approved/rejected, or more generally not pending.
func (s *LifecycleService) explainGuardMiss(ctx context.Context, loanID primitive.ObjectID) error {
	existing, err := s.loanRepo.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.NewNotFoundError(consts.MsgLoanNotFound)
		}
		return models.NewServerError(consts.MsgUnexpected)
	}

	switch existing.Status {
	case consts.LoanStatusAprobado:
		return models.NewConflictError(consts.MsgLoanAlreadyApproved)
	case consts.LoanStatusRechazado:
		return models.NewConflictError(consts.MsgLoanAlreadyRejected)
	default:
		return models.NewConflictError(consts.MsgLoanNotPending)
	}
}

// rollbackApproval undoes a half-applied approval so the loan is never left
// Aprobado without a schedule.
func (s *LifecycleService) rollbackApproval(ctx context.Context, loanID primitive.ObjectID) {
	if _, err := s.installmentRepo.DeleteScheduleByLoan(ctx, loanID); err != nil {
		logger.CtxError(ctx, "Rollback: failed to delete partial schedule", err, slog.String("loan_id", loanID.Hex()))
	}
	if _, err := s.loanRepo.SwapStatus(ctx, loanID, consts.LoanStatusAprobado, consts.LoanStatusPendiente); err != nil {
		logger.CtxError(ctx, "Rollback: failed to revert loan status", err, slog.String("loan_id", loanID.Hex()))
		return
	}
	logger.CtxWarn(ctx, "Approval rolled back after schedule failure", slog.String("loan_id", loanID.Hex()))
}

// appendDecision records the audit entry. The status swap already
// succeeded, so an audit failure is logged rather than surfaced.
func (s *LifecycleService) appendDecision(
	ctx context.Context,
	loanID primitive.ObjectID,
	newStatus consts.LoanStatus,
	motive, actorRole string,
) {
	decision := storemodels.ApprovalDecision{
		LoanID:    loanID,
		NewStatus: newStatus,
		Motive:    strings.TrimSpace(motive),
		ActorRole: actorRole,
		Timestamp: s.now().UTC(),
	}
	if err := s.decisionRepo.AppendDecision(ctx, decision); err != nil {
		logger.CtxError(ctx, "Failed to append approval decision", err, slog.String("loan_id", loanID.Hex()))
	}
}

func (s *LifecycleService) notifyDecision(
	ctx context.Context,
	loan *storemodels.Loan,
	status consts.LoanStatus,
	motive string,
) {
	if s.notifier == nil {
		return
	}

	notifyCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.notifier.NotifyDecision(notifyCtx, loan.AssociateID, loan.ID.Hex(), status, motive); err != nil {
			logger.CtxWarn(ctx, "Decision notification failed",
				slog.String("loan_id", loan.ID.Hex()),
				slog.String("error", err.Error()),
			)
		}
	}()
}

func validateMotive(motive string) error {
	if utf8.RuneCountInString(strings.TrimSpace(motive)) < minMotiveLength {
		return models.NewValidationError(consts.MsgMotiveTooShort)
	}
	return nil
}
