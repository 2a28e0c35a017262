package schedule

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/logger"
	"mutual/loanlifecycle/internal/pkg/models"
	storemodels "mutual/loanlifecycle/internal/pkg/store/models"
	"mutual/loanlifecycle/internal/service/interfaces"
)

// ScheduleService serves stored schedules and records installment
// collections. Generation itself happens inside the approval transition.
type ScheduleService struct {
	loanRepo        interfaces.LoanRepositoryInterface
	installmentRepo interfaces.InstallmentRepositoryInterface
	methodRepo      interfaces.CollectionMethodRepositoryInterface
	now             func() time.Time
}

func NewScheduleService(
	loanRepo interfaces.LoanRepositoryInterface,
	installmentRepo interfaces.InstallmentRepositoryInterface,
	methodRepo interfaces.CollectionMethodRepositoryInterface,
	now func() time.Time,
) *ScheduleService {
	if now == nil {
		now = time.Now
	}
	return &ScheduleService{
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		methodRepo:      methodRepo,
		now:             now,
	}
}

// GetSchedule returns the stored schedule of a loan, optionally restricted
// to an inclusive due-date window. Read-only and safely retryable.
func (s *ScheduleService) GetSchedule(
	ctx context.Context,
	loanID primitive.ObjectID,
	dateFrom, dateTo *time.Time,
) ([]storemodels.Installment, error) {
	if _, err := s.loanRepo.GetLoanByID(ctx, loanID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError(consts.MsgLoanNotFound)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	installments, err := s.installmentRepo.GetScheduleByLoan(ctx, loanID, dateFrom, dateTo)
	if err != nil {
		return nil, models.NewServerError(consts.MsgUnexpected)
	}
	return installments, nil
}

// RecordCollection marks an installment collected through the given method.
// Collecting the final outstanding installment closes the loan.
func (s *ScheduleService) RecordCollection(
	ctx context.Context,
	installmentID primitive.ObjectID,
	methodID primitive.ObjectID,
) (*storemodels.Installment, error) {
	method, err := s.methodRepo.GetMethodByID(ctx, methodID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError(consts.MsgMethodNotFound)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}
	if !method.IsActive {
		return nil, models.NewValidationError(consts.MsgMethodInactive)
	}

	// The write must run to completion even if the caller stops waiting.
	writeCtx := context.WithoutCancel(ctx)

	receipt := uuid.New().String()
	inst, err := s.installmentRepo.MarkCollected(writeCtx, installmentID, methodID, receipt, s.now().UTC())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish a missing installment from one already collected.
			existing, lookupErr := s.installmentRepo.GetInstallmentByID(ctx, installmentID)
			if lookupErr != nil {
				return nil, models.NewNotFoundError(consts.MsgInstallmentNotFound)
			}
			if existing.Collected {
				return nil, models.NewConflictError(consts.MsgInstallmentCollected)
			}
			return nil, models.NewServerError(consts.MsgUnexpected)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	s.refreshLoanProgress(writeCtx, inst.LoanID)

	return inst, nil
}

// refreshLoanProgress recomputes the collected counter and closes the loan
// when the schedule is exhausted. Failures here are logged, not surfaced:
// the collection itself has already been recorded.
func (s *ScheduleService) refreshLoanProgress(ctx context.Context, loanID primitive.ObjectID) {
	collected, err := s.installmentRepo.CountCollectedByLoan(ctx, loanID)
	if err != nil {
		logger.CtxError(ctx, "Failed to count collected installments", err, slog.String("loan_id", loanID.Hex()))
		return
	}

	loan, err := s.loanRepo.GetLoanByID(ctx, loanID)
	if err != nil {
		logger.CtxError(ctx, "Failed to load loan for progress update", err, slog.String("loan_id", loanID.Hex()))
		return
	}

	if err := s.loanRepo.SetInstallmentsSummary(ctx, loanID, int(collected), loan.Term); err != nil {
		logger.CtxError(ctx, "Failed to update installments summary", err, slog.String("loan_id", loanID.Hex()))
	}

	remaining, err := s.installmentRepo.CountUncollectedByLoan(ctx, loanID)
	if err != nil {
		logger.CtxError(ctx, "Failed to count outstanding installments", err, slog.String("loan_id", loanID.Hex()))
		return
	}

	if remaining == 0 {
		if _, err := s.loanRepo.SwapStatus(ctx, loanID, consts.LoanStatusVigente, consts.LoanStatusFinalizado); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				logger.CtxWarn(ctx, "Schedule exhausted but loan is not Vigente", slog.String("loan_id", loanID.Hex()))
				return
			}
			logger.CtxError(ctx, "Failed to close loan", err, slog.String("loan_id", loanID.Hex()))
			return
		}
		logger.CtxInfo(ctx, "Loan closed, schedule fully collected", slog.String("loan_id", loanID.Hex()))
	}
}
