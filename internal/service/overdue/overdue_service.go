package overdue

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/logger"
	"mutual/loanlifecycle/internal/pkg/models"
	storemodels "mutual/loanlifecycle/internal/pkg/store/models"
	"mutual/loanlifecycle/internal/service/interfaces"
)

// Filters are conjunctive; a nil/empty field imposes no constraint.
type Filters struct {
	AssociateID string
	LoanTypeID  *primitive.ObjectID
	AmountMin   *float64
	AmountMax   *float64
	DaysMin     *int
	DaysMax     *int
}

// Summary is the aggregate view over a filtered overdue set.
type Summary struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// OverdueService derives overdue views from stored schedules. Given the
// same clock value it is referentially transparent: repeated calls for the
// same "today" return the same rows.
type OverdueService struct {
	loanRepo        interfaces.LoanRepositoryInterface
	installmentRepo interfaces.InstallmentRepositoryInterface
	now             func() time.Time
}

func NewOverdueService(
	loanRepo interfaces.LoanRepositoryInterface,
	installmentRepo interfaces.InstallmentRepositoryInterface,
	now func() time.Time,
) *OverdueService {
	if now == nil {
		now = time.Now
	}
	return &OverdueService{
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		now:             now,
	}
}

// ListOverdue returns every uncollected installment whose due date is
// strictly before today, joined with its loan and filtered.
func (s *OverdueService) ListOverdue(ctx context.Context, filters Filters) ([]storemodels.OverdueInstallment, error) {
	today := truncateToDay(s.now())

	installments, err := s.installmentRepo.ListUncollectedDueBefore(ctx, today)
	if err != nil {
		return nil, models.NewServerError(consts.MsgUnexpected)
	}
	if len(installments) == 0 {
		return []storemodels.OverdueInstallment{}, nil
	}

	loansByID, err := s.loadLoans(ctx, installments)
	if err != nil {
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	rows := make([]storemodels.OverdueInstallment, 0, len(installments))
	for _, inst := range installments {
		loan, ok := loansByID[inst.LoanID]
		if !ok {
			logger.CtxWarn(ctx, "Overdue installment without loan",
				slog.String("installment_id", inst.ID.Hex()),
				slog.String("loan_id", inst.LoanID.Hex()),
			)
			continue
		}

		row := storemodels.OverdueInstallment{
			Installment: inst,
			AssociateID: loan.AssociateID,
			LoanTypeID:  loan.LoanTypeID,
			LoanAmount:  loan.Amount,
			DaysOverdue: DaysOverdue(inst.DueDate, today),
		}

		if matches(row, filters) {
			rows = append(rows, row)
		}
	}

	logger.CtxDebug(ctx, "Overdue list computed",
		slog.Int("candidates", len(installments)),
		slog.Int("matched", len(rows)),
	)
	return rows, nil
}

// Summarize aggregates count and total amount over the filtered set.
func (s *OverdueService) Summarize(ctx context.Context, filters Filters) (*Summary, error) {
	rows, err := s.ListOverdue(ctx, filters)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(decimal.NewFromFloat(row.Amount))
	}

	return &Summary{
		Count:       len(rows),
		TotalAmount: total.InexactFloat64(),
	}, nil
}

// Classify reports the installment status used by collection reporting.
func Classify(inst storemodels.Installment, today time.Time) consts.InstallmentStatus {
	if inst.Collected {
		return consts.InstallmentStatusPagada
	}

	due := truncateToDay(inst.DueDate)
	day := truncateToDay(today)

	switch {
	case due.Before(day):
		return consts.InstallmentStatusVencida
	case due.Equal(day):
		return consts.InstallmentStatusVenceHoy
	default:
		return consts.InstallmentStatusPendiente
	}
}

// DaysOverdue is the whole-day difference between today and the due date.
// By construction it is at least 1 for any installment due before today.
func DaysOverdue(dueDate, today time.Time) int {
	diff := truncateToDay(today).Sub(truncateToDay(dueDate))
	return int(diff.Hours() / 24)
}

func (s *OverdueService) loadLoans(
	ctx context.Context,
	installments []storemodels.Installment,
) (map[primitive.ObjectID]storemodels.Loan, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(installments))
	ids := make([]primitive.ObjectID, 0, len(installments))
	for _, inst := range installments {
		if _, ok := seen[inst.LoanID]; !ok {
			seen[inst.LoanID] = struct{}{}
			ids = append(ids, inst.LoanID)
		}
	}

	loans, err := s.loanRepo.GetLoansByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]storemodels.Loan, len(loans))
	for _, loan := range loans {
		byID[loan.ID] = loan
	}
	return byID, nil
}

func matches(row storemodels.OverdueInstallment, f Filters) bool {
	if f.AssociateID != "" && row.AssociateID != f.AssociateID {
		return false
	}
	if f.LoanTypeID != nil && row.LoanTypeID != *f.LoanTypeID {
		return false
	}
	if f.AmountMin != nil && row.LoanAmount < *f.AmountMin {
		return false
	}
	if f.AmountMax != nil && row.LoanAmount > *f.AmountMax {
		return false
	}
	if f.DaysMin != nil && row.DaysOverdue < *f.DaysMin {
		return false
	}
	if f.DaysMax != nil && row.DaysOverdue > *f.DaysMax {
		return false
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
