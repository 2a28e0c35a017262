package schedule

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
	storemodels "mutual/loanlifecycle/internal/pkg/store/models"
)

// Generate splits amount into term equal monthly installments. Amounts are
// rounded to two decimals and the final installment absorbs the remainder,
// so the installments always sum exactly to amount. Due date of installment
// k is loanDate plus k months.
func Generate(
	loanID primitive.ObjectID,
	amount float64,
	term int,
	loanDate time.Time,
) ([]storemodels.Installment, error) {
	if term <= 0 {
		return nil, models.NewValidationError(consts.MsgInvalidTerm)
	}

	total := decimal.NewFromFloat(amount)
	n := decimal.NewFromInt(int64(term))

	per := total.Div(n).Round(2)
	last := total.Sub(per.Mul(decimal.NewFromInt(int64(term - 1))))

	installments := make([]storemodels.Installment, 0, term)
	for k := 1; k <= term; k++ {
		installmentAmount := per
		if k == term {
			installmentAmount = last
		}

		installments = append(installments, storemodels.Installment{
			ID:                primitive.NewObjectID(),
			LoanID:            loanID,
			InstallmentNumber: k,
			DueDate:           loanDate.AddDate(0, k, 0),
			Amount:            installmentAmount.InexactFloat64(),
			Collected:         false,
		})
	}

	return installments, nil
}

// Sum adds up installment amounts with decimal arithmetic, keeping the
// schedule-sum invariant checkable without float drift.
func Sum(installments []storemodels.Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		total = total.Add(decimal.NewFromFloat(inst.Amount))
	}
	return total
}
