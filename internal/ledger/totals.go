package ledger

import (
	"github.com/shopspring/decimal"

	"cajapyme/libro-caja/internal/models"
)

// ComputeTotals sums the ledger into the six period aggregates. The
// opening row counts on the income side. Pure function of the ledger.
func ComputeTotals(l *models.Ledger) models.Totals {
	income := decimal.Zero
	expense := decimal.Zero
	incomeBasis := decimal.Zero
	expenseBasis := decimal.Zero

	for _, rec := range l.Records {
		if rec.Kind == models.OperationExpense {
			expense = expense.Add(rec.Flow)
			expenseBasis = expenseBasis.Add(rec.Basis)
		} else {
			income = income.Add(rec.Flow)
			incomeBasis = incomeBasis.Add(rec.Basis)
		}
	}

	return models.Totals{
		TotalIncome:  income,
		TotalExpense: expense,
		NetFlow:      income.Sub(expense),
		IncomeBasis:  incomeBasis,
		ExpenseBasis: expenseBasis,
		NetResult:    incomeBasis.Sub(expenseBasis),
	}
}
