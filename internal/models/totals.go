package models

import "github.com/shopspring/decimal"

// Totals are the six period aggregates derived from a ledger. The opening
// balance counts on the income side, mirroring the cash book layout where
// the opening row is the first inflow of the period.
type Totals struct {
	TotalIncome  decimal.Decimal // C8 sum over opening and income rows
	TotalExpense decimal.Decimal // C8 sum over expense rows
	NetFlow      decimal.Decimal // TotalIncome - TotalExpense
	IncomeBasis  decimal.Decimal // C9 sum over opening and income rows
	ExpenseBasis decimal.Decimal // C9 sum over expense rows
	NetResult    decimal.Decimal // IncomeBasis - ExpenseBasis
}
