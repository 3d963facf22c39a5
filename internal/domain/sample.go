package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SampleTransactions is the bundled example dataset: one month of a simple
// household budget. It doubles as the canonical fixture for conformance
// tests (income 5200, expenses 2300, net +2900).
func SampleTransactions() TransactionSet {
	day := func(d int) time.Time {
		return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
	}
	amt := func(s string) decimal.Decimal {
		return decimal.RequireFromString(s)
	}
	return TransactionSet{
		{Date: day(1), Amount: amt("5200"), Category: CategoryIncome, Description: "Monthly salary"},
		{Date: day(2), Amount: amt("-1200"), Category: CategoryHousing, Description: "Rent"},
		{Date: day(5), Amount: amt("-350"), Category: CategoryFood, Description: "Groceries"},
		{Date: day(9), Amount: amt("-200"), Category: CategoryEntertainment, Description: "Streaming and dining out"},
		{Date: day(12), Amount: amt("-250"), Category: CategoryDebtPayment, Description: "Credit card payment"},
		{Date: day(15), Amount: amt("-300"), Category: CategorySavings, Description: "Emergency fund transfer"},
	}
}

// SampleCSV is the same fixture in the documented CSV convention.
const SampleCSV = `Date,Amount,Category,Description
2025-01-01,5200,Income,Monthly salary
2025-01-02,-1200,Housing,Rent
2025-01-05,-350,Food,Groceries
2025-01-09,-200,Entertainment,Streaming and dining out
2025-01-12,-250,Debt Payment,Credit card payment
2025-01-15,-300,Savings,Emergency fund transfer
`
