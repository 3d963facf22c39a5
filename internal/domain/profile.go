package domain

import "github.com/shopspring/decimal"

// Ratio is a division result that may be undefined (for example any ratio
// over income when total income is zero). An undefined ratio is reported as
// such, never as NaN or an error.
type Ratio struct {
	Value   float64
	Defined bool
}

// DefinedRatio builds a defined ratio.
func DefinedRatio(v float64) Ratio {
	return Ratio{Value: v, Defined: true}
}

// UndefinedRatio builds an undefined ratio.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// FinancialProfile is a derived, immutable snapshot of a transaction set.
// It is built once per analysis run and shared by every agent; nothing
// mutates it after construction.
type FinancialProfile struct {
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal // absolute value of all outflows
	ExpensesByCategory map[Category]decimal.Decimal
	NetCashFlow        decimal.Decimal

	DebtToIncome       Ratio // Debt Payment outflow / income
	SavingsRate        Ratio // Savings outflow / income
	MonthsOfEssentials Ratio // Savings outflow / avg monthly Housing+Food spend

	// MonthsSpanned is the number of calendar months covered by the
	// transaction dates, at least 1. Monthly averages divide by it so that
	// multi-month exports are not treated as a single month.
	MonthsSpanned int

	TransactionCount int
}

// ExpenseFor returns the absolute expense total for a category, zero when
// the category has no outflows.
func (p FinancialProfile) ExpenseFor(c Category) decimal.Decimal {
	if v, ok := p.ExpensesByCategory[c]; ok {
		return v
	}
	return decimal.Zero
}

// EssentialExpenses returns the Housing+Food outflow total.
func (p FinancialProfile) EssentialExpenses() decimal.Decimal {
	return p.ExpenseFor(CategoryHousing).Add(p.ExpenseFor(CategoryFood))
}
