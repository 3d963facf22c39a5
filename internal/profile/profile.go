// Package profile derives the shared financial snapshot that every analysis
// agent reads.
package profile

import (
	"github.com/shopspring/decimal"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
)

// Build aggregates a transaction set into a FinancialProfile. All money
// totals stay in decimal; ratios are computed as float64 at the end and
// reported undefined when their denominator is zero.
func Build(txs domain.TransactionSet) domain.FinancialProfile {
	p := domain.FinancialProfile{
		ExpensesByCategory: make(map[domain.Category]decimal.Decimal),
		TransactionCount:   len(txs),
		MonthsSpanned:      monthsSpanned(txs),
	}

	for _, tx := range txs {
		if tx.IsIncome() {
			p.TotalIncome = p.TotalIncome.Add(tx.Amount)
			continue
		}
		abs := tx.Amount.Abs()
		p.TotalExpenses = p.TotalExpenses.Add(abs)
		p.ExpensesByCategory[tx.Category] = p.ExpensesByCategory[tx.Category].Add(abs)
	}
	p.NetCashFlow = p.TotalIncome.Sub(p.TotalExpenses)

	p.DebtToIncome = ratio(p.ExpenseFor(domain.CategoryDebtPayment), p.TotalIncome)
	p.SavingsRate = ratio(p.ExpenseFor(domain.CategorySavings), p.TotalIncome)

	monthlyEssentials := p.EssentialExpenses().Div(decimal.NewFromInt(int64(p.MonthsSpanned)))
	p.MonthsOfEssentials = ratio(p.ExpenseFor(domain.CategorySavings), monthlyEssentials)

	return p
}

// monthsSpanned counts calendar months between the first and last
// transaction dates, inclusive. An empty or single-month set spans 1.
func monthsSpanned(txs domain.TransactionSet) int {
	first, last, ok := txs.Span()
	if !ok {
		return 1
	}
	months := (last.Year()-first.Year())*12 + int(last.Month()-first.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

func ratio(num, den decimal.Decimal) domain.Ratio {
	if den.IsZero() {
		return domain.UndefinedRatio()
	}
	v, _ := num.Div(den).Float64()
	return domain.DefinedRatio(v)
}
