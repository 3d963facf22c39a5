package agents

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
	"github.com/sthama121-del/ai-financial-coach/internal/insight"
)

// PayoffPolicy drives the what-if simulation. ExtraAmounts are the monthly
// extra-payment scenarios tried on top of current payments; MaxMonths bounds
// a simulation whose payments never outrun interest.
type PayoffPolicy struct {
	ExtraAmounts []int64
	MaxMonths    int
}

func DefaultPayoffPolicy() PayoffPolicy {
	return PayoffPolicy{
		ExtraAmounts: []int64{0, 50, 100, 200},
		MaxMonths:    600,
	}
}

// PayoffOptimizer simulates extra-payment scenarios over the estimated debt
// accounts and recommends the one with the best interest saved per extra
// dollar. Debts are derived before the agent runs so the rule function
// stays a pure function of the profile.
func PayoffOptimizer(policy PayoffPolicy, debts []domain.DebtAccount) insight.PromptSpec {
	return insight.PromptSpec{
		AgentName: domain.AgentPayoff,
		Task:      "Recommend how much extra to pay toward debts each month and what it buys.",
		Rules: func(p domain.FinancialProfile) insight.RuleOutput {
			return payoffRules(policy, debts, p)
		},
	}
}

// scenario is the outcome of one simulated extra-payment plan.
type scenario struct {
	extra         int64
	months        int
	totalInterest decimal.Decimal
	finished      bool
}

func payoffRules(policy PayoffPolicy, debts []domain.DebtAccount, p domain.FinancialProfile) insight.RuleOutput {
	out := insight.RuleOutput{
		Metrics:  map[string]float64{},
		Findings: map[string]string{},
	}
	if len(debts) == 0 {
		out.Findings["recommendation"] = "none"
		out.Narrative = append(out.Narrative, "No recurring debt payments were found, so there is nothing to optimize.")
		return out
	}
	out.Metrics["debt_accounts"] = float64(len(debts))
	out.Warnings = append(out.Warnings, "debt balances and rates are estimated from payment history")

	scenarios := make([]scenario, 0, len(policy.ExtraAmounts))
	for _, extra := range policy.ExtraAmounts {
		scenarios = append(scenarios, simulate(debts, decimal.NewFromInt(extra), policy.MaxMonths))
	}

	base := scenarios[0]
	if !base.finished {
		out.Findings["recommendation"] = "increase payments"
		out.Warnings = append(out.Warnings, "current payments do not outrun interest within the simulation horizon")
		out.Narrative = append(out.Narrative, "At current payment levels the estimated balances never reach zero; any extra payment helps.")
		return out
	}

	baseInterest, _ := base.totalInterest.Float64()
	out.Metrics["months_to_debt_free"] = float64(base.months)
	out.Metrics["total_interest"] = baseInterest

	best := base
	bestPerDollar := 0.0
	for _, s := range scenarios[1:] {
		if !s.finished {
			continue
		}
		saved, _ := base.totalInterest.Sub(s.totalInterest).Float64()
		perDollar := saved / float64(s.extra)
		if perDollar > bestPerDollar {
			best, bestPerDollar = s, perDollar
		}
	}

	if best.extra == 0 {
		out.Findings["recommendation"] = "maintain"
		out.Narrative = append(out.Narrative,
			fmt.Sprintf("Current payments clear the estimated balances in %d months; extra payments would not save meaningful interest.", base.months))
		return out
	}

	bestInterest, _ := best.totalInterest.Float64()
	out.Metrics["recommended_extra"] = float64(best.extra)
	out.Metrics["months_to_debt_free_with_extra"] = float64(best.months)
	out.Metrics["interest_saved"] = baseInterest - bestInterest
	out.Findings["recommendation"] = fmt.Sprintf("pay %d extra per month", best.extra)
	out.Narrative = append(out.Narrative,
		fmt.Sprintf("Paying %d extra per month toward the highest-rate balance clears the debts in %d months instead of %d.",
			best.extra, best.months, base.months),
		fmt.Sprintf("That saves roughly %.2f in interest over the payoff.", baseInterest-bestInterest))
	return out
}

// simulate amortizes all debts month by month. Interest accrues on each
// balance at rate/12; each debt receives its own payment and the extra
// amount goes to the open debt with the highest rate (avalanche). Freed-up
// payments from cleared debts roll into the extra pool.
func simulate(debts []domain.DebtAccount, extra decimal.Decimal, maxMonths int) scenario {
	s := scenario{extra: extra.IntPart()}

	order := SortAvalanche(debts)
	balances := make([]decimal.Decimal, len(order))
	for i, d := range order {
		balances[i] = d.EstimatedBalance
	}
	twelve := decimal.NewFromInt(12)
	pool := extra

	for month := 1; month <= maxMonths; month++ {
		open := false
		monthPool := pool
		for i := range order {
			if !balances[i].IsPositive() {
				continue
			}
			interest := balances[i].Mul(decimal.NewFromFloat(order[i].AnnualRate)).Div(twelve)
			s.totalInterest = s.totalInterest.Add(interest)

			payment := order[i].MonthlyPayment
			if monthPool.IsPositive() {
				payment = payment.Add(monthPool)
				monthPool = decimal.Zero
			}
			balances[i] = balances[i].Add(interest).Sub(payment)
			if balances[i].IsPositive() {
				open = true
			} else {
				// Cleared; its payment joins the pool from next month on.
				pool = pool.Add(order[i].MonthlyPayment)
			}
		}
		if !open {
			s.months = month
			s.finished = true
			return s
		}
	}
	s.months = maxMonths
	return s
}
