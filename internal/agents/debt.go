package agents

import (
	"fmt"
	"math"
	"strings"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
	"github.com/sthama121-del/ai-financial-coach/internal/insight"
)

// DebtPolicy sets the debt-to-income risk bands and the rate spread below
// which the snowball ordering is preferred over the avalanche.
type DebtPolicy struct {
	LowMax      float64
	ModerateMax float64
	RateDelta   float64
}

func DefaultDebtPolicy() DebtPolicy {
	return DebtPolicy{
		LowMax:      0.15,
		ModerateMax: 0.35,
		RateDelta:   0.02,
	}
}

// DebtAnalyzer assesses the debt payment load against income and lays out
// both payoff orderings over the estimated accounts. Debts are derived
// before the agent runs, same as PayoffOptimizer.
func DebtAnalyzer(policy DebtPolicy, debts []domain.DebtAccount) insight.PromptSpec {
	return insight.PromptSpec{
		AgentName: domain.AgentDebt,
		Task:      "Assess the debt payment load relative to income and the risk it poses.",
		Rules: func(p domain.FinancialProfile) insight.RuleOutput {
			return debtRules(policy, debts, p)
		},
	}
}

func debtRules(policy DebtPolicy, debts []domain.DebtAccount, p domain.FinancialProfile) insight.RuleOutput {
	out := insight.RuleOutput{
		Metrics:  map[string]float64{},
		Findings: map[string]string{},
	}
	debtSpend, _ := p.ExpenseFor(domain.CategoryDebtPayment).Float64()
	out.Metrics["debt_payments"] = debtSpend

	if !p.DebtToIncome.Defined {
		out.Findings["risk_band"] = "unknown"
		out.Warnings = append(out.Warnings, "no income recorded, debt-to-income ratio is undefined")
		if debtSpend > 0 {
			out.Narrative = append(out.Narrative,
				fmt.Sprintf("You paid %.2f toward debts, but without recorded income the load cannot be rated.", debtSpend))
		} else {
			out.Narrative = append(out.Narrative, "No debt payments or income were found in this data.")
		}
		debtOrderings(policy, debts, &out)
		return out
	}

	dti := p.DebtToIncome.Value
	out.Metrics["debt_to_income"] = dti

	var band, advice string
	switch {
	case dti <= policy.LowMax:
		band = "low"
		advice = "Debt payments take a small share of income; keep current payments on schedule."
	case dti <= policy.ModerateMax:
		band = "moderate"
		advice = "Debt payments are a meaningful share of income; directing extra cash at the highest-rate balance would help."
	default:
		band = "high"
		advice = "Debt payments dominate income; pausing discretionary spending to pay balances down should come first."
	}
	out.Findings["risk_band"] = band
	out.Narrative = append(out.Narrative,
		fmt.Sprintf("Debt payments are %.1f%% of income, a %s debt load.", dti*100, band),
		advice)
	debtOrderings(policy, debts, &out)
	return out
}

// debtOrderings narrates the snowball and avalanche orderings and picks one.
// When the two top picks carry rates within RateDelta of each other the
// interest edge is marginal, so the snowball's quick win takes priority.
func debtOrderings(policy DebtPolicy, debts []domain.DebtAccount, out *insight.RuleOutput) {
	if len(debts) == 0 {
		return
	}
	snow := SortSnowball(debts)
	aval := SortAvalanche(debts)
	out.Findings["snowball_order"] = joinDebtNames(snow)
	out.Findings["avalanche_order"] = joinDebtNames(aval)
	out.Narrative = append(out.Narrative,
		fmt.Sprintf("Snowball order (smallest balance first): %s.", joinDebtNames(snow)),
		fmt.Sprintf("Avalanche order (highest rate first): %s.", joinDebtNames(aval)))

	method, target := "avalanche", aval[0]
	if math.Abs(aval[0].AnnualRate-snow[0].AnnualRate) <= policy.RateDelta {
		method, target = "snowball", snow[0]
	}
	out.Findings["recommended_method"] = method
	if method == "snowball" {
		out.Narrative = append(out.Narrative,
			fmt.Sprintf("The top picks carry similar rates, so take the snowball's quick win and clear %s first.", target.Name))
	} else {
		out.Narrative = append(out.Narrative,
			fmt.Sprintf("The avalanche saves the most interest here; put extra payments toward %s first.", target.Name))
	}
}

func joinDebtNames(debts []domain.DebtAccount) string {
	names := make([]string, len(debts))
	for i, d := range debts {
		names[i] = d.Name
	}
	return strings.Join(names, ", ")
}
