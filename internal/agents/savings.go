package agents

import (
	"fmt"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
	"github.com/sthama121-del/ai-financial-coach/internal/insight"
)

// SavingsPolicy holds the strategist's targets. The recommended automation
// step scales with the current savings rate, bounded by MinStepShare and
// MaxStepShare, so a household saving nothing is asked for a small habit
// first rather than the full gap at once.
type SavingsPolicy struct {
	TargetRate         float64
	MinEmergencyMonths float64
	MaxEmergencyMonths float64
	MinStepShare       float64
	MaxStepShare       float64
}

func DefaultSavingsPolicy() SavingsPolicy {
	return SavingsPolicy{
		TargetRate:         0.20,
		MinEmergencyMonths: 3,
		MaxEmergencyMonths: 6,
		MinStepShare:       0.01,
		MaxStepShare:       0.05,
	}
}

// SavingsStrategist rates the savings habit and the emergency fund runway.
func SavingsStrategist(policy SavingsPolicy) insight.PromptSpec {
	return insight.PromptSpec{
		AgentName: domain.AgentSavings,
		Task:      "Rate the savings habit and emergency fund runway, and suggest the next automation step.",
		Rules: func(p domain.FinancialProfile) insight.RuleOutput {
			return savingsRules(policy, p)
		},
	}
}

func savingsRules(policy SavingsPolicy, p domain.FinancialProfile) insight.RuleOutput {
	out := insight.RuleOutput{
		Metrics:  map[string]float64{},
		Findings: map[string]string{},
	}
	savingsSpend, _ := p.ExpenseFor(domain.CategorySavings).Float64()
	out.Metrics["savings_outflow"] = savingsSpend

	if p.MonthsOfEssentials.Defined {
		months := p.MonthsOfEssentials.Value
		out.Metrics["months_of_essentials"] = months
		switch {
		case months < policy.MinEmergencyMonths:
			out.Findings["emergency_fund"] = "below target"
			out.Narrative = append(out.Narrative,
				fmt.Sprintf("Savings cover %.1f months of essential spending, short of the %.0f-%.0f month target.",
					months, policy.MinEmergencyMonths, policy.MaxEmergencyMonths))
		case months <= policy.MaxEmergencyMonths:
			out.Findings["emergency_fund"] = "on target"
			out.Narrative = append(out.Narrative,
				fmt.Sprintf("Savings cover %.1f months of essential spending, within the %.0f-%.0f month target.",
					months, policy.MinEmergencyMonths, policy.MaxEmergencyMonths))
		default:
			out.Findings["emergency_fund"] = "above target"
			out.Narrative = append(out.Narrative,
				fmt.Sprintf("Savings cover %.1f months of essentials; surplus beyond %.0f months could work harder elsewhere.",
					months, policy.MaxEmergencyMonths))
		}
	} else {
		out.Findings["emergency_fund"] = "unknown"
		out.Warnings = append(out.Warnings, "no essential spending recorded, emergency fund runway is undefined")
	}

	if !p.SavingsRate.Defined {
		out.Findings["automation"] = "unknown"
		out.Warnings = append(out.Warnings, "no income recorded, savings rate is undefined")
		return out
	}

	rate := p.SavingsRate.Value
	out.Metrics["savings_rate"] = rate

	gap := policy.TargetRate - rate
	if gap <= 0 {
		out.Findings["automation"] = "maintain"
		out.Narrative = append(out.Narrative,
			fmt.Sprintf("You already save %.1f%% of income, at or above the %.0f%% target.", rate*100, policy.TargetRate*100))
		return out
	}

	// Half the current rate, clamped into [MinStepShare, MaxStepShare] and
	// never past the remaining gap.
	step := rate / 2
	if step < policy.MinStepShare {
		step = policy.MinStepShare
	}
	if step > policy.MaxStepShare {
		step = policy.MaxStepShare
	}
	if step > gap {
		step = gap
	}
	out.Metrics["recommended_step"] = step
	out.Findings["automation"] = "increase"
	out.Narrative = append(out.Narrative,
		fmt.Sprintf("You save %.1f%% of income against a %.0f%% target; automating an extra %.1f%% per month is a realistic next step.",
			rate*100, policy.TargetRate*100, step*100))
	return out
}
