package agents

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
	"github.com/sthama121-del/ai-financial-coach/internal/insight"
)

// BudgetPolicy is the 50/30/20 rule with a tolerance margin. A bucket is
// flagged only when its share of income exceeds its allotment by more than
// OverageMargin, so borderline months are not nagged about.
type BudgetPolicy struct {
	NeedsShare    float64
	WantsShare    float64
	SavingsShare  float64
	OverageMargin float64
}

func DefaultBudgetPolicy() BudgetPolicy {
	return BudgetPolicy{
		NeedsShare:    0.50,
		WantsShare:    0.30,
		SavingsShare:  0.20,
		OverageMargin: 0.02,
	}
}

// Bucket membership of the taxonomy. Debt payments count toward the
// savings bucket, the 50/30/20 convention for obligations that reduce
// net worth owed.
var budgetBuckets = []struct {
	name       string
	categories []domain.Category
}{
	{"needs", []domain.Category{domain.CategoryHousing, domain.CategoryFood}},
	{"wants", []domain.Category{domain.CategoryEntertainment, domain.CategoryOther}},
	{"savings", []domain.Category{domain.CategorySavings, domain.CategoryDebtPayment}},
}

// BudgetAdvisor checks spending against the 50/30/20 rule.
func BudgetAdvisor(policy BudgetPolicy) insight.PromptSpec {
	return insight.PromptSpec{
		AgentName: domain.AgentBudget,
		Task:      "Compare spending against the 50/30/20 budget rule and point out overspent buckets.",
		Rules: func(p domain.FinancialProfile) insight.RuleOutput {
			return budgetRules(policy, p)
		},
	}
}

func budgetRules(policy BudgetPolicy, p domain.FinancialProfile) insight.RuleOutput {
	out := insight.RuleOutput{
		Metrics:  map[string]float64{},
		Findings: map[string]string{},
	}
	if p.TotalIncome.IsZero() {
		out.Warnings = append(out.Warnings, "no income recorded, budget shares are undefined")
		out.Narrative = append(out.Narrative, "Budget shares need recorded income to compare against the 50/30/20 rule.")
		return out
	}

	allotments := map[string]float64{
		"needs":   policy.NeedsShare,
		"wants":   policy.WantsShare,
		"savings": policy.SavingsShare,
	}

	overspent := 0
	for _, bucket := range budgetBuckets {
		total := decimal.Zero
		for _, cat := range bucket.categories {
			total = total.Add(p.ExpenseFor(cat))
		}
		share, _ := total.Div(p.TotalIncome).Float64()
		out.Metrics[bucket.name+"_share"] = share

		allotment := allotments[bucket.name]
		if share > allotment+policy.OverageMargin {
			overspent++
			out.Findings[bucket.name] = "over"
			over, _ := total.Sub(p.TotalIncome.Mul(decimal.NewFromFloat(allotment))).Float64()
			out.Metrics[bucket.name+"_overspend"] = over
			out.Narrative = append(out.Narrative,
				fmt.Sprintf("%s spending is %.1f%% of income against a %.0f%% allotment, %.2f over budget.",
					titleCase(bucket.name), share*100, allotment*100, over))
		} else {
			out.Findings[bucket.name] = "within"
		}
	}

	if overspent == 0 {
		out.Narrative = append(out.Narrative, "All three budget buckets are within their 50/30/20 allotments.")
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
