// Package report assembles agent results into the final coaching report and
// orchestrates the analysis pipeline that produces them.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
)

// Merge assembles agent results into a report in the fixed presentation
// order. The summary is distilled from metrics and findings only, never
// from narrative text, so it reads the same whether the narratives were
// rule-based or model-generated.
func Merge(results []domain.AgentResult) *domain.Report {
	r := &domain.Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	byName := make(map[string]domain.AgentResult, len(results))
	for _, res := range results {
		byName[res.AgentName] = res
	}
	for _, name := range domain.AgentOrder() {
		if res, ok := byName[name]; ok {
			r.Results = append(r.Results, res)
		}
	}

	r.Summary = buildSummary(r.Results)
	return r
}

func buildSummary(results []domain.AgentResult) []string {
	var summary []string
	for _, res := range results {
		if line := summarize(res); line != "" {
			summary = append(summary, line)
		}
	}
	return summary
}

func summarize(res domain.AgentResult) string {
	switch res.AgentName {
	case domain.AgentDebt:
		band := res.Findings["risk_band"]
		if dti, ok := res.Metrics["debt_to_income"]; ok {
			return fmt.Sprintf("Debt load: %s (%.1f%% of income).", band, dti*100)
		}
		return "Debt load: " + band + "."
	case domain.AgentSavings:
		if rate, ok := res.Metrics["savings_rate"]; ok {
			return fmt.Sprintf("Savings rate: %.1f%% of income, emergency fund %s.",
				rate*100, res.Findings["emergency_fund"])
		}
		return "Savings rate: unknown."
	case domain.AgentBudget:
		over := 0
		for _, bucket := range []string{"needs", "wants", "savings"} {
			if res.Findings[bucket] == "over" {
				over++
			}
		}
		if over == 0 {
			return "Budget: all 50/30/20 buckets within their allotments."
		}
		return fmt.Sprintf("Budget: %d of 3 buckets over their 50/30/20 allotments.", over)
	case domain.AgentPayoff:
		if rec := res.Findings["recommendation"]; rec != "" && rec != "none" {
			return "Debt payoff: " + rec + "."
		}
	}
	return ""
}
