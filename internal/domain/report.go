package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mode records which strategy produced an agent's analysis.
type Mode string

const (
	ModeRuleBased   Mode = "rule_based"
	ModeAIGenerated Mode = "ai_generated"
)

// Agent names, also the fixed presentation order of the report.
const (
	AgentDebt    = "debt_analyzer"
	AgentSavings = "savings_strategist"
	AgentBudget  = "budget_advisor"
	AgentPayoff  = "payoff_optimizer"
)

// AgentOrder is the fixed merge order of agent results in a report.
func AgentOrder() []string {
	return []string{AgentDebt, AgentSavings, AgentBudget, AgentPayoff}
}

// AgentResult is the structured output of one analysis agent. The
// presentation layer gets read-only access; nothing mutates a result after
// the agent returns it.
type AgentResult struct {
	AgentName string             `json:"agent_name"`
	Mode      Mode               `json:"mode"`
	Metrics   map[string]float64 `json:"metrics"`
	Findings  map[string]string  `json:"findings,omitempty"`
	Narrative []string           `json:"narrative"`
	Warnings  []string           `json:"warnings,omitempty"`
}

// Report is the merged output of one analysis run. Created once per upload,
// never mutated, never persisted.
type Report struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Results     []AgentResult `json:"results"`
	Summary     []string      `json:"summary"`
}

// ResultFor returns the result for the named agent, nil when absent.
func (r *Report) ResultFor(name string) *AgentResult {
	for i := range r.Results {
		if r.Results[i].AgentName == name {
			return &r.Results[i]
		}
	}
	return nil
}

// DebtAccount is an estimated view of one recurring debt obligation, derived
// from Debt Payment transactions. Bank exports carry no balances or interest
// rates, so both are estimates from a keyword policy; the payoff simulation
// treats them as a fixed amortization assumption.
type DebtAccount struct {
	Name             string
	MonthlyPayment   decimal.Decimal
	EstimatedBalance decimal.Decimal
	AnnualRate       float64
}
