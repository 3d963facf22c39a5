// Package insight produces agent results, overlaying AI narrative on top of
// deterministic rule output when a generator is available.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
	"github.com/sthama121-del/ai-financial-coach/internal/logger"
)

// RuleOutput is the deterministic part of an agent's analysis. Metrics and
// Findings are authoritative in both modes; only the narrative may be
// replaced by the model.
type RuleOutput struct {
	Metrics   map[string]float64
	Findings  map[string]string
	Narrative []string
	Warnings  []string
}

// RuleFunc computes an agent's rule-based analysis from the shared profile.
type RuleFunc func(domain.FinancialProfile) RuleOutput

// PromptSpec describes one agent to the engine: its name, the task sentence
// handed to the model, and its rule function.
type PromptSpec struct {
	AgentName string
	Task      string
	Rules     RuleFunc
}

// Engine runs agents. With a nil generator it is a pure rule engine; with
// one, it asks the model to narrate the rule output and falls back to rule
// mode on any generation failure. Fallback is silent toward the caller -
// the result is still complete, only its Mode differs.
type Engine struct {
	gen     Generator
	timeout time.Duration
}

func NewEngine(gen Generator, timeout time.Duration) *Engine {
	return &Engine{gen: gen, timeout: timeout}
}

// narration is the strict response shape expected from the model.
type narration struct {
	Narrative []string `json:"narrative"`
	Warnings  []string `json:"warnings"`
}

// Infer produces the agent result for one spec. The rule output is always
// computed first so the AI path can never return less than the rule path.
func (e *Engine) Infer(ctx context.Context, spec PromptSpec, p domain.FinancialProfile) domain.AgentResult {
	out := spec.Rules(p)
	result := domain.AgentResult{
		AgentName: spec.AgentName,
		Mode:      domain.ModeRuleBased,
		Metrics:   out.Metrics,
		Findings:  out.Findings,
		Narrative: out.Narrative,
		Warnings:  out.Warnings,
	}
	if e.gen == nil {
		return result
	}

	log := logger.FromContext(ctx).With().Str("agent", spec.AgentName).Logger()

	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.gen.Generate(genCtx, buildPrompt(spec, p, out))
	if err != nil {
		log.Warn().Err(err).Msg("narrative generation failed, using rule output")
		return result
	}
	var n narration
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &n); err != nil {
		log.Warn().Err(err).Msg("model returned malformed JSON, using rule output")
		return result
	}
	if len(n.Narrative) == 0 {
		log.Warn().Msg("model returned empty narrative, using rule output")
		return result
	}

	result.Mode = domain.ModeAIGenerated
	result.Narrative = n.Narrative
	result.Warnings = append(result.Warnings, n.Warnings...)
	return result
}

// buildPrompt renders the task, the profile digest, and the rule output as
// a bounded prompt. Raw transactions never reach the model; the digest is
// aggregates only.
func buildPrompt(spec PromptSpec, p domain.FinancialProfile, out RuleOutput) string {
	var b strings.Builder
	b.WriteString("You are a financial coaching assistant.\n")
	b.WriteString("Task: " + spec.Task + "\n\n")

	b.WriteString("Financial profile:\n")
	fmt.Fprintf(&b, "- total income: %s\n", p.TotalIncome)
	fmt.Fprintf(&b, "- total expenses: %s\n", p.TotalExpenses)
	fmt.Fprintf(&b, "- net cash flow: %s\n", p.NetCashFlow)
	fmt.Fprintf(&b, "- months covered: %d\n", p.MonthsSpanned)
	for _, cat := range domain.Categories() {
		if v := p.ExpenseFor(cat); !v.IsZero() {
			fmt.Fprintf(&b, "- %s spend: %s\n", strings.ToLower(string(cat)), v)
		}
	}

	b.WriteString("\nComputed metrics (authoritative, do not recompute):\n")
	for _, k := range sortedKeys(out.Metrics) {
		fmt.Fprintf(&b, "- %s: %.4f\n", k, out.Metrics[k])
	}
	for _, k := range sortedFindingKeys(out.Findings) {
		fmt.Fprintf(&b, "- %s: %s\n", k, out.Findings[k])
	}

	b.WriteString("\nRespond with a single JSON object of the form " +
		`{"narrative": ["..."], "warnings": ["..."]}` + ".\n" +
		"narrative is 2-4 short coaching sentences grounded in the metrics above.\n" +
		"warnings may be empty. Do NOT use ```json or any Markdown.\n" +
		"Output must begin with \"{\" and end with \"}\".\n")
	return b.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedFindingKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the output instructions, keeping the outermost JSON object.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
