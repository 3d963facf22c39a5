package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/sthama121-del/ai-financial-coach/internal/agents"
	"github.com/sthama121-del/ai-financial-coach/internal/config"
	"github.com/sthama121-del/ai-financial-coach/internal/domain"
	"github.com/sthama121-del/ai-financial-coach/internal/ingest"
	"github.com/sthama121-del/ai-financial-coach/internal/insight"
	"github.com/sthama121-del/ai-financial-coach/internal/logger"
	"github.com/sthama121-del/ai-financial-coach/internal/normalize"
	"github.com/sthama121-del/ai-financial-coach/internal/profile"
	"github.com/sthama121-del/ai-financial-coach/internal/validate"
)

// Step is a single stage of the analysis pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State is the shared state flowing through the pipeline steps. Each step
// reads what earlier steps wrote and fills in its own fields.
type State struct {
	Payload []byte
	Format  ingest.Format

	Rows       []ingest.RawRow
	Validation validate.Result
	Normalized normalize.Result
	Profile    domain.FinancialProfile
	Results    []domain.AgentResult
	Report     *domain.Report
}

// Pipeline runs steps sequentially, stopping at the first failure.
type Pipeline struct {
	steps []Step
}

func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for _, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return err
		}
	}
	return nil
}

// IngestStep decodes the payload into raw rows.
type IngestStep struct{}

func (s *IngestStep) Execute(ctx context.Context, state *State) error {
	rows, err := ingest.Ingest(state.Payload, state.Format)
	if err != nil {
		return err
	}
	state.Rows = rows
	log := logger.FromContext(ctx)
	log.Debug().
		Str("format", string(state.Format)).
		Int("rows", len(rows)).
		Msg("payload ingested")
	return nil
}

// ValidateStep scores the rows for financial content.
type ValidateStep struct {
	Policy validate.Policy
}

func (s *ValidateStep) Execute(ctx context.Context, state *State) error {
	res, err := validate.Validate(state.Rows, s.Policy)
	if err != nil {
		return err
	}
	state.Validation = res
	log := logger.FromContext(ctx)
	log.Debug().
		Float64("score", res.Score).
		Int("candidates", res.CandidateRows).
		Msg("content validated")
	return nil
}

// NormalizeStep converts rows into canonical transactions.
type NormalizeStep struct {
	Normalizer *normalize.Normalizer
}

func (s *NormalizeStep) Execute(ctx context.Context, state *State) error {
	res, err := s.Normalizer.Normalize(state.Rows)
	if err != nil {
		return err
	}
	state.Normalized = res
	log := logger.FromContext(ctx)
	log.Debug().
		Int("transactions", len(res.Transactions)).
		Int("skipped", res.Skipped).
		Int("dropped", res.Dropped).
		Msg("rows normalized")
	return nil
}

// BuildProfileStep derives the shared financial snapshot.
type BuildProfileStep struct{}

func (s *BuildProfileStep) Execute(ctx context.Context, state *State) error {
	state.Profile = profile.Build(state.Normalized.Transactions)
	return nil
}

// RunAgentsStep runs the four analysis agents concurrently. Agents never
// fail: an unavailable AI strategy degrades each result to rule mode inside
// the engine, so the step always yields a full result set.
type RunAgentsStep struct {
	Engine  *insight.Engine
	Debt    agents.DebtPolicy
	Savings agents.SavingsPolicy
	Budget  agents.BudgetPolicy
	Payoff  agents.PayoffPolicy
}

func (s *RunAgentsStep) Execute(ctx context.Context, state *State) error {
	debts := agents.DeriveDebts(state.Normalized.Transactions, state.Profile.MonthsSpanned)
	specs := []insight.PromptSpec{
		agents.DebtAnalyzer(s.Debt, debts),
		agents.SavingsStrategist(s.Savings),
		agents.BudgetAdvisor(s.Budget),
		agents.PayoffOptimizer(s.Payoff, debts),
	}

	results := make([]domain.AgentResult, len(specs))
	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		go func(i int, spec insight.PromptSpec) {
			defer wg.Done()
			results[i] = s.Engine.Infer(ctx, spec, state.Profile)
		}(i, spec)
	}
	wg.Wait()

	state.Results = results
	return nil
}

// MergeStep assembles the final report.
type MergeStep struct{}

func (s *MergeStep) Execute(ctx context.Context, state *State) error {
	state.Report = Merge(state.Results)
	log := logger.FromContext(ctx)
	log.Info().
		Str("report_id", state.Report.ID).
		Int("agents", len(state.Report.Results)).
		Msg("report generated")
	return nil
}

// Orchestrator wires the full document-to-report pipeline.
type Orchestrator struct {
	policy  validate.Policy
	norm    *normalize.Normalizer
	engine  *insight.Engine
	debt    agents.DebtPolicy
	savings agents.SavingsPolicy
	budget  agents.BudgetPolicy
	payoff  agents.PayoffPolicy
}

// NewOrchestrator builds an orchestrator from config. gen may be nil, which
// pins every agent to the rule-based strategy.
func NewOrchestrator(cfg *config.Config, gen insight.Generator) *Orchestrator {
	budget := agents.DefaultBudgetPolicy()
	budget.OverageMargin = cfg.OverageMargin
	return &Orchestrator{
		policy: validate.Policy{
			MinCandidateRows: cfg.MinCandidateRows,
			ScoreThreshold:   cfg.ScoreThreshold,
		},
		norm:    normalize.New(),
		engine:  insight.NewEngine(gen, cfg.AITimeout),
		debt:    agents.DefaultDebtPolicy(),
		savings: agents.DefaultSavingsPolicy(),
		budget:  budget,
		payoff:  agents.DefaultPayoffPolicy(),
	}
}

// Analyze runs one payload through the whole pipeline. The only failures
// are *domain.ParseError for undecodable payloads and *domain.ValidationError
// for content rejections; everything past normalization always succeeds.
func (o *Orchestrator) Analyze(ctx context.Context, payload []byte, format ingest.Format) (*domain.Report, error) {
	state := &State{Payload: payload, Format: format}
	pipeline := NewPipeline(
		&IngestStep{},
		&ValidateStep{Policy: o.policy},
		&NormalizeStep{Normalizer: o.norm},
		&BuildProfileStep{},
		o.agentsStep(),
		&MergeStep{},
	)
	if err := pipeline.Execute(ctx, state); err != nil {
		return nil, fmt.Errorf("analyze %s payload: %w", format, err)
	}
	return state.Report, nil
}

// AnalyzeTransactions runs the analysis stages on already-normalized
// transactions, bypassing ingestion and validation. Used for the bundled
// sample dataset.
func (o *Orchestrator) AnalyzeTransactions(ctx context.Context, txs domain.TransactionSet) *domain.Report {
	state := &State{Normalized: normalize.Result{Transactions: txs, Total: len(txs)}}
	pipeline := NewPipeline(
		&BuildProfileStep{},
		o.agentsStep(),
		&MergeStep{},
	)
	// These steps cannot fail.
	_ = pipeline.Execute(ctx, state)
	return state.Report
}

func (o *Orchestrator) agentsStep() *RunAgentsStep {
	return &RunAgentsStep{
		Engine:  o.engine,
		Debt:    o.debt,
		Savings: o.savings,
		Budget:  o.budget,
		Payoff:  o.payoff,
	}
}
