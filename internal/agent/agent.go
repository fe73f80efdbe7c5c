// Package agent sequences the three phases that turn a product conversation
// into a validated 90-day marketing strategy. The phase machine is explicit:
// each phase function maps state to a next phase with the model call as its
// only non-deterministic input, so every transition is testable with
// scripted providers. All branching lives here, outside the model boundary.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stratagem/internal/prompt"
	"stratagem/internal/provider"
	"stratagem/internal/research"
	"stratagem/internal/schema"
	"stratagem/internal/search"
)

// Phase identifies a state of the orchestrator machine.
type Phase int

const (
	PhaseConversation Phase = iota
	PhaseAnalysis
	PhaseStrategy
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseConversation:
		return "conversation"
	case PhaseAnalysis:
		return "analysis"
	case PhaseStrategy:
		return "strategy"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Agent orchestrates the conversation, analysis, and strategy phases over a
// completion provider and a search provider. One Invoke processes exactly
// one user turn end to end; invocations share no state and an Agent is safe
// for concurrent use.
type Agent struct {
	completer provider.Client
	searcher  search.Client
	logger    *zap.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger attaches a logger. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Agent over the two capabilities.
func New(completer provider.Client, searcher search.Client, opts ...Option) *Agent {
	a := &Agent{
		completer: completer,
		searcher:  searcher,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Invoke runs the phase machine for one user turn. Any capability failure
// or schema violation aborts the whole invocation; partial state is
// discarded so the caller never sees an analysis without its strategy.
func (a *Agent) Invoke(ctx context.Context, in Input) (*Output, error) {
	if in.UserMessage == "" {
		return nil, fmt.Errorf("user message is required")
	}

	st := &state{
		messages:    in.Messages,
		userMessage: in.UserMessage,
	}

	for phase := PhaseConversation; phase != PhaseDone; {
		next, err := a.step(ctx, phase, st)
		if err != nil {
			a.logger.Warn("invocation aborted",
				zap.String("phase", phase.String()),
				zap.Error(err))
			return nil, err
		}
		a.logger.Debug("phase transition",
			zap.String("from", phase.String()),
			zap.String("to", next.String()))
		phase = next
	}

	return &Output{
		Intent:               st.intent,
		Analysis:             st.analysis,
		Strategy:             st.strategy,
		ConversationResponse: st.conversationResponse,
	}, nil
}

func (a *Agent) step(ctx context.Context, phase Phase, st *state) (Phase, error) {
	switch phase {
	case PhaseConversation:
		return a.conversation(ctx, st)
	case PhaseAnalysis:
		return a.analysis(ctx, st)
	case PhaseStrategy:
		return a.strategy(ctx, st)
	default:
		return PhaseDone, fmt.Errorf("no transition from phase %s", phase)
	}
}

// conversation runs the discovery turn. The model's should_generate_strategy
// judgment is the only thing that moves the machine past this phase.
func (a *Agent) conversation(ctx context.Context, st *state) (Phase, error) {
	history := renderHistory(st.messages, st.userMessage)
	p := prompt.Consultant(history)

	raw, err := a.completer.CompleteStructured(ctx, p, provider.ResponseFormat{
		Name:   "ConversationResponse",
		Schema: schema.ConversationResponseSchema,
	})
	if err != nil {
		return PhaseDone, fmt.Errorf("conversation phase: %w", err)
	}

	decision, err := schema.DecodeConversationResponse(raw)
	if err != nil {
		return PhaseDone, fmt.Errorf("conversation phase: %w", err)
	}

	if decision.ShouldGenerateStrategy {
		st.intent = IntentGenerateStrategy
		return PhaseAnalysis, nil
	}
	st.intent = IntentContinueConversation
	st.conversationResponse = decision.ResponseToUser
	return PhaseDone, nil
}

// analysis researches the market and produces the product analysis. The two
// searches are independent and read-only, so they run concurrently; both
// must land before the prompt is built. Empty result lists are valid and
// still render as headed evidence blocks.
func (a *Agent) analysis(ctx context.Context, st *state) (Phase, error) {
	var competitorResults, trendResults []search.Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		competitorResults, err = a.searcher.Search(gctx, research.CompetitorQuery(st.userMessage), research.CompetitorResultCap)
		return err
	})
	g.Go(func() error {
		var err error
		trendResults, err = a.searcher.Search(gctx, research.TrendQuery(st.userMessage), research.TrendResultCap)
		return err
	})
	if err := g.Wait(); err != nil {
		return PhaseDone, fmt.Errorf("analysis phase: %w", err)
	}

	a.logger.Debug("analysis research complete",
		zap.Int("competitor_results", len(competitorResults)),
		zap.Int("trend_results", len(trendResults)))

	researchContext := research.FormatBlock(research.CompetitorHeading, competitorResults) +
		"\n" + research.FormatBlock(research.TrendHeading, trendResults)

	p := prompt.Analysis(st.userMessage, researchContext)
	raw, err := a.completer.CompleteStructured(ctx, p, provider.ResponseFormat{
		Name:   "ProductAnalysis",
		Schema: schema.ProductAnalysisSchema,
	})
	if err != nil {
		return PhaseDone, fmt.Errorf("analysis phase: %w", err)
	}

	analysis, err := schema.DecodeProductAnalysis(raw)
	if err != nil {
		return PhaseDone, fmt.Errorf("analysis phase: %w", err)
	}

	st.analysis = analysis
	return PhaseStrategy, nil
}

// strategy turns the analysis into the 90-day plan, enriched with case-study
// research keyed off the product summary.
func (a *Agent) strategy(ctx context.Context, st *state) (Phase, error) {
	summary := st.analysis.ProductSummary
	if summary == "" {
		summary = st.userMessage
	}

	caseResults, err := a.searcher.Search(ctx, research.CaseStudyQuery(summary), research.CaseStudyResultCap)
	if err != nil {
		return PhaseDone, fmt.Errorf("strategy phase: %w", err)
	}

	a.logger.Debug("strategy research complete",
		zap.Int("case_results", len(caseResults)))

	details, err := serializeAnalysis(st.analysis)
	if err != nil {
		return PhaseDone, fmt.Errorf("strategy phase: %w", err)
	}

	researchContext := research.FormatBlock(research.CaseStudyHeading, caseResults)

	p := prompt.Strategy(details, researchContext)
	raw, err := a.completer.CompleteStructured(ctx, p, provider.ResponseFormat{
		Name:   "MarketingStrategy",
		Schema: schema.MarketingStrategySchema,
	})
	if err != nil {
		return PhaseDone, fmt.Errorf("strategy phase: %w", err)
	}

	plan, err := schema.DecodeMarketingStrategy(raw)
	if err != nil {
		return PhaseDone, fmt.Errorf("strategy phase: %w", err)
	}

	st.strategy = plan
	return PhaseDone, nil
}

// serializeAnalysis renders the analysis as indented JSON inside a labeled
// block for the strategy prompt.
func serializeAnalysis(analysis *schema.ProductAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize analysis: %w", err)
	}
	return "Product Analysis:\n" + string(data), nil
}
