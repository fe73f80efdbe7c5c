package agent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"stratagem/internal/provider"
	"stratagem/internal/schema"
	"stratagem/internal/search"
)

const continueJSON = `{"should_generate_strategy": false, "response_to_user": "Got it! Who is the product for?"}`

const confirmJSON = `{"should_generate_strategy": true}`

const analysisJSON = `{
	"product_summary": "Eco-friendly reusable water bottles",
	"target_users": "Outdoor enthusiasts",
	"problem_statement": "Single-use plastic waste",
	"competitors": [{"name": "Hydro Flask", "description": "Insulated bottles", "positioning": "Premium"}],
	"pros": ["Sustainable"],
	"cons": ["Price"],
	"references": ["https://example.com/analysis"]
}`

const strategyJSON = `{
	"product_overview": "Eco bottles",
	"target_audience": "Outdoor enthusiasts",
	"value_proposition": "Durable and sustainable",
	"channels": ["seo", "instagram"],
	"month_1": {"focus": "Foundation & Awareness", "key_activities": ["launch site"], "kpis": ["traffic"], "references": []},
	"month_2": {"focus": "Growth & Acquisition", "key_activities": ["paid ads"], "kpis": ["signups"], "references": []},
	"month_3": {"focus": "Optimization & Scaling", "key_activities": ["retention loops"], "kpis": ["repeat purchases"], "references": []},
	"risks_and_mitigation": ["ad fatigue"],
	"expected_outcomes": ["1000 customers"],
	"references": ["https://example.com/case"]
}`

// scriptedCompleter replies per contract name and records the prompts it saw.
type scriptedCompleter struct {
	mu        sync.Mutex
	responses map[string]string
	failOn    string
	failWith  error
	prompts   map[string]string
	calls     []string
}

func (c *scriptedCompleter) CompleteStructured(_ context.Context, prompt string, format provider.ResponseFormat) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.prompts == nil {
		c.prompts = make(map[string]string)
	}
	c.calls = append(c.calls, format.Name)
	c.prompts[format.Name] = prompt
	if c.failOn == format.Name {
		return "", c.failWith
	}
	resp, ok := c.responses[format.Name]
	if !ok {
		return "", errors.New("unscripted contract: " + format.Name)
	}
	return resp, nil
}

// scriptedSearcher records queries and replies from a fixed result set.
type scriptedSearcher struct {
	mu      sync.Mutex
	results []search.Result
	err     error
	delay   time.Duration
	queries []string
}

func (s *scriptedSearcher) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	if len(s.results) > maxResults {
		return s.results[:maxResults], nil
	}
	return s.results, nil
}

func TestInvokeContinuesConversation(t *testing.T) {
	completer := &scriptedCompleter{responses: map[string]string{
		"ConversationResponse": continueJSON,
	}}
	searcher := &scriptedSearcher{}
	a := New(completer, searcher)

	out, err := a.Invoke(context.Background(), Input{UserMessage: "I want to market my app"})
	require.NoError(t, err)

	assert.Equal(t, IntentContinueConversation, out.Intent)
	assert.Equal(t, "Got it! Who is the product for?", out.ConversationResponse)
	assert.Nil(t, out.Analysis)
	assert.Nil(t, out.Strategy)
	assert.Empty(t, searcher.queries, "discovery turns must not search")
	assert.Equal(t, []string{"ConversationResponse"}, completer.calls)
}

func TestInvokeGeneratesStrategy(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))

	completer := &scriptedCompleter{responses: map[string]string{
		"ConversationResponse": confirmJSON,
		"ProductAnalysis":      analysisJSON,
		"MarketingStrategy":    strategyJSON,
	}}
	searcher := &scriptedSearcher{
		results: []search.Result{
			{Title: "Hydro Flask", Content: "Insulated bottles", URL: "https://example.com/hf"},
		},
		delay: 5 * time.Millisecond,
	}
	a := New(completer, searcher)

	history := []Turn{
		{Role: RoleUser, Content: "I sell eco-friendly water bottles"},
		{Role: RoleAssistant, Content: "Who is your target user?"},
		{Role: RoleUser, Content: "Outdoor enthusiasts, global, low budget"},
		{Role: RoleAssistant, Content: "Did I get this right?"},
	}
	out, err := a.Invoke(context.Background(), Input{Messages: history, UserMessage: "Yes, that's right"})
	require.NoError(t, err)

	assert.Equal(t, IntentGenerateStrategy, out.Intent)
	assert.Empty(t, out.ConversationResponse)
	require.NotNil(t, out.Analysis)
	require.NotNil(t, out.Strategy)
	assert.Equal(t, "Eco-friendly reusable water bottles", out.Analysis.ProductSummary)
	assert.Equal(t, "Foundation & Awareness", out.Strategy.Month1.Focus)

	// All three contracts exercised, in order.
	assert.Equal(t, []string{"ConversationResponse", "ProductAnalysis", "MarketingStrategy"}, completer.calls)

	// Three searches: competitors and trends off the user message, case
	// studies off the analysis summary.
	require.Len(t, searcher.queries, 3)
	joined := strings.Join(searcher.queries, "\n")
	assert.Contains(t, joined, "top competitors OR similar products OR alternatives to: Yes, that's right")
	assert.Contains(t, joined, "market trends OR industry analysis OR demand signals for: Yes, that's right")
	assert.Contains(t, joined, "90-day launch plan for Eco-friendly reusable water bottles")

	// The analysis prompt carries the rendered evidence; the strategy prompt
	// carries the serialized analysis.
	assert.Contains(t, completer.prompts["ProductAnalysis"], "Web search results - Competitors & Alternatives:")
	assert.Contains(t, completer.prompts["ProductAnalysis"], "Hydro Flask")
	assert.Contains(t, completer.prompts["MarketingStrategy"], "Product Analysis:")
	assert.Contains(t, completer.prompts["MarketingStrategy"], `"product_summary": "Eco-friendly reusable water bottles"`)
}

func TestInvokeWithEmptySearchResults(t *testing.T) {
	completer := &scriptedCompleter{responses: map[string]string{
		"ConversationResponse": confirmJSON,
		"ProductAnalysis":      analysisJSON,
		"MarketingStrategy":    strategyJSON,
	}}
	searcher := &scriptedSearcher{results: nil}
	a := New(completer, searcher)

	out, err := a.Invoke(context.Background(), Input{UserMessage: "pitch my product"})
	require.NoError(t, err, "empty evidence is valid, generation proceeds")
	require.NotNil(t, out.Strategy)

	// Headings render even with zero results so the model sees what was
	// searched.
	assert.Contains(t, completer.prompts["ProductAnalysis"], "Web search results - Competitors & Alternatives:")
	assert.Contains(t, completer.prompts["ProductAnalysis"], "Web search results - Market Trends & Insights:")
	assert.Contains(t, completer.prompts["MarketingStrategy"], "Web search results - Relevant Marketing Case Studies & Examples:")
}

func TestInvokeSearchFailureAborts(t *testing.T) {
	completer := &scriptedCompleter{responses: map[string]string{
		"ConversationResponse": confirmJSON,
	}}
	searcher := &scriptedSearcher{err: &search.Error{Provider: "tavily", Err: errors.New("connection refused")}}
	a := New(completer, searcher)

	out, err := a.Invoke(context.Background(), Input{UserMessage: "pitch my product"})
	require.Error(t, err)
	assert.Nil(t, out, "no partial output on failure")

	var searchErr *search.Error
	assert.ErrorAs(t, err, &searchErr)
	assert.Contains(t, err.Error(), "analysis phase")
}

func TestInvokeStrategyProviderFailureAborts(t *testing.T) {
	completer := &scriptedCompleter{
		responses: map[string]string{
			"ConversationResponse": confirmJSON,
			"ProductAnalysis":      analysisJSON,
		},
		failOn:   "MarketingStrategy",
		failWith: &provider.Error{Provider: "groq", Err: errors.New("status 500")},
	}
	a := New(completer, &scriptedSearcher{})

	out, err := a.Invoke(context.Background(), Input{UserMessage: "pitch my product"})
	require.Error(t, err)
	assert.Nil(t, out, "a completed analysis must not leak when the strategy fails")

	var provErr *provider.Error
	assert.ErrorAs(t, err, &provErr)
	assert.Contains(t, err.Error(), "strategy phase")
}

func TestInvokeSchemaViolationAborts(t *testing.T) {
	completer := &scriptedCompleter{responses: map[string]string{
		"ConversationResponse": `I think we should talk more first.`,
	}}
	a := New(completer, &scriptedSearcher{})

	out, err := a.Invoke(context.Background(), Input{UserMessage: "hello"})
	require.Error(t, err)
	assert.Nil(t, out)

	var violation *schema.Violation
	assert.ErrorAs(t, err, &violation)
}

func TestInvokeRequiresUserMessage(t *testing.T) {
	a := New(&scriptedCompleter{}, &scriptedSearcher{})
	_, err := a.Invoke(context.Background(), Input{})
	require.Error(t, err)
}

func TestInvokeMutualExclusivity(t *testing.T) {
	tests := []struct {
		name      string
		responses map[string]string
	}{
		{
			name: "Continue Path",
			responses: map[string]string{
				"ConversationResponse": continueJSON,
			},
		},
		{
			name: "Strategy Path",
			responses: map[string]string{
				"ConversationResponse": confirmJSON,
				"ProductAnalysis":      analysisJSON,
				"MarketingStrategy":    strategyJSON,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(&scriptedCompleter{responses: tt.responses}, &scriptedSearcher{})
			out, err := a.Invoke(context.Background(), Input{UserMessage: "hi"})
			require.NoError(t, err)

			hasResponse := out.ConversationResponse != ""
			hasStrategy := out.Strategy != nil
			assert.NotEqual(t, hasResponse, hasStrategy,
				"exactly one of conversation response and strategy must be set")
		})
	}
}

func TestInvokeContextCancellation(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))

	completer := &scriptedCompleter{responses: map[string]string{
		"ConversationResponse": confirmJSON,
	}}
	searcher := &scriptedSearcher{delay: time.Second}
	a := New(completer, searcher)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	out, err := a.Invoke(ctx, Input{UserMessage: "pitch my product"})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRenderHistory(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi, tell me about your product"},
		{Role: RoleUser, Content: "hello"},
	}
	got := renderHistory(turns, "it's a dog-walking app")

	// Positional pass-through: repeated content is preserved, the current
	// message lands last.
	want := "user: hello\nassistant: hi, tell me about your product\nuser: hello\nuser: it's a dog-walking app"
	assert.Equal(t, want, got)
}

func TestRenderHistoryEmpty(t *testing.T) {
	assert.Equal(t, "user: first message", renderHistory(nil, "first message"))
}
