package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Violation reports a model response that could not be coerced into its
// contract. It is fatal for the invocation that produced it; the
// orchestrator never defaults around a violation.
type Violation struct {
	Contract string // contract name, e.g. "ProductAnalysis"
	Reason   string
	Err      error // underlying decode error, if any
}

func (v *Violation) Error() string {
	if v.Err != nil {
		return fmt.Sprintf("schema violation (%s): %s: %v", v.Contract, v.Reason, v.Err)
	}
	return fmt.Sprintf("schema violation (%s): %s", v.Contract, v.Reason)
}

func (v *Violation) Unwrap() error { return v.Err }

// ExtractJSON finds the JSON object in a raw model response, tolerating
// markdown fences and conversational preamble around it.
func ExtractJSON(response string) string {
	response = stripFences(response)

	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		c := response[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1]
			}
		}
	}

	return ""
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// DecodeConversationResponse decodes and validates a discovery-turn decision.
func DecodeConversationResponse(raw string) (*ConversationResponse, error) {
	var out ConversationResponse
	if err := decodeInto(raw, "ConversationResponse", &out); err != nil {
		return nil, err
	}
	if !out.ShouldGenerateStrategy && strings.TrimSpace(out.ResponseToUser) == "" {
		return nil, &Violation{
			Contract: "ConversationResponse",
			Reason:   "response_to_user is required when should_generate_strategy is false",
		}
	}
	return &out, nil
}

// DecodeProductAnalysis decodes and validates an analysis-phase response.
func DecodeProductAnalysis(raw string) (*ProductAnalysis, error) {
	var out ProductAnalysis
	if err := decodeInto(raw, "ProductAnalysis", &out); err != nil {
		return nil, err
	}
	if missing := firstMissing([]requiredField{
		{"product_summary", out.ProductSummary},
		{"target_users", out.TargetUsers},
		{"problem_statement", out.ProblemStatement},
	}); missing != "" {
		return nil, &Violation{Contract: "ProductAnalysis", Reason: "missing required field " + missing}
	}
	out.normalize()
	return &out, nil
}

// DecodeMarketingStrategy decodes and validates a strategy-phase response.
func DecodeMarketingStrategy(raw string) (*MarketingStrategy, error) {
	var out MarketingStrategy
	if err := decodeInto(raw, "MarketingStrategy", &out); err != nil {
		return nil, err
	}
	if missing := firstMissing([]requiredField{
		{"product_overview", out.ProductOverview},
		{"target_audience", out.TargetAudience},
		{"value_proposition", out.ValueProposition},
	}); missing != "" {
		return nil, &Violation{Contract: "MarketingStrategy", Reason: "missing required field " + missing}
	}
	months := []struct {
		name string
		plan *MonthlyPlan
	}{
		{"month_1", &out.Month1},
		{"month_2", &out.Month2},
		{"month_3", &out.Month3},
	}
	for _, m := range months {
		if strings.TrimSpace(m.plan.Focus) == "" {
			return nil, &Violation{Contract: "MarketingStrategy", Reason: "missing required field " + m.name + ".focus"}
		}
	}
	out.normalize()
	return &out, nil
}

func decodeInto(raw, contract string, v any) error {
	payload := ExtractJSON(raw)
	if payload == "" {
		return &Violation{Contract: contract, Reason: "no JSON object in model response"}
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return &Violation{Contract: contract, Reason: "response does not match contract", Err: err}
	}
	return nil
}

type requiredField struct {
	name  string
	value string
}

func firstMissing(fields []requiredField) string {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return f.name
		}
	}
	return ""
}

// normalize replaces nil collections with empty ones. Contract: list fields
// default to an empty sequence when the model supplies none, never null.
// market_insights stays nil when absent; it is an optional field.
func (a *ProductAnalysis) normalize() {
	if a.Competitors == nil {
		a.Competitors = []Competitor{}
	}
	if a.Pros == nil {
		a.Pros = []string{}
	}
	if a.Cons == nil {
		a.Cons = []string{}
	}
	if a.References == nil {
		a.References = []string{}
	}
}

func (m *MonthlyPlan) normalize() {
	if m.KeyActivities == nil {
		m.KeyActivities = []string{}
	}
	if m.KPIs == nil {
		m.KPIs = []string{}
	}
	if m.References == nil {
		m.References = []string{}
	}
}

func (s *MarketingStrategy) normalize() {
	if s.Channels == nil {
		s.Channels = []string{}
	}
	if s.RisksAndMitigation == nil {
		s.RisksAndMitigation = []string{}
	}
	if s.ExpectedOutcomes == nil {
		s.ExpectedOutcomes = []string{}
	}
	if s.References == nil {
		s.References = []string{}
	}
	s.Month1.normalize()
	s.Month2.normalize()
	s.Month3.normalize()
}
