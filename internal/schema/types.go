// Package schema defines the structured output contracts every model
// response must satisfy. Each contract has a JSON Schema constant used for
// provider-side enforcement and a decode path that validates the raw
// response before the rest of the system is allowed to see it.
package schema

// ConversationResponse is the forced output of every discovery turn. The
// model either keeps the conversation going (response_to_user) or signals
// that all discovery phases are done and the user confirmed.
type ConversationResponse struct {
	// True only if all discovery phases are done and the user confirmed.
	ShouldGenerateStrategy bool `json:"should_generate_strategy"`

	// The response message to the user if the strategy is not yet generated.
	ResponseToUser string `json:"response_to_user,omitempty"`
}

// Competitor is one entry in the competitive landscape.
type Competitor struct {
	// Name of the competitor product.
	Name string `json:"name"`

	// What the competitor does.
	Description string `json:"description"`

	// Market positioning (pricing, audience, strengths).
	Positioning string `json:"positioning"`

	// Official website or reliable reference link.
	Reference string `json:"reference,omitempty"`
}

// ProductAnalysis is the research-grounded analysis produced before any
// strategy is planned.
type ProductAnalysis struct {
	// Summary of the product.
	ProductSummary string `json:"product_summary"`

	// Who the product is for.
	TargetUsers string `json:"target_users"`

	// Problem the product solves.
	ProblemStatement string `json:"problem_statement"`

	// List of competing or similar products.
	Competitors []Competitor `json:"competitors"`

	// Strengths of the product.
	Pros []string `json:"pros"`

	// Weaknesses or risks.
	Cons []string `json:"cons"`

	// Trends, demand signals, or opportunities. Optional.
	MarketInsights []string `json:"market_insights,omitempty"`

	// Reference links used in the analysis.
	References []string `json:"references"`
}

// MonthlyPlan is one month of the 90-day roadmap.
type MonthlyPlan struct {
	// Primary focus for the month.
	Focus string `json:"focus"`

	// Execution steps.
	KeyActivities []string `json:"key_activities"`

	// Success metrics.
	KPIs []string `json:"kpis"`

	// Links supporting strategies used in this month.
	References []string `json:"references"`
}

// MarketingStrategy is the final 90-day plan returned to the caller.
type MarketingStrategy struct {
	// Product overview in marketing context.
	ProductOverview string `json:"product_overview"`

	// Ideal customer profile and personas.
	TargetAudience string `json:"target_audience"`

	// Core marketing value proposition.
	ValueProposition string `json:"value_proposition"`

	// Marketing channels to be used.
	Channels []string `json:"channels"`

	Month1 MonthlyPlan `json:"month_1"`
	Month2 MonthlyPlan `json:"month_2"`
	Month3 MonthlyPlan `json:"month_3"`

	// Risks and fallback strategies.
	RisksAndMitigation []string `json:"risks_and_mitigation"`

	// Expected results after 90 days.
	ExpectedOutcomes []string `json:"expected_outcomes"`

	// All references used in the strategy.
	References []string `json:"references"`
}
