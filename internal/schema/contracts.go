package schema

// =============================================================================
// CONTRACT JSON SCHEMAS
// =============================================================================
// These constants are the provider-facing half of each contract. They are
// passed to the completion provider's structured-output mechanism
// (response_format json_schema for OpenAI-compatible APIs, responseJsonSchema
// for Gemini). The field descriptions are shown to the model and instruct it
// on intent; keep them in sync with the struct docs in types.go.

// ConversationResponseSchema validates a discovery-phase turn decision.
const ConversationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["should_generate_strategy"],
  "additionalProperties": false,
  "properties": {
    "should_generate_strategy": {
      "type": "boolean",
      "description": "True only if all discovery phases are done and user confirmed"
    },
    "response_to_user": {
      "type": "string",
      "description": "The response message to the user if strategy is not yet generated"
    }
  }
}`

// ProductAnalysisSchema validates the analysis-phase output.
const ProductAnalysisSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["product_summary", "target_users", "problem_statement", "competitors", "pros", "cons", "references"],
  "additionalProperties": false,
  "properties": {
    "product_summary": {
      "type": "string",
      "description": "Summary of the product"
    },
    "target_users": {
      "type": "string",
      "description": "Who the product is for"
    },
    "problem_statement": {
      "type": "string",
      "description": "Problem the product solves"
    },
    "competitors": {
      "type": "array",
      "description": "List of competing or similar products",
      "items": {
        "type": "object",
        "required": ["name", "description", "positioning"],
        "additionalProperties": false,
        "properties": {
          "name": {
            "type": "string",
            "description": "Name of the competitor product"
          },
          "description": {
            "type": "string",
            "description": "What the competitor does"
          },
          "positioning": {
            "type": "string",
            "description": "Market positioning (pricing, audience, strengths)"
          },
          "reference": {
            "type": "string",
            "description": "Official website or reliable reference link"
          }
        }
      }
    },
    "pros": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Strengths of the product"
    },
    "cons": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Weaknesses or risks"
    },
    "market_insights": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Trends, demand signals, or opportunities"
    },
    "references": {
      "type": "array",
      "items": {"type": "string"},
      "description": "List of reference links used in the analysis"
    }
  }
}`

// monthlyPlanSchema is shared by the three month_N properties.
const monthlyPlanSchema = `{
      "type": "object",
      "required": ["focus", "key_activities", "kpis", "references"],
      "additionalProperties": false,
      "properties": {
        "focus": {
          "type": "string",
          "description": "Primary focus for the month"
        },
        "key_activities": {
          "type": "array",
          "items": {"type": "string"},
          "description": "Execution steps"
        },
        "kpis": {
          "type": "array",
          "items": {"type": "string"},
          "description": "Success metrics"
        },
        "references": {
          "type": "array",
          "items": {"type": "string"},
          "description": "Links supporting strategies used in this month"
        }
      }
    }`

// MarketingStrategySchema validates the strategy-phase output.
const MarketingStrategySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["product_overview", "target_audience", "value_proposition", "channels", "month_1", "month_2", "month_3", "risks_and_mitigation", "expected_outcomes", "references"],
  "additionalProperties": false,
  "properties": {
    "product_overview": {
      "type": "string",
      "description": "Product overview in marketing context"
    },
    "target_audience": {
      "type": "string",
      "description": "Ideal customer profile and personas"
    },
    "value_proposition": {
      "type": "string",
      "description": "Core marketing value proposition"
    },
    "channels": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Marketing channels to be used"
    },
    "month_1": ` + monthlyPlanSchema + `,
    "month_2": ` + monthlyPlanSchema + `,
    "month_3": ` + monthlyPlanSchema + `,
    "risks_and_mitigation": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Risks and fallback strategies"
    },
    "expected_outcomes": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Expected results after 90 days"
    },
    "references": {
      "type": "array",
      "items": {"type": "string"},
      "description": "All references used in the strategy"
    }
  }
}`
