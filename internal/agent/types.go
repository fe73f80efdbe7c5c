package agent

import (
	"strings"

	"stratagem/internal/schema"
)

// Role restricts a turn to the two roles the agent understands.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation history. History is owned by the
// caller; the agent receives it as an immutable ordered sequence and never
// mutates it.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Intent is the model-judged outcome of the discovery phase.
type Intent string

const (
	IntentGenerateStrategy     Intent = "GENERATE_STRATEGY"
	IntentContinueConversation Intent = "CONTINUE_CONVERSATION"
)

// Input is one orchestrator invocation: all prior turns plus the current
// user message. The caller persists the user's turn before invoking and
// passes prior turns excluding the one just persisted.
type Input struct {
	Messages    []Turn
	UserMessage string
}

// Output is the result of a full run. Exactly one of ConversationResponse
// and Strategy is populated; Analysis is carried along only when a strategy
// was generated.
type Output struct {
	Intent               Intent
	Analysis             *schema.ProductAnalysis
	Strategy             *schema.MarketingStrategy
	ConversationResponse string
}

// state is the per-invocation working state, built up strictly sequentially
// across the phase functions.
type state struct {
	messages             []Turn
	userMessage          string
	intent               Intent
	analysis             *schema.ProductAnalysis
	strategy             *schema.MarketingStrategy
	conversationResponse string
}

// renderHistory renders prior turns as "role: content" lines with the
// current user message appended last. Turns are passed through by position;
// no content-based filtering is applied.
func renderHistory(messages []Turn, userMessage string) string {
	var sb strings.Builder
	for _, m := range messages {
		sb.WriteString(string(m.Role))
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString(string(RoleUser))
	sb.WriteString(": ")
	sb.WriteString(userMessage)
	return sb.String()
}
