// Package provider implements the completion capability: schema-bound LLM
// invocations at temperature zero. A provider returns the raw model text;
// decoding and contract validation happen in the schema package so every
// provider is held to the same contract.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
)

// ResponseFormat binds a completion to a structured output contract.
type ResponseFormat struct {
	// Name identifies the contract, e.g. "ProductAnalysis".
	Name string
	// Schema is the raw draft-07 JSON Schema text for the contract.
	Schema string
}

// SchemaMap parses the schema text into the generic map shape that provider
// APIs take in their request bodies.
func (f ResponseFormat) SchemaMap() (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(f.Schema), &m); err != nil {
		return nil, fmt.Errorf("invalid schema for contract %s: %w", f.Name, err)
	}
	return m, nil
}

// Client is the completion capability interface. Implementations must
// generate at temperature zero and constrain output to the given contract
// where the underlying API supports it.
type Client interface {
	CompleteStructured(ctx context.Context, prompt string, format ResponseFormat) (string, error)
}

// Error wraps a transport, rate-limit, or API failure from a completion
// provider. The orchestrator performs no retry; the error aborts the
// invocation.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("completion provider %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
