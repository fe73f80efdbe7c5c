// Package search provides the web search capability consumed by the
// orchestrator. Implementations return ranked results; an empty result list
// is a valid response, not an error.
package search

import (
	"context"
	"fmt"
)

// Result is one ranked web search result.
type Result struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Client is the search capability interface.
type Client interface {
	// Search returns up to maxResults ranked results for the query.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Error wraps a transport or API failure from a search provider.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("search provider %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
