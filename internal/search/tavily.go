package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TavilyClient implements Client for the Tavily search API.
type TavilyClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// TavilyConfig holds configuration for the Tavily client.
type TavilyConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultTavilyConfig returns sensible defaults.
func DefaultTavilyConfig(apiKey string) TavilyConfig {
	return TavilyConfig{
		APIKey:  apiKey,
		BaseURL: "https://api.tavily.com",
		Timeout: 30 * time.Second,
	}
}

// NewTavilyClient creates a Tavily client with default config.
func NewTavilyClient(apiKey string) *TavilyClient {
	return NewTavilyClientWithConfig(DefaultTavilyConfig(apiKey))
}

// NewTavilyClientWithConfig creates a Tavily client with custom config.
func NewTavilyClientWithConfig(config TavilyConfig) *TavilyClient {
	return &TavilyClient{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// tavilyRequest represents the API request structure.
type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

// tavilyResponse represents the API response structure.
type tavilyResponse struct {
	Query   string `json:"query"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
	Error string `json:"error,omitempty"`
}

// Search issues one query against the Tavily API.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if c.apiKey == "" {
		return nil, &Error{Provider: "tavily", Err: fmt.Errorf("API key not configured")}
	}

	reqBody := tavilyRequest{
		APIKey:     c.apiKey,
		Query:      query,
		MaxResults: maxResults,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &Error{Provider: "tavily", Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(jsonData))
	if err != nil {
		return nil, &Error{Provider: "tavily", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Provider: "tavily", Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Provider: "tavily", Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Provider: "tavily", Err: fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))}
	}

	var tavilyResp tavilyResponse
	if err := json.Unmarshal(body, &tavilyResp); err != nil {
		return nil, &Error{Provider: "tavily", Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if tavilyResp.Error != "" {
		return nil, &Error{Provider: "tavily", Err: fmt.Errorf("API error: %s", tavilyResp.Error)}
	}

	results := make([]Result, 0, len(tavilyResp.Results))
	for _, r := range tavilyResp.Results {
		results = append(results, Result{
			Title:   r.Title,
			Content: r.Content,
			URL:     r.URL,
		})
	}
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}
