package provider

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient implements Client on the Gemini API. Structured output is
// enforced with responseJsonSchema + an application/json MIME type.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey: apiKey,
		Model:  "gemini-2.5-flash",
	}
}

// NewGeminiClient creates a Gemini client.
func NewGeminiClient(ctx context.Context, config GeminiConfig) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// CompleteStructured sends the prompt bound to the contract schema.
func (c *GeminiClient) CompleteStructured(ctx context.Context, prompt string, format ResponseFormat) (string, error) {
	schemaMap, err := format.SchemaMap()
	if err != nil {
		return "", &Error{Provider: "gemini", Err: err}
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr[float32](0),
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: schemaMap,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", &Error{Provider: "gemini", Err: fmt.Errorf("generate content failed: %w", err)}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &Error{Provider: "gemini", Err: fmt.Errorf("no completion returned")}
	}
	return text, nil
}

// Model returns the current model.
func (c *GeminiClient) Model() string {
	return c.model
}
