// Package config holds the explicit configuration passed into the agent's
// construction. Nothing here is process-global: two configs (say, a test
// provider and a production one) can coexist in one process.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Completion provider names.
const (
	CompletionGroq   = "groq"
	CompletionGemini = "gemini"
)

// Search provider names.
const (
	SearchTavily     = "tavily"
	SearchDuckDuckGo = "duckduckgo"
)

// Config is the full application configuration.
type Config struct {
	Completion CompletionConfig `yaml:"completion"`
	Search     SearchConfig     `yaml:"search"`
	Verbose    bool             `yaml:"verbose"`
}

// CompletionConfig configures the completion provider.
type CompletionConfig struct {
	Provider string `yaml:"provider"` // groq, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// SearchConfig configures the search provider.
type SearchConfig struct {
	Provider string `yaml:"provider"` // tavily, duckduckgo
	APIKey   string `yaml:"api_key"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Completion: CompletionConfig{
			Provider: CompletionGroq,
			Timeout:  "120s",
		},
		Search: SearchConfig{
			Provider: SearchTavily,
		},
	}
}

// Load builds the configuration: defaults, then the optional YAML file,
// then environment overrides (a .env file is honored if present).
func Load(path string) (Config, error) {
	// Best-effort: absence of a .env file is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("COMPLETION_PROVIDER"); v != "" {
		c.Completion.Provider = v
	}
	if v := os.Getenv("MODEL"); v != "" {
		c.Completion.Model = v
	}
	switch c.Completion.Provider {
	case CompletionGemini:
		if v := os.Getenv("GEMINI_API_KEY"); v != "" {
			c.Completion.APIKey = v
		}
	default:
		if v := os.Getenv("GROQ_API_KEY"); v != "" {
			c.Completion.APIKey = v
		}
	}
	if v := os.Getenv("SEARCH_PROVIDER"); v != "" {
		c.Search.Provider = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.Search.APIKey = v
	}
	// Without a Tavily key the keyless provider is the only one that works.
	if c.Search.Provider == SearchTavily && c.Search.APIKey == "" {
		c.Search.Provider = SearchDuckDuckGo
	}
}

// Validate rejects configurations the wiring layer cannot act on.
func (c *Config) Validate() error {
	switch c.Completion.Provider {
	case CompletionGroq, CompletionGemini:
	default:
		return fmt.Errorf("unknown completion provider %q", c.Completion.Provider)
	}
	if c.Completion.APIKey == "" {
		return fmt.Errorf("completion provider %s requires an API key", c.Completion.Provider)
	}
	switch c.Search.Provider {
	case SearchTavily:
		if c.Search.APIKey == "" {
			return fmt.Errorf("search provider tavily requires an API key")
		}
	case SearchDuckDuckGo:
	default:
		return fmt.Errorf("unknown search provider %q", c.Search.Provider)
	}
	if _, err := c.CompletionTimeout(); err != nil {
		return err
	}
	return nil
}

// CompletionTimeout parses the completion timeout.
func (c *Config) CompletionTimeout() (time.Duration, error) {
	if c.Completion.Timeout == "" {
		return 120 * time.Second, nil
	}
	d, err := time.ParseDuration(c.Completion.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid completion timeout %q: %w", c.Completion.Timeout, err)
	}
	return d, nil
}
