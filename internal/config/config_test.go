package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so host environment and .env
// leakage cannot skew the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"COMPLETION_PROVIDER", "MODEL",
		"GROQ_API_KEY", "GEMINI_API_KEY",
		"SEARCH_PROVIDER", "TAVILY_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultsWithEnvKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "gk")
	t.Setenv("TAVILY_API_KEY", "tk")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, CompletionGroq, cfg.Completion.Provider)
	assert.Equal(t, "gk", cfg.Completion.APIKey)
	assert.Equal(t, SearchTavily, cfg.Search.Provider)
	assert.Equal(t, "tk", cfg.Search.APIKey)
}

func TestLoadFallsBackToDuckDuckGo(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "gk")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, SearchDuckDuckGo, cfg.Search.Provider,
		"missing Tavily key must fall back to the keyless provider")
}

func TestLoadGeminiProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMPLETION_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gmk")
	t.Setenv("MODEL", "gemini-2.5-pro")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, CompletionGemini, cfg.Completion.Provider)
	assert.Equal(t, "gmk", cfg.Completion.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Completion.Model)
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
completion:
  provider: groq
  api_key: file-key
  model: llama-3.1-8b-instant
  timeout: 60s
search:
  provider: duckduckgo
verbose: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Completion.APIKey)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Completion.Model)
	assert.True(t, cfg.Verbose)

	d, err := cfg.CompletionTimeout()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, d)
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
completion:
  provider: groq
  api_key: file-key
search:
  provider: duckduckgo
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Completion.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "Valid Groq",
			mutate: func(c *Config) {},
		},
		{
			name:    "Unknown Completion Provider",
			mutate:  func(c *Config) { c.Completion.Provider = "openai" },
			wantErr: "unknown completion provider",
		},
		{
			name:    "Missing Completion Key",
			mutate:  func(c *Config) { c.Completion.APIKey = "" },
			wantErr: "requires an API key",
		},
		{
			name:    "Tavily Without Key",
			mutate:  func(c *Config) { c.Search.Provider = SearchTavily; c.Search.APIKey = "" },
			wantErr: "tavily requires an API key",
		},
		{
			name:    "Unknown Search Provider",
			mutate:  func(c *Config) { c.Search.Provider = "bing" },
			wantErr: "unknown search provider",
		},
		{
			name:    "Bad Timeout",
			mutate:  func(c *Config) { c.Completion.Timeout = "soon" },
			wantErr: "invalid completion timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Completion.APIKey = "k"
			cfg.Search.Provider = SearchDuckDuckGo
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompletionTimeoutDefault(t *testing.T) {
	cfg := Config{}
	d, err := cfg.CompletionTimeout()
	require.NoError(t, err)
	assert.Equal(t, 120*time.Second, d)
}
