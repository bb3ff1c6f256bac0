package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trending-tickers/internal/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "TAVILY", cfg.Search.Provider)
	assert.Equal(t, DefaultQuery, cfg.Search.Query)
	assert.Equal(t, "GROQ", cfg.LLM.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, 120, cfg.LLM.TimeoutSeconds)
	assert.Equal(t, "MEMORY", cfg.Cache.Backend)
	assert.Empty(t, cfg.Cache.Path)
	assert.Equal(t, "SKIP", cfg.Run.OnError)
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	p := writeConfig(t, `
search:
  provider: duckduckgo
  max_results: 8
llm:
  provider: claude
  model: claude-sonnet-4-20250514
cache:
  backend: sqlite
  path: cache.db
run:
  on_error: abort
  parallel: true
`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, "DUCKDUCKGO", cfg.Search.Provider)
	assert.Equal(t, 8, cfg.Search.MaxResults)
	assert.Equal(t, DefaultQuery, cfg.Search.Query, "unset keys keep defaults")
	assert.Equal(t, "CLAUDE", cfg.LLM.Provider)
	assert.Equal(t, "SQLITE", cfg.Cache.Backend)
	assert.Equal(t, "ABORT", cfg.Run.OnError)
	assert.True(t, cfg.Run.Parallel)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown search provider", "search:\n  provider: BING\n"},
		{"unknown llm provider", "llm:\n  provider: MYSTERY\n"},
		{"negative retries", "llm:\n  max_retries: -1\n"},
		{"bad policy", "run:\n  on_error: RETRY\n"},
		{"claude with groq base url", "llm:\n  provider: CLAUDE\n  base_url: https://api.groq.com/openai/v1\n"},
		{"claude with groq model", "llm:\n  provider: CLAUDE\n  model: llama-3.3-70b-versatile\n"},
		{"gemini with claude model", "llm:\n  provider: GEMINI\n  model: claude-sonnet-4-5\n"},
		{"gemini with base url", "llm:\n  provider: GEMINI\n  base_url: https://example.com\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigProviderDefaults(t *testing.T) {
	tests := []struct {
		provider string
		model    string
		baseURL  string
	}{
		{"GROQ", "llama-3.3-70b-versatile", "https://api.groq.com/openai/v1"},
		{"CLAUDE", "claude-sonnet-4-5", ""},
		{"GEMINI", "gemini-2.5-flash", ""},
		{"NOOP", "noop", ""},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, "llm:\n  provider: "+tt.provider+"\n"))
			require.NoError(t, err)
			assert.Equal(t, tt.model, cfg.LLM.Model)
			assert.Equal(t, tt.baseURL, cfg.LLM.BaseURL)
		})
	}
}

func TestShippedConfigSwitchesProvider(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("..", "..", "config.yaml"))
	require.NoError(t, err)
	body := strings.Replace(string(b), "provider: GROQ", "provider: CLAUDE", 1)

	cfg, err := LoadConfig(writeConfig(t, body))
	require.NoError(t, err)
	assert.Equal(t, "CLAUDE", cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet-4-5", cfg.LLM.Model)
	assert.Empty(t, cfg.LLM.BaseURL)
}

func TestLoadConfigCachePathPerBackend(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "cache:\n  backend: sqlite\n"))
	require.NoError(t, err)
	assert.Equal(t, ".insights.db", cfg.Cache.Path)

	cfg, err = LoadConfig(writeConfig(t, "cache:\n  backend: badger\n"))
	require.NoError(t, err)
	assert.Equal(t, ".insights-badger", cfg.Cache.Path)

	cfg, err = LoadConfig(writeConfig(t, "cache:\n  backend: badger\n  path: /var/cache/tt\n"))
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/tt", cfg.Cache.Path)
}

func TestCredentialsMissingIsConfigurationMissing(t *testing.T) {
	cfg := Default()
	_, err := cfg.Credentials(func(string) string { return "" })

	require.ErrorIs(t, err, types.ErrConfigurationMissing)
	assert.Contains(t, err.Error(), "TAVILY_API_KEY")
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestCredentialsResolved(t *testing.T) {
	env := map[string]string{"TAVILY_API_KEY": "tv-key", "GROQ_API_KEY": " gq-key "}
	cfg := Default()

	creds, err := cfg.Credentials(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "tv-key", creds.SearchAPIKey)
	assert.Equal(t, "gq-key", creds.ModelAPIKey)
}

func TestCredentialsNotNeededForKeylessProviders(t *testing.T) {
	cfg := Default()
	cfg.Search.Provider = "DUCKDUCKGO"
	cfg.LLM.Provider = "NOOP"

	_, err := cfg.Credentials(func(string) string { return "" })
	assert.NoError(t, err)
}
