package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"trending-tickers/internal/types"
)

const DefaultQuery = "Top 3 US trending stock tickers in the US stock market this week"

type Config struct {
	Search struct {
		Provider       string `yaml:"provider" validate:"oneof=TAVILY DUCKDUCKGO"`
		Query          string `yaml:"query" validate:"required"`
		MaxResults     int    `yaml:"max_results" validate:"min=1,max=20"`
		Topic          string `yaml:"topic" validate:"oneof=general news"`
		TimeoutSeconds int    `yaml:"timeout_seconds" validate:"min=1"`
		BaseURL        string `yaml:"base_url"`
	} `yaml:"search"`
	LLM struct {
		Provider          string  `yaml:"provider" validate:"oneof=GROQ CLAUDE GEMINI NOOP"`
		Model             string  `yaml:"model" validate:"required"`
		BaseURL           string  `yaml:"base_url"`
		Temperature       float32 `yaml:"temperature" validate:"gte=0,lte=2"`
		MaxTokens         int     `yaml:"max_tokens" validate:"min=1"`
		MaxRetries        int     `yaml:"max_retries" validate:"min=0,max=10"`
		TimeoutSeconds    int     `yaml:"timeout_seconds" validate:"min=1"`
		RequestsPerMinute int     `yaml:"requests_per_minute" validate:"min=0"`
	} `yaml:"llm"`
	Cache struct {
		Backend string `yaml:"backend" validate:"oneof=NONE MEMORY SQLITE BADGER"`
		Path    string `yaml:"path"`
	} `yaml:"cache"`
	Run struct {
		OnError  string `yaml:"on_error" validate:"oneof=SKIP ABORT"`
		Parallel bool   `yaml:"parallel"`
	} `yaml:"run"`
	Web struct {
		Addr string `yaml:"addr"`
	} `yaml:"web"`
}

// Credentials are provider secrets read from the environment, never from the YAML file.
type Credentials struct {
	SearchAPIKey string
	ModelAPIKey  string
}

type providerDefaults struct {
	Model   string
	BaseURL string
}

// Applied after the YAML overlay, once the provider is known.
var llmDefaults = map[string]providerDefaults{
	"GROQ":   {Model: "llama-3.3-70b-versatile", BaseURL: "https://api.groq.com/openai/v1"},
	"CLAUDE": {Model: "claude-sonnet-4-5"},
	"GEMINI": {Model: "gemini-2.5-flash"},
	"NOOP":   {Model: "noop"},
}

var cachePaths = map[string]string{
	"SQLITE": ".insights.db",
	"BADGER": ".insights-badger",
}

// Default returns the built-in configuration with provider defaults applied.
func Default() *Config {
	c := base()
	c.applyProviderDefaults()
	return c
}

// base is what a YAML file is overlaid on.
func base() *Config {
	var c Config
	c.Search.Provider = "TAVILY"
	c.Search.Query = DefaultQuery
	c.Search.MaxResults = 5
	c.Search.Topic = "general"
	c.Search.TimeoutSeconds = 30

	c.LLM.Provider = "GROQ"
	c.LLM.Temperature = 0.2
	c.LLM.MaxTokens = 1024
	c.LLM.MaxRetries = 3
	c.LLM.TimeoutSeconds = 120
	c.LLM.RequestsPerMinute = 30

	c.Cache.Backend = "MEMORY"

	c.Run.OnError = "SKIP"
	c.Web.Addr = ":8501"
	return &c
}

func (c *Config) applyProviderDefaults() {
	if d, ok := llmDefaults[c.LLM.Provider]; ok {
		if c.LLM.Model == "" {
			c.LLM.Model = d.Model
		}
		if c.LLM.BaseURL == "" {
			c.LLM.BaseURL = d.BaseURL
		}
	}
	if c.Cache.Path == "" {
		c.Cache.Path = cachePaths[c.Cache.Backend]
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	for provider, d := range llmDefaults {
		if provider == c.LLM.Provider {
			continue
		}
		if c.LLM.Model == d.Model {
			return fmt.Errorf("llm.model '%s' belongs to provider %s, not %s", c.LLM.Model, provider, c.LLM.Provider)
		}
		if d.BaseURL != "" && c.LLM.BaseURL == d.BaseURL {
			return fmt.Errorf("llm.base_url '%s' belongs to provider %s, not %s", c.LLM.BaseURL, provider, c.LLM.Provider)
		}
	}
	if c.LLM.BaseURL != "" && (c.LLM.Provider == "GEMINI" || c.LLM.Provider == "NOOP") {
		return fmt.Errorf("llm.base_url is not supported for provider %s", c.LLM.Provider)
	}
	if (c.Cache.Backend == "SQLITE" || c.Cache.Backend == "BADGER") && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required for backend '%s'", c.Cache.Backend)
	}
	if c.LLM.Provider == "GROQ" && c.LLM.BaseURL == "" {
		return errors.New("llm.base_url cannot be empty for provider GROQ")
	}
	return nil
}

// SearchTimeout is the upper bound for one search call.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

// ModelTimeout is the upper bound for one model attempt.
func (c *Config) ModelTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// Credentials resolves the secrets the configured providers need. A missing
// variable fails with ErrConfigurationMissing so startup stops before the UI opens.
func (c *Config) Credentials(getenv func(string) string) (Credentials, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	var creds Credentials
	var missing []string

	if c.Search.Provider == "TAVILY" {
		creds.SearchAPIKey = strings.TrimSpace(getenv("TAVILY_API_KEY"))
		if creds.SearchAPIKey == "" {
			missing = append(missing, "TAVILY_API_KEY")
		}
	}

	if env := modelKeyEnv(c.LLM.Provider); env != "" {
		creds.ModelAPIKey = strings.TrimSpace(getenv(env))
		if creds.ModelAPIKey == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("%w: %s not set", types.ErrConfigurationMissing, strings.Join(missing, ", "))
	}
	return creds, nil
}

func modelKeyEnv(provider string) string {
	switch provider {
	case "GROQ":
		return "GROQ_API_KEY"
	case "CLAUDE":
		return "ANTHROPIC_API_KEY"
	case "GEMINI":
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// LoadConfig overlays the YAML file at path on the built-in configuration,
// then fills provider and backend defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	c := base()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}

	c.Search.Provider = strings.ToUpper(c.Search.Provider)
	c.LLM.Provider = strings.ToUpper(c.LLM.Provider)
	c.Cache.Backend = strings.ToUpper(c.Cache.Backend)
	c.Run.OnError = strings.ToUpper(c.Run.OnError)
	c.applyProviderDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return c, nil
}
