package llm

import (
	"context"
	"fmt"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/llm/claude"
	"trending-tickers/internal/llm/gemini"
	"trending-tickers/internal/llm/groq"
	"trending-tickers/internal/llm/llmobs"
	"trending-tickers/internal/llm/noop"
	"trending-tickers/internal/store"
)

// NewModel builds the configured provider behind the resilient wrapper and
// the observability middleware.
func NewModel(ctx context.Context, cfg *store.Config, creds store.Credentials) (interfaces.Model, error) {
	var m interfaces.Model
	switch cfg.LLM.Provider {
	case "GROQ":
		g, err := groq.New(ctx, groq.Config{
			BaseURL:     cfg.LLM.BaseURL,
			APIKey:      creds.ModelAPIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		m = g
	case "CLAUDE":
		m = claude.New(claude.Config{
			APIKey:      creds.ModelAPIKey,
			Model:       cfg.LLM.Model,
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
	case "GEMINI":
		g, err := gemini.New(ctx, gemini.Config{
			APIKey:      creds.ModelAPIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		m = g
	case "NOOP":
		// Offline stub; nothing to retry
		return llmobs.Wrap(noop.New()), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}

	r := NewResilient(m,
		WithTimeout(cfg.ModelTimeout()),
		WithMaxRetries(cfg.LLM.MaxRetries),
		WithRequestsPerMinute(cfg.LLM.RequestsPerMinute),
	)
	return llmobs.Wrap(r), nil
}
