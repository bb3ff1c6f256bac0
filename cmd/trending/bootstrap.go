package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"trending-tickers/internal/cache"
	"trending-tickers/internal/insight"
	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/llm"
	"trending-tickers/internal/logger"
	"trending-tickers/internal/search"
	"trending-tickers/internal/shell"
	"trending-tickers/internal/store"
	"trending-tickers/internal/trace"
	"trending-tickers/internal/trend"
)

// defaultTUILogFile keeps log records off the terminal the page is drawn on
const defaultTUILogFile = "trending-tickers.log"

// initializeSystem loads .env, then sets up the logger and tracer for mode
func initializeSystem(mode string) error {
	_ = godotenv.Load()

	logCfg := logger.LoadConfigFromEnv()
	var err error
	switch {
	case mode == "tui" && logCfg.File == "":
		logCfg.File = defaultTUILogFile
		err = logger.InitWithConfig(logCfg)
	case mode == "once" && logCfg.File == "":
		// stdout carries the report
		err = logger.InitWithWriter(logCfg, os.Stderr)
	default:
		err = logger.InitWithConfig(logCfg)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(logger.Writer()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// loadConfig loads the config file and resolves provider credentials
func loadConfig(ctx context.Context, path string) (*store.Config, store.Credentials, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, store.Credentials{}, err
	}
	creds, err := cfg.Credentials(os.Getenv)
	if err != nil {
		logger.ErrorWithErr(ctx, "Missing credentials", err)
		return nil, store.Credentials{}, err
	}
	logger.Info(ctx, "Configuration loaded",
		"search", cfg.Search.Provider,
		"llm", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"cache", cfg.Cache.Backend,
		"on_error", cfg.Run.OnError,
		"parallel", cfg.Run.Parallel,
	)
	return cfg, creds, nil
}

// initializeRunner wires search, model and cache into a run orchestrator.
// The returned cache, if any, must be closed by the caller.
func initializeRunner(ctx context.Context, cfg *store.Config, creds store.Credentials) (*shell.Runner, interfaces.PromptCache, error) {
	promptCache, err := cache.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	if promptCache == nil {
		logger.Info(ctx, "Prompt cache disabled")
	}

	searcher, err := search.NewSearcher(cfg, creds)
	if err != nil {
		closeCache(ctx, promptCache)
		return nil, nil, err
	}

	model, err := llm.NewModel(ctx, cfg, creds)
	if err != nil {
		closeCache(ctx, promptCache)
		return nil, nil, err
	}
	if cfg.LLM.Provider == "NOOP" {
		logger.Warn(ctx, "No LLM provider configured - insights are placeholders")
	}

	runner := shell.NewRunner(
		trend.NewFetcher(searcher, cfg),
		insight.NewGenerator(model, promptCache),
		shell.WithPolicy(shell.Policy(cfg.Run.OnError)),
		shell.WithParallel(cfg.Run.Parallel),
	)
	return runner, promptCache, nil
}

func closeCache(ctx context.Context, c interfaces.PromptCache) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logger.Warn(ctx, "Failed to close prompt cache", "error", err)
	}
}
