package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"

	"trending-tickers/internal/logger"
	"trending-tickers/internal/shell"
	"trending-tickers/internal/trace"
	"trending-tickers/internal/tui"
	"trending-tickers/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	mode := flag.String("mode", "tui", "surface to run: tui, web or once")
	flag.Parse()

	if err := run(*configPath, *mode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, mode string) error {
	switch mode {
	case "tui", "web", "once":
	default:
		return fmt.Errorf("unknown mode %q (want tui, web or once)", mode)
	}

	if err := initializeSystem(mode); err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := trace.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to shutdown tracer: %v\n", err)
		}
	}()

	cfg, creds, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}

	runner, promptCache, err := initializeRunner(ctx, cfg, creds)
	if err != nil {
		return err
	}
	defer closeCache(ctx, promptCache)

	logger.Info(ctx, "Starting", "mode", mode)
	switch mode {
	case "web":
		gin.SetMode(gin.ReleaseMode)
		return web.NewServer(runner).ListenAndServe(ctx, cfg.Web.Addr)
	case "once":
		return runOnce(ctx, runner, os.Stdout)
	default:
		p := tea.NewProgram(tui.New(ctx, runner.Run), tea.WithAltScreen(), tea.WithContext(ctx))
		_, err := p.Run()
		if err != nil && ctx.Err() != nil {
			return nil
		}
		return err
	}
}

// runOnce performs a single run and prints the report as markdown.
func runOnce(ctx context.Context, runner *shell.Runner, out io.Writer) error {
	return runner.Run(ctx, func(e shell.Event) {
		switch e.Kind {
		case shell.TickersFound:
			fmt.Fprintf(out, "Extracted tickers: %v\n\n", e.Tickers.Strings())
		case shell.NoTickers:
			fmt.Fprintln(out, "⚠️ No tickers found. Check search results or widen the filter.")
		case shell.TickerHeading:
			fmt.Fprintf(out, "### 📈 %s\n\n", e.Ticker)
		case shell.InsightReady:
			fmt.Fprintf(out, "%s\n\n", e.Insight)
		case shell.InsightFailed:
			fmt.Fprintf(out, "_Could not generate insight for %s: %v_\n\n", e.Ticker, e.Err)
		}
	})
}
