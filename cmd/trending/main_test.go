package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"trending-tickers/internal/shell"
	"trending-tickers/internal/types"
)

type fixedFetcher types.TrendingSet

func (f fixedFetcher) FetchTrendingTickers(context.Context) (types.TrendingSet, error) {
	return types.TrendingSet(f), nil
}

type echoGenerator struct{}

func (echoGenerator) GenerateInsight(_ context.Context, t types.TickerCandidate) (types.InsightResponse, error) {
	return types.InsightResponse("Insight for " + t), nil
}

func TestRunOnce(t *testing.T) {
	var out bytes.Buffer
	runner := shell.NewRunner(fixedFetcher{"AAPL", "MSFT"}, echoGenerator{})

	if err := runOnce(context.Background(), runner, &out); err != nil {
		t.Fatalf("runOnce: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Extracted tickers: [AAPL MSFT]", "### 📈 AAPL", "Insight for AAPL", "### 📈 MSFT"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunOnceNoTickers(t *testing.T) {
	var out bytes.Buffer
	runner := shell.NewRunner(fixedFetcher{}, echoGenerator{})

	if err := runOnce(context.Background(), runner, &out); err != nil {
		t.Fatalf("runOnce: %v", err)
	}
	if !strings.Contains(out.String(), "No tickers found") {
		t.Errorf("expected warning, got %q", out.String())
	}
}

func TestRunRejectsUnknownMode(t *testing.T) {
	if err := run("config.yaml", "gui"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
