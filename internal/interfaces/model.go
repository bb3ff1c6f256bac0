package interfaces

import (
	"context"

	"trending-tickers/internal/types"
)

// Model produces text for a single system/user message pair.
type Model interface {
	Generate(ctx context.Context, req types.InsightRequest) (string, error)
	// Identity names provider, model and sampling settings; it is part of every cache key.
	Identity() string
}

// InsightGenerator turns one ticker into a markdown analysis.
type InsightGenerator interface {
	GenerateInsight(ctx context.Context, ticker types.TickerCandidate) (types.InsightResponse, error)
}
