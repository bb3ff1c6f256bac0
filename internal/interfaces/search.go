package interfaces

import (
	"context"

	"trending-tickers/internal/types"
)

// Searcher is the web search collaborator.
type Searcher interface {
	Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResult, error)
}

// TrendFetcher returns the current trending set.
type TrendFetcher interface {
	FetchTrendingTickers(ctx context.Context) (types.TrendingSet, error)
}
