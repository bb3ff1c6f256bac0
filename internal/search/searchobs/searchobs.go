package searchobs

import (
	"context"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/logger"
	"trending-tickers/internal/trace"
	"trending-tickers/internal/types"
)

type observableSearcher struct {
	searcher interfaces.Searcher
	provider string
}

var _ interfaces.Searcher = (*observableSearcher)(nil)

// Wrap wraps a searcher with logging and tracing
func Wrap(searcher interfaces.Searcher, provider string) interfaces.Searcher {
	return &observableSearcher{searcher: searcher, provider: provider}
}

func (o *observableSearcher) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResult, error) {
	ctx, span := trace.StartSpan(ctx, "search.Search")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Searching", "provider", o.provider, "query", req.Query, "max_results", req.MaxResults)

	res, err := o.searcher.Search(ctx, req)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Search failed", err, "provider", o.provider, "query", req.Query)
		return nil, err
	}

	if res == nil {
		logger.WarnSkip(ctx, 1, "Search returned no response", "provider", o.provider, "query", req.Query)
		return nil, nil
	}

	logger.InfoSkip(ctx, 1, "Search completed", "provider", o.provider, "results", len(res.Results))
	return res, nil
}
