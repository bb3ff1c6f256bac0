package trend

import (
	"context"
	"fmt"
	"time"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/logger"
	"trending-tickers/internal/store"
	"trending-tickers/internal/trace"
	"trending-tickers/internal/types"
)

// Fetcher runs the trending query and extracts the trending set.
type Fetcher struct {
	searcher   interfaces.Searcher
	query      string
	topic      string
	maxResults int
	timeout    time.Duration
}

var _ interfaces.TrendFetcher = (*Fetcher)(nil)

func NewFetcher(searcher interfaces.Searcher, cfg *store.Config) *Fetcher {
	return &Fetcher{
		searcher:   searcher,
		query:      cfg.Search.Query,
		topic:      cfg.Search.Topic,
		maxResults: cfg.Search.MaxResults,
		timeout:    cfg.SearchTimeout(),
	}
}

// FetchTrendingTickers issues one search and returns up to MaxTrending
// candidates. An empty set is a valid result, not an error.
func (f *Fetcher) FetchTrendingTickers(ctx context.Context) (types.TrendingSet, error) {
	ctx, span := trace.StartSpan(ctx, "trend.Fetch")
	defer span.End()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	res, err := f.searcher.Search(ctx, &types.SearchRequest{
		Query:      f.query,
		Topic:      f.topic,
		MaxResults: f.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrSearchUnavailable, err)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: empty search response", types.ErrSearchUnavailable)
	}

	set := ExtractTickers(res.Contents(), types.MaxTrending)
	logger.Tickers(ctx, logger.RunID(ctx), set.Strings(), "results", len(res.Results))
	return set, nil
}
