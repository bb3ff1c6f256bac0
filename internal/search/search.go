package search

import (
	"fmt"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/search/duckduckgo"
	"trending-tickers/internal/search/searchobs"
	"trending-tickers/internal/search/tavily"
	"trending-tickers/internal/store"
)

// NewSearcher builds the configured search provider wrapped with observability.
func NewSearcher(cfg *store.Config, creds store.Credentials) (interfaces.Searcher, error) {
	var s interfaces.Searcher
	switch cfg.Search.Provider {
	case "TAVILY":
		opts := []tavily.Option{tavily.WithTimeout(cfg.SearchTimeout())}
		if cfg.Search.BaseURL != "" {
			opts = append(opts, tavily.WithBaseURL(cfg.Search.BaseURL))
		}
		s = tavily.NewClient(creds.SearchAPIKey, opts...)
	case "DUCKDUCKGO":
		s = duckduckgo.NewScraper(cfg.Search.BaseURL, cfg.SearchTimeout())
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", cfg.Search.Provider)
	}
	return searchobs.Wrap(s, cfg.Search.Provider), nil
}
