package tavily

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"trending-tickers/internal/api"
	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/types"
)

const DefaultBaseURL = "https://api.tavily.com"

// Client talks to the Tavily search API.
type Client struct {
	apiKey string
	api    *api.Client
	retry  *api.RetryConfig
}

var _ interfaces.Searcher = (*Client)(nil)

type Option func(*options)

type options struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	retry      *api.RetryConfig
}

func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

func WithHTTPClient(hc *http.Client) Option { return func(o *options) { o.httpClient = hc } }

func WithRetry(rc *api.RetryConfig) Option { return func(o *options) { o.retry = rc } }

func NewClient(apiKey string, opts ...Option) *Client {
	o := options{baseURL: DefaultBaseURL, timeout: 30 * time.Second, retry: api.DefaultRetryConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	apiOpts := []api.ClientOption{
		api.WithBaseURL(o.baseURL),
		api.WithTimeout(o.timeout),
		api.WithLogging(true),
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(o.httpClient))
	}
	return &Client{apiKey: apiKey, api: api.NewClient(apiOpts...), retry: o.retry}
}

// SearchRequest is the Tavily request body
type SearchRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"` // basic or advanced
	Topic       string `json:"topic,omitempty"`        // general or news
	MaxResults  int    `json:"max_results,omitempty"`
}

// SearchResponse is the Tavily response body
type SearchResponse struct {
	Query   *string        `json:"query"`
	Results []SearchResult `json:"results"`
}

type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Search implements interfaces.Searcher
func (c *Client) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResult, error) {
	body := SearchRequest{
		Query:       req.Query,
		SearchDepth: "basic",
		Topic:       req.Topic,
		MaxResults:  req.MaxResults,
	}
	if body.Topic == "" {
		body.Topic = "general"
	}
	if body.MaxResults == 0 {
		body.MaxResults = 5
	}

	httpReq := api.NewRequest(http.MethodPost, "/search").
		WithContext(ctx).
		WithBody(body).
		WithHeader("Authorization", "Bearer "+c.apiKey)
	resp, err := c.api.DoWithRetry(httpReq, c.retry)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}

	var sr SearchResponse
	if err := resp.ParseJSON(&sr); err != nil {
		return nil, fmt.Errorf("tavily: %w", err)
	}
	// A body without a results array is not a search response.
	if sr.Results == nil && sr.Query == nil {
		return nil, errors.New("tavily: response has no results field")
	}

	out := &types.SearchResult{Query: req.Query, Results: make([]types.SearchItem, 0, len(sr.Results))}
	for _, r := range sr.Results {
		out.Results = append(out.Results, types.SearchItem{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
			Score:   r.Score,
		})
	}
	return out, nil
}
