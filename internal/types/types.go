package types

// TickerCandidate is a short upper-case alphabetic token lifted from search text.
// Nothing checks it against a real symbol registry.
type TickerCandidate string

// TrendingSet holds at most MaxTrending unique candidates in first-occurrence order.
type TrendingSet []TickerCandidate

// MaxTrending caps the number of tickers analysed per run.
const MaxTrending = 3

// Strings returns the set as plain strings (logging, span attributes).
func (s TrendingSet) Strings() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = string(t)
	}
	return out
}

type SearchItem struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

type SearchResult struct {
	Query   string       `json:"query"`
	Results []SearchItem `json:"results"`
}

// Contents returns the free-text content of every item, in order.
func (r *SearchResult) Contents() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Results))
	for _, it := range r.Results {
		out = append(out, it.Content)
	}
	return out
}

type SearchRequest struct {
	Query      string
	Topic      string // "general" or "news"
	MaxResults int
}

// InsightRequest is the system/user message pair sent to the model for one ticker.
type InsightRequest struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// InsightResponse is the model's markdown, displayed verbatim.
type InsightResponse string
