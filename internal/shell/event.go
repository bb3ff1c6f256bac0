package shell

import "trending-tickers/internal/types"

type EventKind int

const (
	RunStarted EventKind = iota
	TickersFound
	NoTickers
	TickerHeading
	InsightReady
	InsightFailed
	RunFailed
	RunFinished
)

func (k EventKind) String() string {
	switch k {
	case RunStarted:
		return "run_started"
	case TickersFound:
		return "tickers_found"
	case NoTickers:
		return "no_tickers"
	case TickerHeading:
		return "ticker_heading"
	case InsightReady:
		return "insight_ready"
	case InsightFailed:
		return "insight_failed"
	case RunFailed:
		return "run_failed"
	case RunFinished:
		return "run_finished"
	default:
		return "unknown"
	}
}

// Event is one step of a run, delivered to the page in order.
type Event struct {
	Kind    EventKind
	RunID   string
	Tickers types.TrendingSet     // TickersFound
	Ticker  types.TickerCandidate // TickerHeading, InsightReady, InsightFailed
	Insight types.InsightResponse // InsightReady
	Err     error                 // InsightFailed, RunFailed
}
