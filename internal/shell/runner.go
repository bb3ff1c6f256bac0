package shell

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/logger"
	"trending-tickers/internal/types"
)

// Policy decides what a per-ticker failure does to the rest of the run.
type Policy string

const (
	PolicySkip  Policy = "SKIP"
	PolicyAbort Policy = "ABORT"
)

// Runner executes fetch-then-analyse runs, one at a time.
type Runner struct {
	fetcher   interfaces.TrendFetcher
	generator interfaces.InsightGenerator
	policy    Policy
	parallel  bool
	running   atomic.Bool
}

type Option func(*Runner)

func WithPolicy(p Policy) Option {
	return func(r *Runner) { r.policy = p }
}

// WithParallel generates all insights concurrently; events stay in ticker order.
func WithParallel(enabled bool) Option {
	return func(r *Runner) { r.parallel = enabled }
}

func NewRunner(fetcher interfaces.TrendFetcher, generator interfaces.InsightGenerator, opts ...Option) *Runner {
	r := &Runner{fetcher: fetcher, generator: generator, policy: PolicySkip}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Running reports whether a run is in flight.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Run performs one full run, calling emit synchronously for every event.
// It returns ErrRunInProgress, without emitting, if another run is active.
func (r *Runner) Run(ctx context.Context, emit func(Event)) error {
	if !r.running.CompareAndSwap(false, true) {
		return types.ErrRunInProgress
	}
	defer r.running.Store(false)

	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	send := func(e Event) {
		e.RunID = runID
		emit(e)
	}

	timer := logger.StartOperation(ctx, "shell.Run", "run_id", runID)
	ctx = timer.GetContext()
	send(Event{Kind: RunStarted})

	tickers, err := r.fetcher.FetchTrendingTickers(ctx)
	if err != nil {
		timer.EndWithError(err)
		send(Event{Kind: RunFailed, Err: err})
		return err
	}

	if len(tickers) == 0 {
		logger.Warn(ctx, "No tickers found", "run_id", runID)
		send(Event{Kind: NoTickers})
		send(Event{Kind: RunFinished})
		timer.End("tickers", 0)
		return nil
	}
	send(Event{Kind: TickersFound, Tickers: tickers})

	if r.parallel {
		err = r.generateParallel(ctx, tickers, send)
	} else {
		err = r.generateSequential(ctx, tickers, send)
	}
	if err != nil {
		timer.EndWithError(err)
		send(Event{Kind: RunFailed, Err: err})
		return err
	}

	send(Event{Kind: RunFinished})
	timer.End("tickers", len(tickers))
	return nil
}

func (r *Runner) generateSequential(ctx context.Context, tickers types.TrendingSet, send func(Event)) error {
	for _, t := range tickers {
		if err := ctx.Err(); err != nil {
			return err
		}
		send(Event{Kind: TickerHeading, Ticker: t})
		out, err := r.generator.GenerateInsight(ctx, t)
		if stop := r.report(ctx, t, out, err, send); stop != nil {
			return stop
		}
	}
	return nil
}

type outcome struct {
	insight types.InsightResponse
	err     error
}

// generateParallel runs every ticker at once but reports in ranked order.
// Work is cancelled only once an in-order failure stops the run, so the
// events match a sequential run.
func (r *Runner) generateParallel(ctx context.Context, tickers types.TrendingSet, send func(Event)) error {
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	results := make([]chan outcome, len(tickers))
	for i, t := range tickers {
		results[i] = make(chan outcome, 1)
		g.Go(func() error {
			out, err := r.generator.GenerateInsight(workCtx, t)
			results[i] <- outcome{insight: out, err: err}
			return nil
		})
	}

	for i, t := range tickers {
		send(Event{Kind: TickerHeading, Ticker: t})
		res := <-results[i]
		if stop := r.report(ctx, t, res.insight, res.err, send); stop != nil {
			cancel()
			_ = g.Wait()
			return stop
		}
		if err := ctx.Err(); err != nil {
			_ = g.Wait()
			return err
		}
	}
	return g.Wait()
}

// report emits the outcome for one ticker and returns non-nil when the run must stop.
func (r *Runner) report(ctx context.Context, t types.TickerCandidate, out types.InsightResponse, err error, send func(Event)) error {
	if err == nil {
		send(Event{Kind: InsightReady, Ticker: t, Insight: out})
		return nil
	}
	logger.ErrorWithErr(ctx, "Insight generation failed", err, "ticker", t, "policy", r.policy)
	send(Event{Kind: InsightFailed, Ticker: t, Err: err})
	if r.policy == PolicyAbort {
		return err
	}
	return nil
}
