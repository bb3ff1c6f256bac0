package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/time/rate"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/logger"
	"trending-tickers/internal/types"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 8 * time.Second
)

// Resilient bounds every model call: a rate limiter in front, a timeout per
// attempt and a fixed number of retries with exponential backoff. The final
// error always wraps ErrModelTimeout or ErrModelUnavailable.
type Resilient struct {
	model      interfaces.Model
	limiter    *rate.Limiter
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
}

var _ interfaces.Model = (*Resilient)(nil)

type ResilientOption func(*Resilient)

// WithRequestsPerMinute limits call rate; 0 disables limiting.
func WithRequestsPerMinute(rpm int) ResilientOption {
	return func(r *Resilient) {
		if rpm > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
		}
	}
}

func WithTimeout(d time.Duration) ResilientOption {
	return func(r *Resilient) { r.timeout = d }
}

func WithMaxRetries(n int) ResilientOption {
	return func(r *Resilient) { r.maxRetries = n }
}

// WithBackoff sets the first wait between attempts.
func WithBackoff(d time.Duration) ResilientOption {
	return func(r *Resilient) { r.backoff = d }
}

func NewResilient(model interfaces.Model, opts ...ResilientOption) *Resilient {
	r := &Resilient{
		model:      model,
		timeout:    120 * time.Second,
		maxRetries: 3,
		backoff:    initialBackoff,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resilient) Identity() string {
	return r.model.Identity()
}

func (r *Resilient) Generate(ctx context.Context, req types.InsightRequest) (string, error) {
	var lastErr error
	wait := r.backoff

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn(ctx, "Model call failed, retrying", "attempt", attempt, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return "", classify(ctx.Err(), attempt)
			case <-time.After(wait):
			}
			wait *= 2
			if wait > maxBackoff {
				wait = maxBackoff
			}
		}

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return "", classify(err, attempt)
			}
		}

		out, err := r.attempt(ctx, req)
		if err == nil {
			return out, nil
		}
		lastErr = err

		// The caller gave up; further attempts cannot succeed.
		if ctx.Err() != nil {
			return "", classify(ctx.Err(), attempt+1)
		}
		if !retryable(err) {
			return "", classify(err, attempt+1)
		}
	}

	return "", classify(lastErr, r.maxRetries+1)
}

func (r *Resilient) attempt(ctx context.Context, req types.InsightRequest) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.model.Generate(ctx, req)
}

func classify(err error, attempts int) error {
	if isTimeout(err) {
		return fmt.Errorf("%w after %d attempt(s): %w", types.ErrModelTimeout, attempts, err)
	}
	return fmt.Errorf("%w after %d attempt(s): %w", types.ErrModelUnavailable, attempts, err)
}

// retryable defers to status-aware errors; transport failures are always retried.
func retryable(err error) bool {
	var r interface{ Retryable() bool }
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return true
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
