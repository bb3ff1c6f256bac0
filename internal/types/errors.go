package types

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSearchUnavailable means the search collaborator failed or returned an unusable body.
	ErrSearchUnavailable = errors.New("search unavailable")
	// ErrModelUnavailable means the model failed after its retry budget was spent.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrModelTimeout means the model call exceeded the configured timeout.
	ErrModelTimeout = errors.New("model timeout")
	// ErrConfigurationMissing means a required credential is absent at startup.
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrRunInProgress is returned when a run is triggered while another is active.
	ErrRunInProgress = errors.New("run already in progress")
)

// StatusError is a model provider failure that carried an HTTP status.
type StatusError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the status is worth another attempt
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
