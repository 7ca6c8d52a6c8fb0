// Package retry provides a generic resilience wrapper: exponential backoff
// with optional jitter around operations that may fail transiently.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Policy controls the retry behavior for a single call site.
type Policy struct {
	MaxRetries   int           // retry attempts after the initial try
	InitialDelay time.Duration // delay before the first retry
	Base         float64       // exponential base for subsequent delays
	Jitter       bool          // scale each delay by a random factor in [0.5, 1.5)
}

// DefaultPolicy returns the standard policy used by most call sites:
// 1s initial delay, base 2, jitter enabled.
func DefaultPolicy(maxRetries int) Policy {
	return Policy{
		MaxRetries:   maxRetries,
		InitialDelay: time.Second,
		Base:         2.0,
		Jitter:       true,
	}
}

// Delay returns the backoff delay before retry attempt k (1-based):
// InitialDelay * Base^(k-1), jittered if enabled.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := float64(p.InitialDelay) * math.Pow(p.Base, float64(attempt-1))
	if p.Jitter {
		d *= 0.5 + rand.Float64()
	}
	return time.Duration(d)
}

// ExhaustedError reports that an operation kept failing until its retry
// budget ran out. Unwrap exposes the last failure.
type ExhaustedError struct {
	Op       string
	Attempts int // total attempts, including the initial one
	Cause    error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Op, e.Attempts, e.Cause)
}

func (e *ExhaustedError) Unwrap() error { return e.Cause }

// permanent is implemented by errors that must never be retried
// (validation failures, in particular).
type permanent interface {
	IsPermanent() bool
}

// IsPermanent reports whether err (or anything in its chain) is marked as
// not retryable.
func IsPermanent(err error) bool {
	var p permanent
	return errors.As(err, &p) && p.IsPermanent()
}

type permanentError struct{ err error }

func (e *permanentError) Error() string     { return e.err.Error() }
func (e *permanentError) Unwrap() error     { return e.err }
func (e *permanentError) IsPermanent() bool { return true }

// MarkPermanent wraps err so Do fails immediately instead of retrying.
func MarkPermanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do executes op, retrying on failure according to policy until it succeeds,
// the budget is exhausted, or the context is cancelled.
//
// A run of MaxRetries consecutive failures after the initial attempt yields
// an *ExhaustedError wrapping the last cause. Errors marked permanent
// short-circuit immediately: retrying a validation failure with an unchanged
// request cannot converge. The sleep between attempts is local to the calling
// goroutine, so parallel branches back off independently.
func Do[T any](ctx context.Context, op string, policy Policy, log *slog.Logger, fn func(context.Context) (T, error)) (T, error) {
	if log == nil {
		log = slog.Default()
	}

	var zero T
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if IsPermanent(err) {
			return zero, err
		}
		if attempt == policy.MaxRetries {
			break
		}

		delay := policy.Delay(attempt + 1)
		log.Warn("operation failed, retrying",
			"op", op,
			"attempt", attempt+1,
			"max_retries", policy.MaxRetries,
			"delay", delay,
			"error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, &ExhaustedError{Op: op, Attempts: policy.MaxRetries + 1, Cause: lastErr}
}
