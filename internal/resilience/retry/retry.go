// Package retry reruns transient failures with exponential backoff and
// jitter. Classification of what counts as transient lives here too, so
// fetchers and summarizer clients share one policy.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/mmcdole/gofeed"
)

// Config controls backoff behavior for one call site.
type Config struct {
	// MaxAttempts counts the first try as attempt one.
	MaxAttempts int

	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration

	// MaxDelay caps the exponential growth.
	MaxDelay time.Duration

	// Multiplier scales the delay between attempts.
	Multiplier float64

	// JitterFraction adds up to this fraction of the delay as random
	// noise, spreading out retries from concurrent workers.
	JitterFraction float64
}

// DefaultConfig is a middle-of-the-road policy for calls with no
// dedicated profile.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// FeedFetchConfig retries aggressively. Feed hosts are flaky and a missed
// fetch means missed articles until the next cycle.
func FeedFetchConfig() Config {
	return Config{
		MaxAttempts:    5,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// AIAPIConfig retries moderately. Every attempt against a summarization
// backend costs money.
func AIAPIConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   2 * time.Second,
		MaxDelay:       10 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// WithBackoff runs fn until it succeeds, a non-retryable error occurs, the
// attempt budget runs out, or ctx is cancelled during a wait.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRetryable(lastErr) {
			slog.Warn("non-retryable error, aborting",
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
			return lastErr
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
		delay = addJitter(delay, cfg.JitterFraction)
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

// IsRetryable reports whether another attempt could plausibly succeed.
// Context errors never qualify: the caller has already given up.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return retryableStatus(httpErr.StatusCode)
	}

	// gofeed surfaces non-2xx feed responses as its own error type.
	var feedErr gofeed.HTTPError
	if errors.As(err, &feedErr) {
		return retryableStatus(feedErr.StatusCode)
	}

	return false
}

// retryableStatus treats server faults and throttling as transient; any
// other status is a caller problem that a retry will not fix.
func retryableStatus(code int) bool {
	switch {
	case code >= 500 && code < 600:
		return true
	case code == http.StatusTooManyRequests:
		return true
	case code == http.StatusRequestTimeout:
		return true
	}
	return false
}

// HTTPError carries a status code through the retry classification.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func addJitter(duration time.Duration, jitterFraction float64) time.Duration {
	if jitterFraction <= 0 {
		return duration
	}
	if jitterFraction > 1.0 {
		jitterFraction = 1.0
	}
	// #nosec G404 -- backoff jitter does not need cryptographic randomness.
	jitter := time.Duration(rand.Float64() * float64(duration) * jitterFraction)
	return duration + jitter
}
