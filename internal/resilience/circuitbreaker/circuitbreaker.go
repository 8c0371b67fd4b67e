// Package circuitbreaker shields the process from repeatedly calling
// upstreams that are already failing. It wraps github.com/sony/gobreaker
// with ratio-based tripping and named per-upstream profiles.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config describes one breaker.
type Config struct {
	// Name identifies the breaker in logs.
	Name string

	// MaxRequests limits probes while half-open.
	MaxRequests uint32

	// Interval resets the closed-state counts periodically.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the breaker,
	// e.g. 0.6 trips at 60% failures.
	FailureThreshold float64

	// MinRequests is how many requests must be observed before the
	// ratio is evaluated at all.
	MinRequests uint32
}

// DefaultConfig suits upstreams with no dedicated profile.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// ClaudeAPIConfig profiles the Anthropic summarization backend.
func ClaudeAPIConfig() Config {
	return DefaultConfig("claude-api")
}

// OpenAIAPIConfig profiles the OpenAI summarization backend.
func OpenAIAPIConfig() Config {
	return DefaultConfig("openai-api")
}

// FeedFetchConfig tolerates more failures before tripping: a cycle spans
// many independent feed hosts and one bad host should not block the rest.
func FeedFetchConfig() Config {
	return Config{
		Name:             "feed-fetch",
		MaxRequests:      5,
		Interval:         60 * time.Second,
		Timeout:          120 * time.Second,
		FailureThreshold: 0.7,
		MinRequests:      10,
	}
}

// CircuitBreaker wraps a gobreaker instance configured from Config.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

// New builds a breaker that trips on the configured failure ratio and
// logs every state transition.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{breaker: gobreaker.NewCircuitBreaker(settings)}
}

// Execute runs fn through the breaker. While open it fails fast with
// gobreaker.ErrOpenState without invoking fn.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// State exposes the current breaker state for logging.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}
