// Package config loads API server configuration: auth credentials, rate
// limiting, and the feed seed file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Rate limit defaults applied when the environment leaves them unset.
const (
	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 60 * time.Second
)

// SecurityConfig holds the API server's auth and rate limit settings.
type SecurityConfig struct {
	// APIToken is the static bearer token protecting write endpoints.
	// Empty means write endpoints reject every request.
	APIToken string

	// RateLimitRequests is the number of requests allowed per client IP
	// within RateLimitWindow.
	RateLimitRequests int

	// RateLimitWindow is the sliding window for rate limiting.
	RateLimitWindow time.Duration
}

// LoadSecurityConfig reads security settings from environment variables.
//
// Environment variables:
//   - API_TOKEN: bearer token for write endpoints (no default)
//   - RATE_LIMIT_REQUESTS: integer (default: 60)
//   - RATE_LIMIT_WINDOW: duration string, e.g. "60s" (default: 60s)
//
// Invalid rate limit values are an error; a missing API_TOKEN is not, since
// read-only deployments are legitimate.
func LoadSecurityConfig() (*SecurityConfig, error) {
	cfg := &SecurityConfig{
		APIToken:          os.Getenv("API_TOKEN"),
		RateLimitRequests: DefaultRateLimitRequests,
		RateLimitWindow:   DefaultRateLimitWindow,
	}

	if val := os.Getenv("RATE_LIMIT_REQUESTS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS %q: must be a positive integer", val)
		}
		cfg.RateLimitRequests = parsed
	}

	if val := os.Getenv("RATE_LIMIT_WINDOW"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q: must be a positive duration", val)
		}
		cfg.RateLimitWindow = parsed
	}

	return cfg, nil
}
