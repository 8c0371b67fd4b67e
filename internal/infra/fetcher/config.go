package fetcher

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"ai-rss-hub/pkg/config"
)

// ContentFetchConfig controls the content enhancement feature: when and how
// full article text is fetched for thin feed entries.
type ContentFetchConfig struct {
	// Enabled toggles content fetching without redeployment.
	Enabled bool

	// Threshold is the minimum feed content length (in bytes) below which
	// the full article is fetched from the source URL.
	Threshold int

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// Parallelism caps concurrent fetch operations.
	Parallelism int

	// MaxBodySize caps the HTTP response body in bytes. Enforced while
	// reading, not from the Content-Length header.
	MaxBodySize int64

	// MaxRedirects caps the redirect chain length.
	MaxRedirects int

	// DenyPrivateIPs blocks URLs resolving to private, loopback, or
	// link-local addresses. Always true in production.
	DenyPrivateIPs bool
}

// DefaultConfig returns production-ready defaults for content fetching.
// The feature itself is opt-in via CONTENT_FETCH_ENABLED.
func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Enabled:        false,
		Threshold:      1500,
		Timeout:        10 * time.Second,
		Parallelism:    10,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks the configuration for values that would be unsafe or
// self-defeating.
func (c *ContentFetchConfig) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %d", c.Threshold)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	if c.Parallelism < 1 || c.Parallelism > 50 {
		return fmt.Errorf("parallelism must be between 1 and 50, got %d", c.Parallelism)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}

// LoadConfigFromEnv loads content fetch configuration from environment
// variables, falling back to defaults for unset values. The result is
// validated before being returned.
//
// Environment variables:
//   - CONTENT_FETCH_ENABLED: "true" or "false" (default: false)
//   - CONTENT_FETCH_THRESHOLD: integer (default: 1500)
//   - CONTENT_FETCH_TIMEOUT: duration string, e.g. "10s" (default: 10s)
//   - CONTENT_FETCH_PARALLELISM: integer (default: 10)
//   - CONTENT_FETCH_MAX_BODY_SIZE: integer bytes (default: 10485760)
//   - CONTENT_FETCH_MAX_REDIRECTS: integer (default: 5)
//   - CONTENT_FETCH_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadConfigFromEnv() (ContentFetchConfig, error) {
	cfg := DefaultConfig()

	cfg.Enabled = config.GetEnvBool("CONTENT_FETCH_ENABLED", cfg.Enabled)

	if val := os.Getenv("CONTENT_FETCH_THRESHOLD"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid CONTENT_FETCH_THRESHOLD: %v", err)
		}
		cfg.Threshold = parsed
	}

	if val := os.Getenv("CONTENT_FETCH_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid CONTENT_FETCH_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("CONTENT_FETCH_PARALLELISM"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid CONTENT_FETCH_PARALLELISM: %v", err)
		}
		cfg.Parallelism = parsed
	}

	if val := os.Getenv("CONTENT_FETCH_MAX_BODY_SIZE"); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid CONTENT_FETCH_MAX_BODY_SIZE: %v", err)
		}
		cfg.MaxBodySize = parsed
	}

	if val := os.Getenv("CONTENT_FETCH_MAX_REDIRECTS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid CONTENT_FETCH_MAX_REDIRECTS: %v", err)
		}
		cfg.MaxRedirects = parsed
	}

	cfg.DenyPrivateIPs = config.GetEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
