package summarizer

import (
	"fmt"
	"time"

	"ai-rss-hub/pkg/config"
)

// Valid range for the summary character limit.
const (
	minSummaryLength = 10
	maxSummaryLength = 5000
)

// Config holds configuration parameters shared by all summarizer backends.
type Config struct {
	// Backend selects the AI provider: "openai", "claude", or "" (disabled).
	Backend string

	// APIKey authenticates against the selected backend.
	APIKey string

	// BaseURL overrides the OpenAI API endpoint, allowing any
	// OpenAI-compatible service. Empty means the official endpoint.
	BaseURL string

	// Model is the model identifier passed to the backend.
	Model string

	// MaxTokens caps the response size.
	MaxTokens int

	// MaxLength is the character limit for the primary summary.
	// The secondary summary is bounded in the prompt by MaxLength/2 words.
	MaxLength int

	// Timeout is the maximum duration for a single API call.
	Timeout time.Duration
}

// LoadConfig reads summarizer settings from environment variables.
//
// Environment variables:
//   - SUMMARIZER_TYPE: "openai", "claude", or unset to disable
//   - OPENAI_API_KEY / ANTHROPIC_API_KEY: backend credential
//   - OPENAI_API_BASE: OpenAI-compatible endpoint override
//   - SUMMARIZER_MODEL: model identifier (backend default when unset)
//   - SUMMARIZER_MAX_TOKENS: response token cap (default: 1024)
//   - SUMMARY_MAX_LENGTH: primary summary character limit (default: 100)
//   - LLM_TIMEOUT: per-call timeout (default: 30s)
func LoadConfig() Config {
	cfg := Config{
		Backend:   config.GetEnvString("SUMMARIZER_TYPE", ""),
		BaseURL:   config.GetEnvString("OPENAI_API_BASE", ""),
		Model:     config.GetEnvString("SUMMARIZER_MODEL", ""),
		MaxTokens: config.GetEnvInt("SUMMARIZER_MAX_TOKENS", 1024),
		MaxLength: config.GetEnvInt("SUMMARY_MAX_LENGTH", 100),
		Timeout:   config.GetEnvDuration("LLM_TIMEOUT", 30*time.Second),
	}

	switch cfg.Backend {
	case "claude":
		cfg.APIKey = config.GetEnvString("ANTHROPIC_API_KEY", "")
	default:
		cfg.APIKey = config.GetEnvString("OPENAI_API_KEY", "")
	}

	return cfg
}

// Validate checks that the configuration can drive an API-backed summarizer.
func (c *Config) Validate() error {
	if c.MaxLength < minSummaryLength || c.MaxLength > maxSummaryLength {
		return fmt.Errorf("summary max length must be in range %d-%d, got %d",
			minSummaryLength, maxSummaryLength, c.MaxLength)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// Configured reports whether an API backend and credential are present.
func (c *Config) Configured() bool {
	return c.Backend != "" && c.APIKey != ""
}
