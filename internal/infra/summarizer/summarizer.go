// Package summarizer generates bilingual (Chinese + English) article summaries
// through AI chat-completion APIs. It includes adapters for OpenAI-compatible
// services and Claude, with circuit breaker and retry logic, structured logging,
// and Prometheus metrics. Every attempt yields a Result; summarization failures
// never propagate as errors to callers.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"ai-rss-hub/internal/resilience/circuitbreaker"
	"ai-rss-hub/internal/resilience/retry"
	"ai-rss-hub/internal/utils/text"
)

// MinContentRunes is the minimum trimmed content length worth a request.
// Callers may use it to avoid queueing hopeless work.
const MinContentRunes = 10

// Content above maxInputRunes is truncated to keep token usage predictable.
const maxInputRunes = 2000

// Summarizer produces a bilingual summary for one article's title and content.
type Summarizer interface {
	// Enabled reports whether an AI backend is configured. Callers use it
	// to skip queueing work that would only yield Unconfigured results.
	Enabled() bool
	Summarize(ctx context.Context, title, content string) Result
}

// completer is the raw chat-completion call implemented per backend.
type completer interface {
	name() string
	complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Client drives a completion backend through the shared bilingual pipeline:
// preflight checks, prompt construction, extraction, degraded fallback,
// truncation, and metrics.
type Client struct {
	backend        completer
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
	metrics        SummaryMetricsRecorder
}

// NewFromEnv builds a Summarizer from environment configuration.
// When no backend or credential is configured it returns Disabled, so the
// ingestion pipeline keeps running without summaries.
func NewFromEnv() (Summarizer, error) {
	cfg := LoadConfig()

	if !cfg.Configured() {
		slog.Info("no AI backend configured, summarization disabled")
		return Disabled{}, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("summarizer config: %w", err)
	}

	switch cfg.Backend {
	case "openai":
		return NewOpenAI(cfg), nil
	case "claude":
		return NewClaude(cfg), nil
	default:
		return nil, fmt.Errorf("unknown summarizer backend: %q", cfg.Backend)
	}
}

// Enabled reports that this client can reach an AI backend.
func (c *Client) Enabled() bool { return true }

// Summarize runs the bilingual pipeline. The bilingual request is tried first;
// on any failure a single-language fallback is attempted, yielding a Degraded
// result. Panics are contained here so a misbehaving backend cannot take down
// an ingestion cycle.
func (c *Client) Summarize(ctx context.Context, title, content string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("summarization panicked",
				slog.String("backend", c.backend.name()),
				slog.Any("panic", r))
			res = failedResult(SentinelUnexpected)
		}
		c.metrics.RecordOutcome(res.Kind.String())
	}()

	trimmed := strings.TrimSpace(content)
	if text.CountRunes(trimmed) < MinContentRunes {
		return tooShortResult()
	}
	title = strings.TrimSpace(title)
	input := truncateInput(trimmed)

	response, err := c.complete(ctx, buildBilingualPrompt(title, input, c.config.MaxLength))
	if err == nil {
		primary := ExtractPrimary(response)
		secondary := ExtractSecondary(response)
		switch {
		case primary != "" && secondary != "":
			return c.recordUsable(okResult(
				TruncateSummary(primary, c.config.MaxLength),
				TruncateSummary(secondary, c.config.MaxLength*2),
			))
		case primary != "":
			slog.Warn("no English summary in bilingual response",
				slog.String("backend", c.backend.name()))
			return c.recordUsable(degradedResult(TruncateSummary(primary, c.config.MaxLength)))
		default:
			err = errors.New("no extractable summary in bilingual response")
		}
	}

	slog.Warn("bilingual summarization failed, trying single-language fallback",
		slog.String("backend", c.backend.name()),
		slog.String("error", err.Error()))

	response, fallbackErr := c.complete(ctx, buildPrimaryPrompt(title, input, c.config.MaxLength))
	if fallbackErr == nil {
		primary := ExtractPrimary(response)
		if primary == "" {
			// The fallback prompt asks for bare summary text.
			primary = cleanExtracted(response)
		}
		if primary != "" {
			return c.recordUsable(degradedResult(TruncateSummary(primary, c.config.MaxLength)))
		}
		fallbackErr = errors.New("empty fallback response")
	}

	slog.Error("summarization failed",
		slog.String("backend", c.backend.name()),
		slog.String("bilingual_error", err.Error()),
		slog.String("fallback_error", fallbackErr.Error()))
	return failedResult(classifySentinel(fallbackErr))
}

// complete wraps the raw backend call with a per-call timeout, retry with
// backoff, and the circuit breaker.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		start := time.Now()
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.backend.complete(ctx, prompt, c.config.MaxTokens)
		})
		c.metrics.RecordDuration(time.Since(start))

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("ai api circuit breaker open, request rejected",
					slog.String("backend", c.backend.name()),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("%s api unavailable: circuit breaker open", c.backend.name())
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("%s completion failed after retries: %w", c.backend.name(), retryErr)
	}

	return result, nil
}

func (c *Client) recordUsable(r Result) Result {
	length := text.CountRunes(r.Primary)
	withinLimit := length <= c.config.MaxLength+3
	c.metrics.RecordLength(length)
	c.metrics.RecordCompliance(withinLimit)
	if !withinLimit {
		c.metrics.RecordLimitExceeded()
	}
	return r
}

// classifySentinel maps a terminal error to its operator-facing status string.
func classifySentinel(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return SentinelTimeout
	}
	return SentinelFailed
}

// truncateInput caps the content sent to the API at maxInputRunes.
func truncateInput(content string) string {
	if length := text.CountRunes(content); length > maxInputRunes {
		slog.Warn("content truncated for summarization",
			slog.Int("original_runes", length),
			slog.Int("truncated_runes", maxInputRunes))
	}
	return text.TruncateRunes(content, maxInputRunes)
}

// buildBilingualPrompt requests both summaries in a fixed two-line format
// that the extraction patterns understand. The title gives the model context
// the body alone may lack.
func buildBilingualPrompt(title, content string, maxLen int) string {
	return fmt.Sprintf(`请为以下文章生成双语摘要，严格按照如下格式输出两行，不要输出其他内容：
中文：不超过%d字的中文摘要
English: an English summary of no more than %d words

文章标题：%s

文章内容：
%s`, maxLen, maxLen/2, title, content)
}

// buildPrimaryPrompt is the degraded fallback: Chinese only, bare text.
func buildPrimaryPrompt(title, content string, maxLen int) string {
	return fmt.Sprintf("请用中文总结以下文章，不超过%d字，直接输出摘要正文。\n文章标题：%s\n文章内容：\n%s", maxLen, title, content)
}

// Disabled is returned when no AI backend is configured. Every call yields
// an Unconfigured result without touching the network.
type Disabled struct{}

// Enabled implements Summarizer.
func (Disabled) Enabled() bool { return false }

// Summarize implements Summarizer.
func (Disabled) Summarize(context.Context, string, string) Result {
	return unconfiguredResult()
}
