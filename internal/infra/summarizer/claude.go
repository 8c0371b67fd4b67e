package summarizer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"ai-rss-hub/internal/resilience/circuitbreaker"
	"ai-rss-hub/internal/resilience/retry"
)

// claudeBackend issues message requests against Anthropic's Claude API.
type claudeBackend struct {
	client anthropic.Client
	model  string
}

// NewClaude creates a summarizer client backed by the Claude API.
func NewClaude(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_5_20250929)
	}

	slog.Info("initialized claude summarizer",
		slog.String("model", model),
		slog.Int("max_length", cfg.MaxLength))

	return &Client{
		backend: &claudeBackend{
			client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
			model:  model,
		},
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
		config:         cfg,
		metrics:        NewPrometheusSummaryMetrics(),
	}
}

func (b *claudeBackend) name() string { return "claude" }

func (b *claudeBackend) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	requestID := uuid.New().String()

	message, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "claude request failed",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	return textBlock.Text, nil
}
