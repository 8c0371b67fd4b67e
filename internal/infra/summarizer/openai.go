package summarizer

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"ai-rss-hub/internal/resilience/circuitbreaker"
	"ai-rss-hub/internal/resilience/retry"
)

const defaultOpenAIModel = "gpt-4o-mini"

// openAIBackend issues chat completions against the official OpenAI API or
// any OpenAI-compatible endpoint selected via Config.BaseURL.
type openAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a summarizer client backed by an OpenAI-compatible API.
func NewOpenAI(cfg Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	slog.Info("initialized openai summarizer",
		slog.String("model", model),
		slog.String("base_url", clientCfg.BaseURL),
		slog.Int("max_length", cfg.MaxLength))

	return &Client{
		backend: &openAIBackend{
			client: openai.NewClientWithConfig(clientCfg),
			model:  model,
		},
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
		config:         cfg,
		metrics:        NewPrometheusSummaryMetrics(),
	}
}

func (b *openAIBackend) name() string { return "openai" }

func (b *openAIBackend) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     b.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}

	return resp.Choices[0].Message.Content, nil
}
