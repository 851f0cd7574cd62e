// Package summarizer provides article summarizers: an extractive one that keeps
// leading sentences, and adapters for the Claude (Anthropic) and OpenAI APIs
// with circuit breaker, retry, structured logging and Prometheus metrics.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"fiji-news/internal/resilience"
	"fiji-news/internal/resilience/circuitbreaker"
	"fiji-news/internal/resilience/retry"
	"fiji-news/internal/utils/text"
)

// DefaultClaudeConfig returns the Claude defaults.
func DefaultClaudeConfig() Config {
	return Config{
		CharacterLimit: defaultCharLimit,
		Model:          string(anthropic.ModelClaudeSonnet4_5_20250929),
		MaxTokens:      1024,
		Timeout:        60 * time.Second,
	}
}

// Claude summarizes articles with Anthropic's Claude API.
type Claude struct {
	client  anthropic.Client
	guard   *resilience.Guard
	config  Config
	metrics backendMetrics
}

// NewClaude creates a Claude summarizer. Extra request options (base URL,
// HTTP client) are passed to the SDK client.
func NewClaude(apiKey string, config Config, opts ...option.RequestOption) *Claude {
	slog.Info("Initialized Claude summarizer with configuration",
		slog.Int("character_limit", config.CharacterLimit),
		slog.String("model", config.Model))

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Claude{
		client:  anthropic.NewClient(opts...),
		guard:   resilience.NewGuard(circuitbreaker.RemoteAPI("claude-api"), retry.RemoteAPI()),
		config:  config,
		metrics: metricsFor("claude"),
	}
}

// WithRetryPolicy replaces the retry policy.
func (c *Claude) WithRetryPolicy(p retry.Policy) *Claude {
	c.guard.Policy = p
	return c
}

// Summarize generates an English summary of the article text.
func (c *Claude) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	summary, err := resilience.Call(ctx, c.guard, func(ctx context.Context) (string, error) {
		return c.doSummarize(ctx, text)
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return "", fmt.Errorf("claude api unavailable: %w", err)
	}
	if err != nil {
		return "", fmt.Errorf("claude summarize: %w", err)
	}
	return summary, nil
}

func (c *Claude) doSummarize(ctx context.Context, inputText string) (string, error) {
	requestID := uuid.New().String()

	truncated := truncateInput(inputText)
	if len(truncated) < len(inputText) {
		slog.Warn("text truncated for claude api",
			slog.String("request_id", requestID),
			slog.Int("original_length", len(inputText)),
			slog.Int("truncated_length", len(truncated)))
	}

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("request_id", requestID),
		slog.Int("input_length", text.CountRunes(truncated)),
		slog.Int("character_limit", c.config.CharacterLimit))

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(truncated, c.config.CharacterLimit))),
		},
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}
	block, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	return recordSummary(ctx, c.metrics, requestID, block.Text, c.config.CharacterLimit, duration), nil
}
