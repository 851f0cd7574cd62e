package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"fiji-news/internal/resilience"
	"fiji-news/internal/resilience/circuitbreaker"
	"fiji-news/internal/resilience/retry"
	"fiji-news/internal/utils/text"
)

// DefaultOpenAIConfig returns the OpenAI defaults.
func DefaultOpenAIConfig() Config {
	return Config{
		CharacterLimit: defaultCharLimit,
		Model:          openai.GPT4oMini,
		MaxTokens:      1024,
		Timeout:        60 * time.Second,
	}
}

// OpenAI summarizes articles with OpenAI's chat completion API.
type OpenAI struct {
	client  *openai.Client
	guard   *resilience.Guard
	config  Config
	metrics backendMetrics
}

// NewOpenAI creates an OpenAI summarizer for the public API.
func NewOpenAI(apiKey string, config Config) *OpenAI {
	return NewOpenAIWithClientConfig(openai.DefaultConfig(apiKey), config)
}

// NewOpenAIWithClientConfig creates an OpenAI summarizer with a custom client
// configuration, e.g. a different base URL.
func NewOpenAIWithClientConfig(clientConfig openai.ClientConfig, config Config) *OpenAI {
	slog.Info("Initialized OpenAI summarizer with configuration",
		slog.Int("character_limit", config.CharacterLimit),
		slog.String("model", config.Model))

	return &OpenAI{
		client:  openai.NewClientWithConfig(clientConfig),
		guard:   resilience.NewGuard(circuitbreaker.RemoteAPI("openai-api"), retry.RemoteAPI()),
		config:  config,
		metrics: metricsFor("openai"),
	}
}

// WithRetryPolicy replaces the retry policy.
func (o *OpenAI) WithRetryPolicy(p retry.Policy) *OpenAI {
	o.guard.Policy = p
	return o
}

// Summarize generates an English summary of the article text.
func (o *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	summary, err := resilience.Call(ctx, o.guard, func(ctx context.Context) (string, error) {
		return o.doSummarize(ctx, text)
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return "", fmt.Errorf("openai api unavailable: %w", err)
	}
	if err != nil {
		return "", fmt.Errorf("openai summarize: %w", err)
	}
	return summary, nil
}

func (o *OpenAI) doSummarize(ctx context.Context, inputText string) (string, error) {
	requestID := uuid.New().String()

	truncated := truncateInput(inputText)
	if len(truncated) < len(inputText) {
		slog.Warn("text truncated for openai api",
			slog.String("request_id", requestID),
			slog.Int("original_length", len(inputText)),
			slog.Int("truncated_length", len(truncated)))
	}

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("request_id", requestID),
		slog.Int("input_length", text.CountRunes(truncated)),
		slog.Int("character_limit", o.config.CharacterLimit))

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildPrompt(truncated, o.config.CharacterLimit),
		}},
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	return recordSummary(ctx, o.metrics, requestID, summary, o.config.CharacterLimit, duration), nil
}
