package summarizer

import (
	"context"
	"fmt"

	"fiji-news/internal/domain/entity"
)

// Summarizer produces a short summary of an article body.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// New builds the summarizer selected by s.Type. Remote summarizers need their API key.
func New(s Settings) (Summarizer, error) {
	limit := s.CharacterLimit
	if limit == 0 {
		limit = defaultCharLimit
	}
	switch s.Type {
	case "", TypeExtractive:
		return NewExtractive(limit), nil
	case TypeClaude:
		if s.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is required for the claude summarizer", entity.ErrInvalidInput)
		}
		cfg := DefaultClaudeConfig()
		cfg.CharacterLimit = limit
		return NewClaude(s.AnthropicAPIKey, cfg), nil
	case TypeOpenAI:
		if s.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is required for the openai summarizer", entity.ErrInvalidInput)
		}
		cfg := DefaultOpenAIConfig()
		cfg.CharacterLimit = limit
		return NewOpenAI(s.OpenAIAPIKey, cfg), nil
	default:
		return nil, fmt.Errorf("%w: unknown summarizer type %q", entity.ErrInvalidInput, s.Type)
	}
}
