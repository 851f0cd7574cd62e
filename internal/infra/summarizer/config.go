package summarizer

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Summarizer kinds accepted by SUMMARIZER_TYPE.
const (
	TypeExtractive = "extractive"
	TypeClaude     = "claude"
	TypeOpenAI     = "openai"
)

const (
	// minCharLimit is the minimum allowed character limit for summaries.
	minCharLimit = 100

	// maxCharLimit is the maximum allowed character limit for summaries.
	maxCharLimit = 5000

	// defaultCharLimit is used when SUMMARIZER_CHAR_LIMIT is unset or invalid.
	defaultCharLimit = 900

	// maxInputRunes caps the article text sent to a remote model.
	maxInputRunes = 10000
)

// Config holds the parameters shared by every summarizer.
type Config struct {
	// CharacterLimit is the maximum number of characters (runes) in a summary.
	// Valid range: 100-5000. Default: 900.
	CharacterLimit int

	// Model is the remote model identifier. Unused by the extractive summarizer.
	Model string

	// MaxTokens is the maximum number of tokens for a remote response.
	MaxTokens int

	// Timeout bounds one summarization call.
	Timeout time.Duration
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := ValidateCharacterLimit(c.CharacterLimit); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// ValidateCharacterLimit validates that the character limit is within the valid range (100-5000).
//
//	err := ValidateCharacterLimit(900)  // nil (valid)
//	err := ValidateCharacterLimit(50)   // error: "character limit 50 is below minimum 100"
//	err := ValidateCharacterLimit(6000) // error: "character limit 6000 exceeds maximum 5000"
func ValidateCharacterLimit(limit int) error {
	if limit < minCharLimit {
		return fmt.Errorf("character limit %d is below minimum %d", limit, minCharLimit)
	}
	if limit > maxCharLimit {
		return fmt.Errorf("character limit %d exceeds maximum %d", limit, maxCharLimit)
	}
	return nil
}

// LoadCharacterLimit reads SUMMARIZER_CHAR_LIMIT. Invalid values fall back to
// the default with a warning log.
func LoadCharacterLimit() int {
	envLimit := os.Getenv("SUMMARIZER_CHAR_LIMIT")
	if envLimit == "" {
		return defaultCharLimit
	}
	parsed, err := strconv.Atoi(envLimit)
	if err != nil {
		slog.Warn("Invalid SUMMARIZER_CHAR_LIMIT format, using default",
			slog.String("value", envLimit),
			slog.Int("default", defaultCharLimit),
			slog.String("error", err.Error()))
		return defaultCharLimit
	}
	if err := ValidateCharacterLimit(parsed); err != nil {
		slog.Warn("SUMMARIZER_CHAR_LIMIT out of valid range, using default",
			slog.Int("value", parsed),
			slog.Int("min", minCharLimit),
			slog.Int("max", maxCharLimit),
			slog.Int("default", defaultCharLimit))
		return defaultCharLimit
	}
	return parsed
}

// Settings selects and configures the article summarizer.
type Settings struct {
	Type            string
	CharacterLimit  int
	AnthropicAPIKey string
	OpenAIAPIKey    string
}

// LoadSettingsFromEnv reads SUMMARIZER_TYPE, SUMMARIZER_CHAR_LIMIT,
// ANTHROPIC_API_KEY and OPENAI_API_KEY.
func LoadSettingsFromEnv() Settings {
	kind := strings.ToLower(strings.TrimSpace(os.Getenv("SUMMARIZER_TYPE")))
	if kind == "" {
		kind = TypeExtractive
	}
	return Settings{
		Type:            kind,
		CharacterLimit:  LoadCharacterLimit(),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
	}
}
