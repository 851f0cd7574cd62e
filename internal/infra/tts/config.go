// Package tts provides the speech engines used by the narrator: Google
// Translate and OpenAI speech online, and espeak offline.
package tts

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/usecase/narrate"
	envconfig "fiji-news/pkg/config"
)

// Online engine names accepted in TTS_ONLINE_ENGINE.
const (
	EngineGoogle = "google"
	EngineOpenAI = "openai"
	EngineNone   = "none"
)

// Config selects and tunes the speech engines.
type Config struct {
	OnlineEngine   string
	Language       string
	OfflineCommand string
	OpenAIAPIKey   string
}

// LoadConfigFromEnv reads TTS_ONLINE_ENGINE, TTS_LANGUAGE, TTS_OFFLINE_COMMAND
// and OPENAI_API_KEY.
func LoadConfigFromEnv() Config {
	return Config{
		OnlineEngine:   strings.ToLower(strings.TrimSpace(envconfig.GetEnvString("TTS_ONLINE_ENGINE", EngineGoogle))),
		Language:       envconfig.GetEnvString("TTS_LANGUAGE", "en"),
		OfflineCommand: envconfig.GetEnvString("TTS_OFFLINE_COMMAND", ""),
		OpenAIAPIKey:   envconfig.GetEnvString("OPENAI_API_KEY", ""),
	}
}

// NewOnline builds the configured online engine. It returns nil for "none".
func NewOnline(cfg Config) (narrate.OnlineEngine, error) {
	switch cfg.OnlineEngine {
	case "", EngineGoogle:
		return NewGoogleTranslate(cfg.Language), nil
	case EngineOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is required for the openai speech engine", entity.ErrInvalidInput)
		}
		return NewOpenAISpeech(cfg.OpenAIAPIKey), nil
	case EngineNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown TTS_ONLINE_ENGINE %q", entity.ErrInvalidInput, cfg.OnlineEngine)
	}
}

// NewOffline returns an espeak engine using cfg.OfflineCommand, or the first
// of espeak-ng and espeak found on PATH. It returns nil when none is available.
func NewOffline(cfg Config) narrate.OfflineEngine {
	command := cfg.OfflineCommand
	if command == "" {
		for _, candidate := range []string{"espeak-ng", "espeak"} {
			if path, err := exec.LookPath(candidate); err == nil {
				command = path
				break
			}
		}
	}
	if command == "" {
		slog.Warn("no offline speech engine found; offline narration disabled")
		return nil
	}
	return NewEspeak(command, cfg.Language)
}
