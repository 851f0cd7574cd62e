// Package config loads the application configuration: the news source list
// from YAML and the runtime settings from environment variables.
package config

import (
	"log/slog"
	"time"

	envconfig "fiji-news/pkg/config"

	"fiji-news/internal/usecase/harvest"
)

// AppConfig holds the settings shared by the API server, the worker and the CLI.
type AppConfig struct {
	// DataDir is where harvests, reports, audio and the classifier model live.
	DataDir string
	// HTTPAddr is the API listen address.
	HTTPAddr string
	// SourcesFile optionally points at a YAML source list.
	SourcesFile string
	// LogLevel is "debug" or "info".
	LogLevel string
	// Harvest tunes the harvester.
	Harvest harvest.Config
}

// Load reads AppConfig from the environment. Invalid values fall back to the
// defaults with a warning.
//
// Environment variables:
//   - DATA_DIR (default "data")
//   - HTTP_ADDR (default ":8080")
//   - SOURCES_FILE (default: compiled-in sources)
//   - LOG_LEVEL (default "info")
//   - HARVEST_MAX_PER_SOURCE (default 10)
//   - HARVEST_MIN_TEXT_LENGTH (default 100)
//   - HARVEST_SOURCE_DELAY_MIN / HARVEST_SOURCE_DELAY_MAX (default 1s / 3s)
//   - HARVEST_ARTICLE_DELAY_MIN / HARVEST_ARTICLE_DELAY_MAX (default 500ms / 1.5s)
func Load() AppConfig {
	h := harvest.DefaultConfig()

	h.MaxPerSource = positiveInt("HARVEST_MAX_PER_SOURCE", h.MaxPerSource)
	h.MinTextLength = envconfig.GetEnvInt("HARVEST_MIN_TEXT_LENGTH", h.MinTextLength)
	if h.MinTextLength < 0 {
		h.MinTextLength = harvest.DefaultConfig().MinTextLength
	}
	h.SourceDelayMin, h.SourceDelayMax = delayRange("HARVEST_SOURCE_DELAY", h.SourceDelayMin, h.SourceDelayMax)
	h.ArticleDelayMin, h.ArticleDelayMax = delayRange("HARVEST_ARTICLE_DELAY", h.ArticleDelayMin, h.ArticleDelayMax)

	return AppConfig{
		DataDir:     envconfig.GetEnvString("DATA_DIR", "data"),
		HTTPAddr:    envconfig.GetEnvString("HTTP_ADDR", ":8080"),
		SourcesFile: envconfig.GetEnvString("SOURCES_FILE", ""),
		LogLevel:    envconfig.GetEnvString("LOG_LEVEL", "info"),
		Harvest:     h,
	}
}

func positiveInt(key string, def int) int {
	v := envconfig.GetEnvInt(key, def)
	if v <= 0 {
		slog.Warn("non-positive value for environment variable, using default",
			slog.String("key", key), slog.Int("value", v), slog.Int("default", def))
		return def
	}
	return v
}

// delayRange loads <prefix>_MIN and <prefix>_MAX. A negative value or an
// inverted range restores both defaults.
func delayRange(prefix string, defMin, defMax time.Duration) (time.Duration, time.Duration) {
	lo := envconfig.GetEnvDuration(prefix+"_MIN", defMin)
	hi := envconfig.GetEnvDuration(prefix+"_MAX", defMax)
	if envconfig.ValidateNonNegativeDuration(lo) != nil || envconfig.ValidateNonNegativeDuration(hi) != nil || lo > hi {
		slog.Warn("invalid delay range, using defaults",
			slog.String("prefix", prefix),
			slog.Duration("min", lo), slog.Duration("max", hi))
		return defMin, defMax
	}
	return lo, hi
}
