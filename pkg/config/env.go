// Package config reads typed settings from environment variables.
//
// The GetEnv* helpers never fail: an unset variable yields the default and an
// unparseable one yields the default plus a warning log. LoadWithFallback
// additionally runs a validator and reports whether the default was applied,
// so callers can surface fallbacks as metrics.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the variable's value, or def when it is unset or empty.
func GetEnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvInt parses the variable as a base-10 integer.
func GetEnvInt(key string, def int) int {
	return getEnv(key, def, parseInt)
}

// GetEnvBool accepts the forms understood by strconv.ParseBool.
func GetEnvBool(key string, def bool) bool {
	return getEnv(key, def, strconv.ParseBool)
}

// GetEnvDuration parses the variable with time.ParseDuration ("90s", "1h30m").
func GetEnvDuration(key string, def time.Duration) time.Duration {
	return getEnv(key, def, time.ParseDuration)
}

func getEnv[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("invalid value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", def))
		return def
	}
	return v
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func parseString(s string) (string, error) {
	return s, nil
}
