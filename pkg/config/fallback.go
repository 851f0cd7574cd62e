package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Result is the outcome of LoadWithFallback.
type Result[T any] struct {
	Value T
	// FallbackApplied is set when the variable was present but rejected.
	FallbackApplied bool
	// Warning explains the rejection; empty otherwise.
	Warning string
}

// LoadWithFallback reads key, parses it and validates it. Any failure yields
// def with FallbackApplied set. An unset variable is not a fallback.
// A nil validate accepts every parsed value.
func LoadWithFallback[T any](key string, def T, parse func(string) (T, error), validate func(T) error) Result[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return Result[T]{Value: def}
	}

	v, err := parse(raw)
	if err != nil {
		return Result[T]{
			Value:           def,
			FallbackApplied: true,
			Warning:         fmt.Sprintf("%s=%q could not be parsed (%v); using default %v", key, raw, err, def),
		}
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return Result[T]{
				Value:           def,
				FallbackApplied: true,
				Warning:         fmt.Sprintf("%s=%q is invalid (%v); using default %v", key, raw, err, def),
			}
		}
	}
	return Result[T]{Value: v}
}

// LoadString is LoadWithFallback for plain strings.
func LoadString(key, def string, validate func(string) error) Result[string] {
	return LoadWithFallback(key, def, parseString, validate)
}

// LoadInt is LoadWithFallback for integers.
func LoadInt(key string, def int, validate func(int) error) Result[int] {
	return LoadWithFallback(key, def, parseInt, validate)
}

// LoadDuration is LoadWithFallback for durations.
func LoadDuration(key string, def time.Duration, validate func(time.Duration) error) Result[time.Duration] {
	return LoadWithFallback(key, def, time.ParseDuration, validate)
}
