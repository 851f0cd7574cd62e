package fetcher

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultUserAgent is sent with every article request. News sites serve
// reduced pages or block requests that carry no browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config controls how article pages are downloaded.
//
// Security settings:
//   - DenyPrivateIPs: rejects URLs resolving to private addresses
//   - MaxBodySize: caps the bytes read from one response
//   - MaxRedirects: caps the redirect chain
//   - Timeout: caps one request
type Config struct {
	// Timeout is the maximum duration of a single request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes, enforced while reading.
	// Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of redirects to follow.
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs blocks URLs (and redirect targets) that resolve to
	// loopback, private or link-local addresses.
	// Default: true
	DenyPrivateIPs bool

	// UserAgent is the User-Agent header value.
	UserAgent string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      DefaultUserAgent,
	}
}

// Validate checks the configuration values.
//
// Validation rules:
//   - Timeout: > 0
//   - MaxBodySize: 1KB-100MB
//   - MaxRedirects: 0-10
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}

// LoadConfigFromEnv loads the configuration from environment variables,
// starting from DefaultConfig, and validates the result.
//
// Environment variables:
//   - FETCH_TIMEOUT: duration string, e.g. "10s"
//   - FETCH_MAX_BODY_SIZE: integer in bytes
//   - FETCH_MAX_REDIRECTS: integer
//   - FETCH_DENY_PRIVATE_IPS: "true" or "false"
//   - FETCH_USER_AGENT: string
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if val := os.Getenv("FETCH_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid FETCH_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("FETCH_MAX_BODY_SIZE"); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid FETCH_MAX_BODY_SIZE: %v", err)
		}
		cfg.MaxBodySize = parsed
	}

	if val := os.Getenv("FETCH_MAX_REDIRECTS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid FETCH_MAX_REDIRECTS: %v", err)
		}
		cfg.MaxRedirects = parsed
	}

	if val := os.Getenv("FETCH_DENY_PRIVATE_IPS"); val != "" {
		cfg.DenyPrivateIPs = val == "true"
	}

	if val := os.Getenv("FETCH_USER_AGENT"); val != "" {
		cfg.UserAgent = val
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
