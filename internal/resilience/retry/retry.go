// Package retry re-runs transient failures with capped exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Policy describes how often and how patiently to retry.
// Delay n (1-based) is BaseDelay*Factor^(n-1), capped at MaxDelay, plus up
// to Jitter*delay of random extra wait.
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Factor    float64
	Jitter    float64
}

// Default makes three attempts starting one second apart.
func Default() Policy {
	return Policy{Attempts: 3, BaseDelay: time.Second, MaxDelay: 30 * time.Second, Factor: 2, Jitter: 0.1}
}

// Feed is used for RSS/Atom downloads, which are cheap and often flaky.
func Feed() Policy {
	p := Default()
	p.Attempts = 5
	return p
}

// Scrape is used for listing pages and article pages on news sites.
func Scrape() Policy {
	p := Default()
	p.MaxDelay = 10 * time.Second
	return p
}

// RemoteAPI is used for the summarization and speech APIs.
func RemoteAPI() Policy {
	return Policy{Attempts: 3, BaseDelay: 2 * time.Second, MaxDelay: 10 * time.Second, Factor: 2, Jitter: 0.1}
}

// Once disables retrying.
func Once() Policy {
	return Policy{Attempts: 1}
}

// Do runs fn until it succeeds, returns a non-retryable error, exhausts the
// policy, or ctx is done.
func Do(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)

	var err error
	for n := 1; ; n++ {
		if err = fn(); err == nil {
			if n > 1 {
				slog.Debug("operation succeeded after retry", slog.Int("attempt", n))
			}
			return nil
		}
		if !Retryable(err) {
			return err
		}
		if n == attempts {
			break
		}

		wait := p.delay(n)
		slog.Warn("operation failed, retrying",
			slog.Int("attempt", n),
			slog.Int("max_attempts", attempts),
			slog.Duration("delay", wait),
			slog.Any("error", err))

		t := time.NewTimer(wait)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}
	if attempts == 1 {
		return err
	}
	return fmt.Errorf("max retry attempts (%d) exceeded: %w", attempts, err)
}

func (p Policy) delay(n int) time.Duration {
	d := float64(p.BaseDelay)
	for i := 1; i < n; i++ {
		d *= max(p.Factor, 1)
		if p.MaxDelay > 0 && d >= float64(p.MaxDelay) {
			d = float64(p.MaxDelay)
			break
		}
	}
	if j := min(p.Jitter, 1); j > 0 {
		d += rand.Float64() * d * j
	}
	return time.Duration(d)
}

// Retryable reports whether err is worth another attempt: timeouts, refused
// or reset connections, 5xx, 408 and 429. Context cancellation never is.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range []error{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}
	return false
}

// HTTPError is a non-2xx response status.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the status is likely to change on retry.
func (e *HTTPError) Temporary() bool {
	switch {
	case e.StatusCode >= 500 && e.StatusCode < 600:
		return true
	case e.StatusCode == http.StatusTooManyRequests, e.StatusCode == http.StatusRequestTimeout:
		return true
	}
	return false
}
