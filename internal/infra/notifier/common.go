package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"fiji-news/internal/utils/text"
)

// RateLimitError represents a 429 response from a webhook service.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (retry after %v)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded (retry after %v)", e.RetryAfter)
}

// ClientError represents a non-429 4xx response. It is not retried.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError represents a 5xx response.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// isRetryableError reports whether err is a server or network error.
// Rate limits are handled separately.
func isRetryableError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return false
	}
	var rateLimitErr *RateLimitError
	return !errors.As(err, &rateLimitErr)
}

// webhook posts JSON payloads to one endpoint with client-side rate limiting
// and a small retry budget.
type webhook struct {
	service     string
	url         string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	baseDelay   time.Duration
}

func newWebhook(service, url string, timeout time.Duration, perSecond float64, burst int) *webhook {
	return &webhook{
		service:     service,
		url:         url,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(rate.Limit(perSecond), burst),
		maxAttempts: 2,
		baseDelay:   5 * time.Second,
	}
}

// post sends payload, waiting for the rate limiter first. 429 responses wait
// for the advertised retry-after; 5xx and network errors back off linearly.
func (w *webhook) post(ctx context.Context, payload any) error {
	requestID := uuid.New().String()
	logger := slog.With(slog.String("request_id", requestID), slog.String("service", w.service))

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		err := w.send(ctx, body)
		if err == nil {
			logger.Info("threat digest delivered", slog.Int("attempt", attempt))
			return nil
		}
		lastErr = err

		var delay time.Duration
		var rateLimitErr *RateLimitError
		switch {
		case errors.As(err, &rateLimitErr):
			delay = rateLimitErr.RetryAfter
		case !isRetryableError(err):
			logger.Error("threat digest rejected", slog.Any("error", err))
			return err
		default:
			delay = w.baseDelay * time.Duration(attempt)
		}
		if attempt == w.maxAttempts {
			break
		}

		logger.Warn("webhook request failed, retrying",
			slog.Any("error", err),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
		}
	}

	logger.Error("threat digest failed after all retries", slog.Any("error", lastErr))
	return fmt.Errorf("%s notification failed after %d attempts: %w", w.service, w.maxAttempts, lastErr)
}

func (w *webhook) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			Message:    w.service + " rate limit exceeded",
			RetryAfter: extractRetryAfter(resp, respBody),
		}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s API client error: %s", w.service, respBody),
		}
	case resp.StatusCode >= 500:
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s API server error: %s", w.service, respBody),
		}
	}
	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, respBody)
}

// extractRetryAfter reads retry_after (seconds) from a JSON body, then the
// Retry-After header, defaulting to 5s.
func extractRetryAfter(resp *http.Response, body []byte) time.Duration {
	var payload struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.RetryAfter > 0 {
		return time.Duration(payload.RetryAfter * float64(time.Second))
	}
	if h := resp.Header.Get("Retry-After"); h != "" {
		if seconds, err := strconv.Atoi(h); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 5 * time.Second
}

// truncate cuts s to at most maxLength runes, ending with suffix when cut.
func truncate(s string, maxLength int, suffix string) string {
	if text.CountRunes(s) <= maxLength {
		return s
	}
	keep := maxLength - text.CountRunes(suffix)
	if keep < 0 {
		keep = 0
	}
	return text.Truncate(s, keep) + suffix
}
