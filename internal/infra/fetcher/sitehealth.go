package fetcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"fiji-news/internal/resilience/retry"
	"fiji-news/internal/usecase/harvest"
)

// HostKey names the site of rawURL for per-site circuit breakers: the
// lowercased host (and port) without a leading "www.".
func HostKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// IsSiteFailure reports whether err means the site itself is unhealthy: the
// connection failed or timed out, or the server answered 5xx or 429.
// Missing pages, rejected URLs, oversized bodies and unreadable articles are
// problems with one page and do not count.
func IsSiteFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, harvest.ErrTimeout) {
		return true
	}

	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError ||
			httpErr.StatusCode == http.StatusTooManyRequests
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return retry.Retryable(err)
}
