package fetcher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fiji-news/internal/resilience/retry"
	"fiji-news/internal/usecase/harvest"
)

// Client downloads pages with the configured limits. Each redirect target is
// validated like the original URL. Client is safe for concurrent use.
type Client struct {
	http   *http.Client
	config Config
}

// Response is a downloaded page. URL is the final URL after redirects.
type Response struct {
	Body []byte
	URL  *url.URL
}

// NewClient returns a Client for cfg.
func NewClient(cfg Config) *Client {
	c := &Client{config: cfg}
	c.http = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= c.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", harvest.ErrTooManyRedirects, len(via))
			}
			if err := ValidateURL(req.URL.String(), c.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return c
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// Get validates urlStr and downloads it. Non-200 responses are returned as
// *retry.HTTPError so callers can decide whether to retry.
func (c *Client) Get(ctx context.Context, urlStr string) (*Response, error) {
	if err := ValidateURL(urlStr, c.config.DenyPrivateIPs); err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", harvest.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: request exceeded %v", harvest.ErrTimeout, c.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.config.MaxBodySize {
		return nil, fmt.Errorf("%w: response size exceeds limit %d bytes",
			harvest.ErrBodyTooLarge, c.config.MaxBodySize)
	}

	final := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}
	return &Response{Body: body, URL: final}, nil
}
