// Package harvest collects Fiji news articles from the configured sources.
// It discovers candidate links per source, extracts each article, filters for
// length and Fiji relevance, and returns unclassified articles.
package harvest

import "errors"

// Sentinel errors for harvest operations.
var (
	// ErrNoSources indicates the harvester was configured without any source.
	ErrNoSources = errors.New("no sources configured")

	// ErrInvalidURL indicates the URL format is invalid or uses an unsupported scheme.
	// Only http:// and https:// schemes are supported.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a loopback, private or link-local address.
	ErrPrivateIP = errors.New("private IP access denied")

	// ErrTooManyRedirects indicates the redirect chain exceeded the configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates a request did not finish in time.
	ErrTimeout = errors.New("request timeout")

	// ErrExtractionFailed indicates no readable article content could be extracted.
	ErrExtractionFailed = errors.New("article extraction failed")
)
