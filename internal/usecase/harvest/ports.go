package harvest

import (
	"context"
	"time"

	"fiji-news/internal/domain/entity"
)

// LinkDiscoverer lists candidate article URLs for a source, in discovery order.
// Implementations return absolute http(s) URLs without duplicates.
type LinkDiscoverer interface {
	DiscoverLinks(ctx context.Context, src entity.Source) ([]string, error)
}

// ArticleExtractor downloads one article page and extracts its readable content.
//
// Errors:
//   - ErrInvalidURL: URL format is invalid or uses an unsupported scheme
//   - ErrPrivateIP: URL resolves to a private address
//   - ErrTooManyRedirects: redirect chain exceeds the configured maximum
//   - ErrBodyTooLarge: response body exceeds the size limit
//   - ErrTimeout: request timed out
//   - ErrExtractionFailed: no readable content
//   - gobreaker.ErrOpenState: circuit breaker is open
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) (*Page, error)
}

// Page is the readable content of one downloaded article.
// PublishedAt is zero when the page carries no publish date.
type Page struct {
	URL         string
	Title       string
	Text        string
	Excerpt     string
	PublishedAt time.Time
}

// Summarizer produces a short summary of an article body.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
