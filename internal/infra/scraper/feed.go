package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/infra/fetcher"
	"fiji-news/internal/resilience"
	"fiji-news/internal/resilience/circuitbreaker"
	"fiji-news/internal/resilience/retry"
)

// FeedScraper discovers article links from a source's RSS/Atom feed.
type FeedScraper struct {
	client *fetcher.Client
	guards *resilience.GuardSet
}

// NewFeedScraper creates a FeedScraper downloading through client, with a
// feed-fetch:<host> breaker per feed host.
func NewFeedScraper(client *fetcher.Client) *FeedScraper {
	return &FeedScraper{
		client: client,
		guards: resilience.NewGuardSet(siteSettings("feed-fetch", circuitbreaker.Feeds), retry.Feed()),
	}
}

// WithRetryPolicy replaces the retry policy.
func (f *FeedScraper) WithRetryPolicy(p retry.Policy) *FeedScraper {
	f.guards.SetPolicy(p)
	return f
}

// DiscoverLinks parses src.FeedURL and returns the item links in feed order.
func (f *FeedScraper) DiscoverLinks(ctx context.Context, src entity.Source) ([]string, error) {
	if src.FeedURL == "" {
		return nil, fmt.Errorf("%w: source %q has no feed URL", entity.ErrInvalidInput, src.Name)
	}

	guard := f.guards.For(fetcher.HostKey(src.FeedURL))
	return resilience.Call(ctx, guard, func(ctx context.Context) ([]string, error) {
		return f.doDiscover(ctx, src.FeedURL)
	})
}

func (f *FeedScraper) doDiscover(ctx context.Context, feedURL string) ([]string, error) {
	resp, err := f.client.Get(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	links := make([]string, 0, len(feed.Items))
	seen := make(map[string]bool, len(feed.Items))
	for _, it := range feed.Items {
		link := strings.TrimSpace(it.Link)
		if link == "" {
			continue
		}
		ref, err := url.Parse(link)
		if err != nil {
			continue
		}
		abs := resp.URL.ResolveReference(ref).String()
		if seen[abs] {
			continue
		}
		seen[abs] = true
		links = append(links, abs)
	}
	return links, nil
}
