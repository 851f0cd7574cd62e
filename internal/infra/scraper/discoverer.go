package scraper

import (
	"context"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/infra/fetcher"
	"fiji-news/internal/resilience/circuitbreaker"
	"fiji-news/internal/usecase/harvest"
)

var _ harvest.LinkDiscoverer = (*Discoverer)(nil)

// Discoverer routes each source to the feed scraper when it declares a feed
// URL and to the listing scraper otherwise.
type Discoverer struct {
	Listing *ListingScraper
	Feed    *FeedScraper
}

// NewDiscoverer creates a Discoverer whose scrapers share client.
func NewDiscoverer(client *fetcher.Client) *Discoverer {
	return &Discoverer{
		Listing: NewListingScraper(client),
		Feed:    NewFeedScraper(client),
	}
}

// DiscoverLinks implements harvest.LinkDiscoverer.
func (d *Discoverer) DiscoverLinks(ctx context.Context, src entity.Source) ([]string, error) {
	if src.FeedURL != "" {
		return d.Feed.DiscoverLinks(ctx, src)
	}
	return d.Listing.DiscoverLinks(ctx, src)
}

// siteSettings names each host's breaker <prefix>:<host> and counts only the
// errors that say the host itself is down.
func siteSettings(prefix string, preset func(string) circuitbreaker.Settings) func(string) circuitbreaker.Settings {
	return func(host string) circuitbreaker.Settings {
		s := preset(prefix + ":" + host)
		s.IsFailure = fetcher.IsSiteFailure
		return s
	}
}
