// Package scraper discovers candidate article links for news sources, either
// from a listing page (goquery) or from an RSS/Atom feed (gofeed).
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/infra/fetcher"
	"fiji-news/internal/resilience"
	"fiji-news/internal/resilience/circuitbreaker"
	"fiji-news/internal/resilience/retry"
)

// defaultLinkSelector matches every anchor on the page.
const defaultLinkSelector = "a[href]"

// Path segments that mark navigation rather than article pages.
var skipSegments = map[string]bool{
	"category": true, "categories": true, "tag": true, "tags": true,
	"author": true, "authors": true, "feed": true, "rss": true,
	"page": true, "search": true, "login": true, "register": true,
	"about": true, "about-us": true, "contact": true, "contact-us": true,
	"privacy-policy": true, "terms": true, "subscribe": true, "advertise": true,
	"wp-admin": true, "wp-content": true, "wp-json": true, "wp-login.php": true,
	"cdn-cgi": true,
}

// File extensions that are never articles.
var skipExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
	".pdf": true, ".mp3": true, ".mp4": true, ".xml": true, ".css": true, ".js": true,
	".zip": true, ".ico": true,
}

// ListingScraper discovers article links on a source's listing page.
type ListingScraper struct {
	client *fetcher.Client
	guards *resilience.GuardSet
}

// NewListingScraper creates a ListingScraper downloading through client.
// Each site gets its own web-scraper:<host> breaker.
func NewListingScraper(client *fetcher.Client) *ListingScraper {
	return &ListingScraper{
		client: client,
		guards: resilience.NewGuardSet(siteSettings("web-scraper", circuitbreaker.Sites), retry.Scrape()),
	}
}

// WithRetryPolicy replaces the retry policy.
func (s *ListingScraper) WithRetryPolicy(p retry.Policy) *ListingScraper {
	s.guards.SetPolicy(p)
	return s
}

// DiscoverLinks fetches src.URL and returns same-host article links in
// document order, without duplicates.
func (s *ListingScraper) DiscoverLinks(ctx context.Context, src entity.Source) ([]string, error) {
	guard := s.guards.For(fetcher.HostKey(src.URL))
	return resilience.Call(ctx, guard, func(ctx context.Context) ([]string, error) {
		return s.doDiscover(ctx, src)
	})
}

func (s *ListingScraper) doDiscover(ctx context.Context, src entity.Source) ([]string, error) {
	resp, err := s.client.Get(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	return ExtractLinks(doc, resp.URL, src.LinkSelector), nil
}

// ExtractLinks returns the article-like links of doc, resolved against base.
// selector narrows the anchors considered; empty means every anchor.
func ExtractLinks(doc *goquery.Document, base *url.URL, selector string) []string {
	if selector == "" {
		selector = defaultLinkSelector
	}

	links := []string{}
	seen := make(map[string]bool)
	doc.Find(selector).Each(func(i int, sel *goquery.Selection) {
		// A selector may match containers rather than anchors.
		if !sel.Is("a") {
			sel = sel.Find("a[href]").First()
		}
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		link, ok := resolveArticleLink(base, href)
		if !ok || seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	return links
}

// resolveArticleLink resolves href against base and reports whether the result
// looks like an article on the same site.
func resolveArticleLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if !sameSite(u.Hostname(), base.Hostname()) {
		return "", false
	}
	u.Fragment = ""
	u.RawFragment = ""

	if !looksLikeArticle(u.Path) {
		return "", false
	}
	if u.Path == base.Path && u.RawQuery == base.RawQuery {
		return "", false
	}
	return u.String(), true
}

func sameSite(a, b string) bool {
	a = strings.TrimPrefix(strings.ToLower(a), "www.")
	b = strings.TrimPrefix(strings.ToLower(b), "www.")
	return a != "" && a == b
}

func looksLikeArticle(p string) bool {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return false
	}
	if skipExtensions[strings.ToLower(path.Ext(trimmed))] {
		return false
	}
	segments := strings.Split(trimmed, "/")
	for _, seg := range segments {
		if skipSegments[strings.ToLower(seg)] {
			return false
		}
	}
	// Single-segment paths are usually section pages unless they carry a slug or id.
	if len(segments) == 1 {
		return strings.ContainsAny(segments[0], "-_0123456789")
	}
	return true
}
