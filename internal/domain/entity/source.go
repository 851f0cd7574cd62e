package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// maxURLLength bounds URLs accepted from the source list.
const maxURLLength = 2048

// Source represents a news outlet the harvester visits.
// URL is the listing page links are discovered on. When FeedURL is set,
// links come from the RSS/Atom feed instead.
type Source struct {
	Name         string `yaml:"name" json:"name"`
	URL          string `yaml:"url" json:"url"`
	FeedURL      string `yaml:"feed_url,omitempty" json:"feed_url,omitempty"`
	LinkSelector string `yaml:"link_selector,omitempty" json:"link_selector,omitempty"`
}

// Validate checks that the source has a name and absolute http(s) URLs.
func (s Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if err := checkSourceURL("url", s.URL); err != nil {
		return fmt.Errorf("source %q: %w", s.Name, err)
	}
	if s.FeedURL == "" {
		return nil
	}
	if err := checkSourceURL("feed_url", s.FeedURL); err != nil {
		return fmt.Errorf("source %q: %w", s.Name, err)
	}
	return nil
}

func checkSourceURL(field, raw string) error {
	switch {
	case raw == "":
		return &ValidationError{Field: field, Message: "is required"}
	case len(raw) > maxURLLength:
		return &ValidationError{Field: field, Message: fmt.Sprintf("longer than %d characters", maxURLLength)}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{Field: field, Message: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: field, Message: "must be an http or https URL"}
	}
	if u.Host == "" {
		return &ValidationError{Field: field, Message: "has no host"}
	}
	return nil
}
