// Package entity defines the core domain entities of the news pipeline.
// It contains the Article and Source records, the closed category label set,
// the CategorizedBundle produced by each harvest, and the analysis document
// derived from a bundle.
package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for published dates on disk and on the wire.
const DateLayout = "2006-01-02"

// Article represents a harvested news article.
// Category stays empty until the classifier assigns one.
type Article struct {
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Source        string   `json:"source"`
	PublishedDate Date     `json:"published_date"`
	Text          string   `json:"text"`
	Summary       string   `json:"summary"`
	Keywords      []string `json:"keywords"`
	Category      Category `json:"category"`
}

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" date. RFC 3339 timestamps are accepted and truncated.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, &ValidationError{Field: "published_date", Message: fmt.Sprintf("unrecognised date %q", s)}
	}
	return NewDate(t), nil
}

// String returns the date as "YYYY-MM-DD", or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a date string, an empty string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("published_date: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
