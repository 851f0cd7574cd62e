package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Category is one label of the closed topic label set.
// The zero value means "not yet classified".
type Category string

const (
	CategoryPolitics  Category = "politics"
	CategoryCommunity Category = "community"
	CategorySports    Category = "sports"
	CategoryCrime     Category = "crime"
	CategoryOthers    Category = "others"
)

// Categories lists every label in canonical order. Ties and output ordering follow it.
var Categories = []Category{
	CategoryPolitics,
	CategoryCommunity,
	CategorySports,
	CategoryCrime,
	CategoryOthers,
}

// ParseCategory returns the label named by s, or ErrInvalidInput for anything outside the set.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
	return c, nil
}

// Valid reports whether c belongs to the label set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Index returns the canonical position of c, or len(Categories) when c is unknown.
func (c Category) Index() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return len(Categories)
}

// Title returns the label with its first letter upper-cased ("Politics").
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// MarshalJSON writes null for an unclassified article.
func (c Category) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON accepts null or one of the known labels.
func (c *Category) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	if s == "" {
		*c = ""
		return nil
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
