package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CategorizedBundle maps every category label to the articles assigned to it.
// A bundle built with NewCategorizedBundle or decoded from JSON always holds
// all five labels, possibly with empty slices.
type CategorizedBundle map[Category][]Article

// NewCategorizedBundle returns a bundle with every label present and empty.
func NewCategorizedBundle() CategorizedBundle {
	b := make(CategorizedBundle, len(Categories))
	for _, c := range Categories {
		b[c] = []Article{}
	}
	return b
}

// Add appends a to the bucket of its category. Unclassified or unknown
// categories land in "others" and the article's field is updated to match.
func (b CategorizedBundle) Add(a Article) {
	if !a.Category.Valid() {
		a.Category = CategoryOthers
	}
	b[a.Category] = append(b[a.Category], a)
}

// Total returns the number of articles across all buckets.
func (b CategorizedBundle) Total() int {
	n := 0
	for _, articles := range b {
		n += len(articles)
	}
	return n
}

// All returns every article, bucket by bucket in canonical label order.
func (b CategorizedBundle) All() []Article {
	all := make([]Article, 0, b.Total())
	for _, c := range Categories {
		all = append(all, b[c]...)
	}
	return all
}

// MarshalJSON writes the labels in canonical order, each as a JSON array.
func (b CategorizedBundle) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(c))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		articles := b[c]
		if articles == nil {
			articles = []Article{}
		}
		val, err := marshalRaw(articles)
		if err != nil {
			return nil, fmt.Errorf("encode %s bucket: %w", c, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON rejects labels outside the set and fills absent labels with empty buckets.
func (b *CategorizedBundle) UnmarshalJSON(data []byte) error {
	var raw map[string][]Article
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: news data: %v", ErrInvalidInput, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: news data is null", ErrInvalidInput)
	}

	out := NewCategorizedBundle()
	for label, articles := range raw {
		c, err := ParseCategory(label)
		if err != nil {
			return err
		}
		if articles != nil {
			out[c] = articles
		}
	}
	*b = out
	return nil
}

// marshalRaw encodes v without HTML escaping so article text survives verbatim.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
