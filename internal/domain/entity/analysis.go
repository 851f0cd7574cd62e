package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Analysis is the structured trend report derived from one CategorizedBundle.
type Analysis struct {
	Timestamp            string               `json:"timestamp"`
	Overview             Overview             `json:"overview"`
	Trends               Trends               `json:"trends"`
	EmergingThreats      []ThreatRecord       `json:"emerging_threats"`
	MitigationStrategies []MitigationStrategy `json:"mitigation_strategies"`
}

// Overview holds the corpus-wide counts.
// ArticlesByCategory lists every label in canonical order; ArticlesBySource is
// ordered by count, most frequent first.
type Overview struct {
	TotalArticles      int          `json:"total_articles"`
	ArticlesByCategory Ordered[int] `json:"articles_by_category"`
	ArticlesBySource   Ordered[int] `json:"articles_by_source"`
}

// Trends holds the extracted topics and phrases.
type Trends struct {
	TopTopics      []string          `json:"top_topics"`
	CommonPhrases  []string          `json:"common_phrases"`
	CategoryTopics Ordered[[]string] `json:"category_topics"`
}

// ThreatRecord flags an article that matched one or more threat keywords.
type ThreatRecord struct {
	Title    string   `json:"title"`
	Source   string   `json:"source"`
	Date     Date     `json:"date"`
	URL      string   `json:"url"`
	Keywords []string `json:"keywords"`
	Summary  string   `json:"summary"`
}

// MitigationStrategy is a canned response to a detected threat keyword.
// Articles is omitted for general strategies.
type MitigationStrategy struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Articles    int    `json:"articles,omitempty"`
}

// Entry is one key/value pair of an Ordered map.
type Entry[V any] struct {
	Key   string
	Value V
}

// Ordered is a JSON object whose key order is preserved on both encode and decode.
type Ordered[V any] []Entry[V]

// Get returns the value stored under key.
func (o Ordered[V]) Get(key string) (V, bool) {
	for _, e := range o {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// Keys returns the keys in order.
func (o Ordered[V]) Keys() []string {
	keys := make([]string, len(o))
	for i, e := range o {
		keys[i] = e.Key
	}
	return keys
}

// MarshalJSON encodes the entries as a JSON object in slice order.
func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalRaw(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := marshalRaw(e.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", e.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order.
func (o *Ordered[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: expected JSON object", ErrInvalidInput)
	}

	var out Ordered[V]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: expected object key", ErrInvalidInput)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		out = append(out, Entry[V]{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}
