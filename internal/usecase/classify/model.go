package classify

import (
	"encoding/json"
	"fmt"
	"strings"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/repository"
)

// modelVersion is written into the cached model file.
const modelVersion = 1

// TextClassifier scores already-normalized text.
// Implementations may be rule based or trained; labels outside the closed
// category set are treated as "others" by the Classifier.
type TextClassifier interface {
	Classify(text string) (label entity.Category, confidence float64)
}

// KeywordModel assigns the category whose trigger terms occur most often as
// substrings of the text. Ties go to the earlier category in canonical order and
// a text without any hit is "others".
type KeywordModel struct {
	keywords map[entity.Category][]string
}

// NewKeywordModel builds a model from a trigger table. Unknown labels are rejected.
func NewKeywordModel(keywords map[entity.Category][]string) (*KeywordModel, error) {
	m := &KeywordModel{keywords: make(map[entity.Category][]string, len(entity.Categories))}
	for c, terms := range keywords {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q in keyword table", entity.ErrInvalidInput, c)
		}
		m.keywords[c] = append([]string(nil), terms...)
	}
	return m, nil
}

// DefaultKeywordModel returns the built-in trigger table.
func DefaultKeywordModel() *KeywordModel {
	m, _ := NewKeywordModel(defaultKeywords)
	return m
}

// Keywords returns a copy of the trigger terms for c.
func (m *KeywordModel) Keywords(c entity.Category) []string {
	return append([]string(nil), m.keywords[c]...)
}

// Scores returns the hit count per category in canonical order.
func (m *KeywordModel) Scores(text string) []int {
	scores := make([]int, len(entity.Categories))
	for i, c := range entity.Categories {
		for _, kw := range m.keywords[c] {
			if kw != "" && strings.Contains(text, kw) {
				scores[i]++
			}
		}
	}
	return scores
}

// Classify implements TextClassifier. Confidence is the winning share of all hits.
func (m *KeywordModel) Classify(text string) (entity.Category, float64) {
	scores := m.Scores(text)

	best, total := 0, 0
	for i, s := range scores {
		total += s
		if s > scores[best] {
			best = i
		}
	}
	if total == 0 {
		return entity.CategoryOthers, 0
	}
	return entity.Categories[best], float64(scores[best]) / float64(total)
}

type modelFile struct {
	Version    int         `json:"version"`
	Kind       string      `json:"kind"`
	Categories []modelTerm `json:"categories"`
}

type modelTerm struct {
	Label    entity.Category `json:"label"`
	Keywords []string        `json:"keywords"`
}

// MarshalJSON encodes the model with categories in canonical order.
func (m *KeywordModel) MarshalJSON() ([]byte, error) {
	f := modelFile{Version: modelVersion, Kind: "keyword"}
	for _, c := range entity.Categories {
		terms := m.keywords[c]
		if terms == nil {
			terms = []string{}
		}
		f.Categories = append(f.Categories, modelTerm{Label: c, Keywords: terms})
	}
	return json.Marshal(f)
}

// UnmarshalJSON decodes a cached model file.
func (m *KeywordModel) UnmarshalJSON(data []byte) error {
	var f modelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.Kind != "keyword" {
		return fmt.Errorf("%w: unsupported model kind %q", entity.ErrInvalidInput, f.Kind)
	}
	table := make(map[entity.Category][]string, len(f.Categories))
	for _, t := range f.Categories {
		table[t.Label] = t.Keywords
	}
	loaded, err := NewKeywordModel(table)
	if err != nil {
		return err
	}
	*m = *loaded
	return nil
}

// LoadOrInitModel returns the cached keyword model from repo, or writes the
// built-in model there when nothing is cached yet. A corrupt cache is an error.
func LoadOrInitModel(repo repository.ModelRepository) (*KeywordModel, error) {
	data, found, err := repo.LoadModel()
	if err != nil {
		return nil, fmt.Errorf("load classifier model: %w", err)
	}
	if found {
		var m KeywordModel
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode classifier model: %w", err)
		}
		return &m, nil
	}

	m := DefaultKeywordModel()
	encoded, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode classifier model: %w", err)
	}
	if err := repo.SaveModel(encoded); err != nil {
		return nil, fmt.Errorf("save classifier model: %w", err)
	}
	return m, nil
}
