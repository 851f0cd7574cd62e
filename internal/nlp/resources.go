// Package nlp holds the linguistic resources shared by the classifier and the analyzer:
// the English stop-word list, a dictionary lemmatizer and a Unicode word tokenizer.
//
// Resources are loaded once at startup with NewResources and passed to the
// components that need them. Loading never touches the network.
package nlp

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

//go:embed stopwords_en.txt
var stopWordsEN string

// Lemmatizer maps an inflected word to its dictionary form.
type Lemmatizer interface {
	Lemma(word string) string
}

// Resources bundles the stop-word set and lemmatizer.
// It is immutable after construction and safe for concurrent use.
type Resources struct {
	stopWords  map[string]struct{}
	lemmatizer Lemmatizer
}

// NewResources loads the English stop words and the golem English dictionary.
func NewResources() (*Resources, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemmatizer: %w", err)
	}
	return NewResourcesWithLemmatizer(lem), nil
}

// NewResourcesWithLemmatizer builds Resources around an existing lemmatizer.
func NewResourcesWithLemmatizer(lem Lemmatizer) *Resources {
	if lem == nil {
		lem = IdentityLemmatizer{}
	}
	return &Resources{
		stopWords:  loadStopWords(stopWordsEN),
		lemmatizer: lem,
	}
}

// IdentityLemmatizer returns every word unchanged.
type IdentityLemmatizer struct{}

// Lemma returns word.
func (IdentityLemmatizer) Lemma(word string) string { return word }

// IsStopWord reports whether the lowercased word is an English stop word.
func (r *Resources) IsStopWord(word string) bool {
	_, ok := r.stopWords[word]
	return ok
}

// StopWordCount returns the size of the stop-word list.
func (r *Resources) StopWordCount() int {
	return len(r.stopWords)
}

// Lemma returns the dictionary form of word.
func (r *Resources) Lemma(word string) string {
	return r.lemmatizer.Lemma(word)
}

func loadStopWords(list string) map[string]struct{} {
	set := make(map[string]struct{}, 200)
	scanner := bufio.NewScanner(strings.NewReader(list))
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
