package nlp

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// clitics are split off the end of a word the way the Penn Treebank
// tokenizer does: "fiji's" becomes "fiji" and "'s", "didn't" becomes "did"
// and "n't".
var clitics = []string{"n't", "'s", "'m", "'d", "'ll", "'re", "'ve"}

// Tokens splits text into lowercased UAX #29 words, with possessive and
// contraction clitics as separate tokens. Segments made only of whitespace or
// punctuation are dropped.
func (r *Resources) Tokens(text string) []string {
	var out []string
	tokens := words.FromString(strings.ToLower(text))
	for tokens.Next() {
		tok := tokens.Value()
		if !hasWordRune(tok) {
			continue
		}
		out = appendSplitClitic(out, tok)
	}
	return out
}

// appendSplitClitic appends tok, or its stem and clitic when it ends in one.
// A typographic apostrophe is read as a plain one.
func appendSplitClitic(out []string, tok string) []string {
	plain := strings.ReplaceAll(tok, "’", "'")
	for _, c := range clitics {
		if stem, ok := strings.CutSuffix(plain, c); ok && hasWordRune(stem) {
			return append(out, stem, c)
		}
	}
	return append(out, tok)
}

// Normalize prepares text for keyword matching: lowercase, strip every rune that
// is neither a word character nor whitespace, tokenize, drop stop words, lemmatize,
// and join with single spaces.
func (r *Resources) Normalize(text string) string {
	stripped := strings.Map(func(c rune) rune {
		if isWordRune(c) || unicode.IsSpace(c) {
			return c
		}
		return -1
	}, strings.ToLower(text))

	tokens := r.Tokens(stripped)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if r.IsStopWord(tok) {
			continue
		}
		kept = append(kept, r.Lemma(tok))
	}
	return strings.Join(kept, " ")
}

// ContentWords returns the alphabetic, non-stop-word tokens of text with at least
// minRunes+1 runes. Pass minRunes 0 to keep every length.
func (r *Resources) ContentWords(text string, minRunes int) []string {
	tokens := r.Tokens(text)
	out := tokens[:0]
	for _, tok := range tokens {
		if !isAlpha(tok) || r.IsStopWord(tok) {
			continue
		}
		if minRunes > 0 && len([]rune(tok)) <= minRunes {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isWordRune(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c) || unicode.IsNumber(c) || unicode.Is(unicode.Mn, c)
}

func hasWordRune(s string) bool {
	for _, c := range s {
		if isWordRune(c) {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return true
}
