// Package text provides small rune-aware string helpers shared by the
// harvester, analyzer, summarizers and narrator.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CountRunes counts the number of Unicode characters (runes) in text.
//
//	CountRunes("Nadi")    // 4
//	CountRunes("Bula 👋") // 6
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate returns at most limit runes of s.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == limit {
			return s[:pos]
		}
		i++
	}
	return s
}

// Chunks splits s into consecutive pieces of size runes. The last piece may be shorter.
// An empty string yields no chunks.
func Chunks(s string, size int) []string {
	if s == "" || size <= 0 {
		return nil
	}
	var out []string
	for s != "" {
		head := Truncate(s, size)
		out = append(out, head)
		s = s[len(head):]
	}
	return out
}

// ContainsFold reports whether needle occurs in haystack ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Sentences splits prose on ., ! and ? followed by whitespace. Whitespace inside
// sentences is collapsed.
func Sentences(s string) []string {
	fields := strings.Fields(s)
	var out []string
	var cur []string
	for _, f := range fields {
		cur = append(cur, f)
		last, _ := utf8.DecodeLastRuneInString(f)
		if last == '.' || last == '!' || last == '?' {
			out = append(out, strings.Join(cur, " "))
			cur = cur[:0]
		}
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, " "))
	}
	return out
}

// WordChunks splits s into pieces of at most limit runes, breaking on whitespace.
// A single word longer than limit is cut at limit runes.
func WordChunks(s string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	var out []string
	var b strings.Builder
	n := 0
	flush := func() {
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
			n = 0
		}
	}
	for _, word := range strings.FieldsFunc(s, unicode.IsSpace) {
		for CountRunes(word) > limit {
			flush()
			head := Truncate(word, limit)
			out = append(out, head)
			word = word[len(head):]
		}
		wn := CountRunes(word)
		if wn == 0 {
			continue
		}
		if n > 0 && n+1+wn > limit {
			flush()
		}
		if n > 0 {
			b.WriteByte(' ')
			n++
		}
		b.WriteString(word)
		n += wn
	}
	flush()
	return out
}
