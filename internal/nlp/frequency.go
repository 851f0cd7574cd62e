package nlp

import (
	"math"
	"sort"
	"strings"
)

// minKeyTopicRunes excludes short words from key topics.
const minKeyTopicRunes = 3

// minBigramFreq drops bigrams seen fewer times than this before PMI ranking.
const minBigramFreq = 3

// Count is a value with its number of occurrences.
type Count struct {
	Value string
	N     int
}

// MostCommon counts values and returns them by count descending.
// Ties keep the order in which values were first seen.
func MostCommon(values []string) []Count {
	index := make(map[string]int, len(values))
	var counts []Count
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].N++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, Count{Value: v, N: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].N > counts[j].N
	})
	return counts
}

// KeyTopics returns the n most frequent content words of text: alphabetic,
// not stop words, longer than three runes.
func (r *Resources) KeyTopics(text string, n int) []string {
	counts := MostCommon(r.ContentWords(text, minKeyTopicRunes))
	if len(counts) > n {
		counts = counts[:n]
	}
	topics := make([]string, len(counts))
	for i, c := range counts {
		topics[i] = c.Value
	}
	return topics
}

type bigram [2]string

type scoredBigram struct {
	pair  bigram
	score float64
}

// CommonPhrases returns up to n recurring two-word phrases ranked by pointwise
// mutual information. Only alphabetic non-stop-words take part and a pair must
// occur at least three times.
func (r *Resources) CommonPhrases(text string, n int) []string {
	tokens := r.ContentWords(text, 0)
	if len(tokens) < 2 {
		return []string{}
	}

	wordFreq := make(map[string]int, len(tokens))
	for _, w := range tokens {
		wordFreq[w]++
	}
	pairFreq := make(map[bigram]int)
	for i := 0; i+1 < len(tokens); i++ {
		pairFreq[bigram{tokens[i], tokens[i+1]}]++
	}

	total := float64(len(tokens))
	scored := make([]scoredBigram, 0, len(pairFreq))
	for pair, f := range pairFreq {
		if f < minBigramFreq {
			continue
		}
		score := math.Log2(float64(f)*total) - math.Log2(float64(wordFreq[pair[0]])*float64(wordFreq[pair[1]]))
		scored = append(scored, scoredBigram{pair: pair, score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].pair[0] != scored[j].pair[0] {
			return scored[i].pair[0] < scored[j].pair[0]
		}
		return scored[i].pair[1] < scored[j].pair[1]
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	phrases := make([]string, len(scored))
	for i, s := range scored {
		phrases[i] = strings.Join(s.pair[:], " ")
	}
	return phrases
}
