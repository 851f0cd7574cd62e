package summarizer

import (
	"context"
	"strings"

	"fiji-news/internal/utils/text"
)

// maxSentences is the number of leading sentences an extractive summary keeps at most.
const maxSentences = 5

// Extractive summarizes an article by keeping its leading sentences, up to
// five and within the character limit. It never fails and needs no network.
type Extractive struct {
	limit int
}

// NewExtractive creates an extractive summarizer with the given character limit.
// A non-positive limit selects the default.
func NewExtractive(limit int) *Extractive {
	if limit <= 0 {
		limit = defaultCharLimit
	}
	return &Extractive{limit: limit}
}

// Summarize returns the leading sentences of body.
func (e *Extractive) Summarize(_ context.Context, body string) (string, error) {
	return e.Summary(body), nil
}

// Summary is Summarize without the context and error.
func (e *Extractive) Summary(body string) string {
	sentences := text.Sentences(body)
	if len(sentences) == 0 {
		return ""
	}

	var kept []string
	n := 0
	for _, s := range sentences {
		if len(kept) == maxSentences {
			break
		}
		sn := text.CountRunes(s)
		if len(kept) > 0 {
			sn++ // joining space
		}
		if n+sn > e.limit {
			break
		}
		kept = append(kept, s)
		n += sn
	}
	if len(kept) == 0 {
		return text.Truncate(sentences[0], e.limit)
	}
	return strings.Join(kept, " ")
}
