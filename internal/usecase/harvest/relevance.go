package harvest

import (
	"strings"

	"fiji-news/internal/domain/entity"
)

// fijiTerms is the gazetteer an article must mention to be kept.
var fijiTerms = []string{"fiji", "fijian", "suva", "nadi", "pacific island", "viti levu", "vanua levu"}

// IsFijiRelated reports whether the title, body or space-joined keywords of a
// contain any Fiji place or demonym, ignoring case. Matching is by substring,
// so "Fijians" and "Nadi's" both count.
func IsFijiRelated(a entity.Article) bool {
	fields := []string{a.Title, a.Text, strings.Join(a.Keywords, " ")}
	for _, f := range fields {
		lower := strings.ToLower(f)
		for _, term := range fijiTerms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}
