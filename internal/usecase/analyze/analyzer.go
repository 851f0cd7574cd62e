// Package analyze turns a CategorizedBundle into a prose summary report and a
// structured trend analysis with threat detection and mitigation strategies.
package analyze

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/nlp"
	"fiji-news/internal/observability/metrics"
	"fiji-news/internal/utils/text"
)

const (
	timestampLayout = "2006-01-02 15:04"

	summaryTopics   = 5
	summaryHeadings = 5
	corpusTopics    = 10
	corpusPhrases   = 10
	categoryTopics  = 5
)

// Analyzer produces reports from categorized news.
type Analyzer struct {
	res *nlp.Resources
	now func() time.Time
}

// NewAnalyzer creates an Analyzer using the shared linguistic resources.
func NewAnalyzer(res *nlp.Resources) *Analyzer {
	return &Analyzer{res: res, now: time.Now}
}

// WithClock returns a copy of the Analyzer that reads the time from now.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	cp := *a
	cp.now = now
	return &cp
}

// GenerateSummary renders the plain-text news report.
func (a *Analyzer) GenerateSummary(bundle entity.CategorizedBundle) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("FIJI NEWS SUMMARY - Generated on %s\n", a.now().Format(timestampLayout)))

	for _, c := range entity.Categories {
		articles := bundle[c]
		if len(articles) == 0 {
			continue
		}

		lines = append(lines,
			fmt.Sprintf("\n== %s NEWS ==", strings.ToUpper(string(c))),
			fmt.Sprintf("Number of articles: %d", len(articles)),
		)

		sources := nlp.MostCommon(sourceNames(articles))
		parts := make([]string, len(sources))
		for i, s := range sources {
			parts[i] = fmt.Sprintf("%s (%d)", s.Value, s.N)
		}
		lines = append(lines, "Sources: "+strings.Join(parts, ", "))
		lines = append(lines, "Key topics: "+strings.Join(a.res.KeyTopics(joinedText(articles), summaryTopics), ", "))

		lines = append(lines, "\nRecent headlines:")
		for i, art := range articles {
			if i == summaryHeadings {
				break
			}
			lines = append(lines, fmt.Sprintf("- %s (%s)", art.Title, art.Source))
		}

		featured := longest(articles)
		lines = append(lines,
			"\nFeatured article:",
			"Title: "+featured.Title,
			"Source: "+featured.Source,
			"Date: "+featured.PublishedDate.String(),
			"Summary: "+featured.Summary,
		)
	}

	total := bundle.Total()
	lines = append(lines,
		"\n== OVERALL STATISTICS ==",
		fmt.Sprintf("Total articles analyzed: %d", total),
		"Articles by category:",
	)

	ordered := append([]entity.Category(nil), entity.Categories...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(bundle[ordered[i]]) > len(bundle[ordered[j]])
	})
	for _, c := range ordered {
		n := len(bundle[c])
		if n == 0 {
			continue
		}
		pct := float64(n) / float64(total) * 100
		lines = append(lines, fmt.Sprintf("- %s: %d (%.1f%%)", c.Title(), n, pct))
	}

	metrics.RecordReport("summary")
	return strings.Join(lines, "\n")
}

// AnalyzeTrends builds the structured analysis document for bundle.
func (a *Analyzer) AnalyzeTrends(bundle entity.CategorizedBundle) *entity.Analysis {
	all := bundle.All()
	allText := joinedText(all)

	byCategory := make(entity.Ordered[int], 0, len(entity.Categories))
	topics := entity.Ordered[[]string]{}
	for _, c := range entity.Categories {
		articles := bundle[c]
		byCategory = append(byCategory, entity.Entry[int]{Key: string(c), Value: len(articles)})
		if len(articles) > 0 {
			topics = append(topics, entity.Entry[[]string]{
				Key:   string(c),
				Value: a.res.KeyTopics(joinedText(articles), categoryTopics),
			})
		}
	}

	bySource := entity.Ordered[int]{}
	for _, s := range nlp.MostCommon(sourceNames(all)) {
		bySource = append(bySource, entity.Entry[int]{Key: s.Value, Value: s.N})
	}

	threats := IdentifyThreats(all)
	analysis := &entity.Analysis{
		Timestamp: a.now().Format(timestampLayout),
		Overview: entity.Overview{
			TotalArticles:      len(all),
			ArticlesByCategory: byCategory,
			ArticlesBySource:   bySource,
		},
		Trends: entity.Trends{
			TopTopics:      a.res.KeyTopics(allText, corpusTopics),
			CommonPhrases:  a.res.CommonPhrases(allText, corpusPhrases),
			CategoryTopics: topics,
		},
		EmergingThreats:      threats,
		MitigationStrategies: MitigationStrategies(threats),
	}

	metrics.RecordThreats(len(threats))
	metrics.RecordReport("analysis")
	slog.Info("trend analysis completed",
		slog.Int("articles", len(all)),
		slog.Int("threats", len(threats)),
		slog.Int("strategies", len(analysis.MitigationStrategies)))

	return analysis
}

func sourceNames(articles []entity.Article) []string {
	names := make([]string, len(articles))
	for i, a := range articles {
		names[i] = a.Source
	}
	return names
}

func joinedText(articles []entity.Article) string {
	bodies := make([]string, len(articles))
	for i, a := range articles {
		bodies[i] = a.Text
	}
	return strings.Join(bodies, " ")
}

// longest returns the article with the longest body; the first one wins ties.
func longest(articles []entity.Article) entity.Article {
	best := articles[0]
	bestLen := text.CountRunes(best.Text)
	for _, a := range articles[1:] {
		if n := text.CountRunes(a.Text); n > bestLen {
			best, bestLen = a, n
		}
	}
	return best
}
