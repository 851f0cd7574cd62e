// Package classify assigns each harvested article one label of the closed
// category set and buckets the articles into a CategorizedBundle.
package classify

import (
	"log/slog"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/nlp"
	"fiji-news/internal/observability/metrics"
)

// Classifier normalizes article text and delegates scoring to a TextClassifier.
type Classifier struct {
	res   *nlp.Resources
	model TextClassifier
}

// NewClassifier creates a Classifier. A nil model selects the built-in keyword model.
func NewClassifier(res *nlp.Resources, model TextClassifier) *Classifier {
	if model == nil {
		model = DefaultKeywordModel()
	}
	return &Classifier{res: res, model: model}
}

// Classify returns the category for a single article without modifying it.
func (c *Classifier) Classify(a entity.Article) entity.Category {
	label, confidence := c.model.Classify(c.res.Normalize(a.Text + " " + a.Title))
	if !label.Valid() {
		slog.Debug("classifier returned unknown label",
			slog.String("label", string(label)),
			slog.String("url", a.URL))
		return entity.CategoryOthers
	}
	slog.Debug("article classified",
		slog.String("url", a.URL),
		slog.String("category", string(label)),
		slog.Float64("confidence", confidence))
	return label
}

// Categorize sets the category of every article in place and returns a fresh
// bundle holding them. The bundle always contains all five labels.
func (c *Classifier) Categorize(articles []entity.Article) entity.CategorizedBundle {
	bundle := entity.NewCategorizedBundle()
	for i := range articles {
		articles[i].Category = c.Classify(articles[i])
		bundle.Add(articles[i])
		metrics.RecordClassification(string(articles[i].Category))
	}
	return bundle
}
