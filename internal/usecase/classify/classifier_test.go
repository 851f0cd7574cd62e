package classify_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/nlp"
	"fiji-news/internal/usecase/classify"
)

func newClassifier(model classify.TextClassifier) *classify.Classifier {
	return classify.NewClassifier(nlp.NewResourcesWithLemmatizer(nil), model)
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		text  string
		want  entity.Category
	}{
		{
			name:  "only sports keywords",
			title: "Rugby final",
			text:  "The rugby team and the coach thanked supporters.",
			want:  entity.CategorySports,
		},
		{
			name:  "only crime keywords",
			title: "Police arrest suspect",
			text:  "A Lautoka theft is under review.",
			want:  entity.CategoryCrime,
		},
		{
			name:  "no keywords falls back to others",
			title: "Sunny skies",
			text:  "Weather is sunny today.",
			want:  entity.CategoryOthers,
		},
		{
			name:  "tie goes to earlier category",
			title: "",
			text:  "Parliament. Police.",
			want:  entity.CategoryPolitics,
		},
		{
			name:  "title counts as well as body",
			title: "Cabinet reshuffle",
			text:  "Details were released on Monday.",
			want:  entity.CategoryPolitics,
		},
		{
			name:  "upper-case trigger never fires on lowercased text",
			title: "MP speaks",
			text:  "MP speaks.",
			want:  entity.CategoryOthers,
		},
		{
			name:  "multi-word trigger",
			title: "Visit",
			text:  "The prime minister arrived.",
			want:  entity.CategoryPolitics,
		},
	}

	c := newClassifier(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(entity.Article{Title: tt.title, Text: tt.text})
			assert.Equal(t, tt.want, got)
		})
	}
}

type fixedClassifier struct {
	label entity.Category
}

func (f fixedClassifier) Classify(string) (entity.Category, float64) {
	return f.label, 1
}

func TestClassifier_UnknownLabelBecomesOthers(t *testing.T) {
	c := newClassifier(fixedClassifier{label: "weather"})

	assert.Equal(t, entity.CategoryOthers, c.Classify(entity.Article{Title: "rugby"}))
}

func TestClassifier_SwappedModelKeepsContract(t *testing.T) {
	c := newClassifier(fixedClassifier{label: entity.CategoryCrime})

	articles := []entity.Article{{Title: "rugby"}, {Title: "festival"}}
	bundle := c.Categorize(articles)

	assert.Len(t, bundle, len(entity.Categories))
	assert.Len(t, bundle[entity.CategoryCrime], 2)
}

func TestClassifier_Categorize(t *testing.T) {
	c := newClassifier(nil)
	articles := []entity.Article{
		{Title: "Netball win", Text: "The netball team won the tournament."},
		{Title: "Village festival", Text: "The church choir sang at the festival."},
		{Title: "Nothing", Text: "Sunny weather expected."},
	}

	bundle := c.Categorize(articles)

	require.Len(t, bundle, len(entity.Categories))
	for _, label := range entity.Categories {
		_, ok := bundle[label]
		assert.True(t, ok, "missing %s", label)
	}
	assert.Equal(t, entity.CategorySports, articles[0].Category)
	assert.Equal(t, entity.CategoryCommunity, articles[1].Category)
	assert.Equal(t, entity.CategoryOthers, articles[2].Category)
	assert.Len(t, bundle[entity.CategorySports], 1)
	assert.Len(t, bundle[entity.CategoryCommunity], 1)
	assert.Len(t, bundle[entity.CategoryOthers], 1)
	assert.Empty(t, bundle[entity.CategoryPolitics])
	assert.Empty(t, bundle[entity.CategoryCrime])
	assert.Equal(t, 3, bundle.Total())
}

func TestClassifier_Categorize_Empty(t *testing.T) {
	bundle := newClassifier(nil).Categorize(nil)

	assert.Len(t, bundle, len(entity.Categories))
	assert.Equal(t, 0, bundle.Total())
}

func TestKeywordModel_Classify_Confidence(t *testing.T) {
	m := classify.DefaultKeywordModel()

	label, conf := m.Classify("rugby team police")
	assert.Equal(t, entity.CategorySports, label)
	assert.InDelta(t, 2.0/3.0, conf, 1e-9)

	label, conf = m.Classify("nothing here")
	assert.Equal(t, entity.CategoryOthers, label)
	assert.Zero(t, conf)
}

func TestNewKeywordModel_RejectsUnknownLabel(t *testing.T) {
	_, err := classify.NewKeywordModel(map[entity.Category][]string{"weather": {"rain"}})
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
}

type memoryModelRepo struct {
	data    []byte
	found   bool
	loadErr error
	saved   int
}

func (r *memoryModelRepo) LoadModel() ([]byte, bool, error) {
	return r.data, r.found, r.loadErr
}

func (r *memoryModelRepo) SaveModel(data []byte) error {
	r.data = data
	r.found = true
	r.saved++
	return nil
}

func TestLoadOrInitModel(t *testing.T) {
	t.Run("writes default model when none cached", func(t *testing.T) {
		repo := &memoryModelRepo{}

		m, err := classify.LoadOrInitModel(repo)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.saved)
		assert.Contains(t, m.Keywords(entity.CategorySports), "rugby")

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(repo.data, &decoded))
		assert.Equal(t, "keyword", decoded["kind"])
	})

	t.Run("reuses cached model", func(t *testing.T) {
		repo := &memoryModelRepo{
			found: true,
			data:  []byte(`{"version":1,"kind":"keyword","categories":[{"label":"crime","keywords":["kava"]}]}`),
		}

		m, err := classify.LoadOrInitModel(repo)
		require.NoError(t, err)
		assert.Equal(t, 0, repo.saved)

		label, _ := m.Classify("kava session")
		assert.Equal(t, entity.CategoryCrime, label)
		assert.Empty(t, m.Keywords(entity.CategorySports))
	})

	t.Run("corrupt cache is an error", func(t *testing.T) {
		repo := &memoryModelRepo{found: true, data: []byte(`{not json`)}

		_, err := classify.LoadOrInitModel(repo)
		assert.Error(t, err)
	})

	t.Run("unknown model kind is an error", func(t *testing.T) {
		repo := &memoryModelRepo{found: true, data: []byte(`{"version":1,"kind":"naive_bayes"}`)}

		_, err := classify.LoadOrInitModel(repo)
		assert.True(t, errors.Is(err, entity.ErrInvalidInput))
	})

	t.Run("load failure propagates", func(t *testing.T) {
		repo := &memoryModelRepo{loadErr: errors.New("disk gone")}

		_, err := classify.LoadOrInitModel(repo)
		assert.ErrorContains(t, err, "disk gone")
	})
}
