package nlp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiji-news/internal/nlp"
)

func plain() *nlp.Resources {
	return nlp.NewResourcesWithLemmatizer(nil)
}

type suffixLemmatizer struct{}

func (suffixLemmatizer) Lemma(word string) string {
	return strings.TrimSuffix(word, "s")
}

func TestNewResources_LoadsDictionary(t *testing.T) {
	res, err := nlp.NewResources()
	require.NoError(t, err)

	assert.Equal(t, 179, res.StopWordCount())
	assert.Equal(t, "player", res.Lemma("players"))
	assert.Equal(t, "rugby", res.Lemma("rugby"))
}

func TestResources_IsStopWord(t *testing.T) {
	res := plain()

	for _, w := range []string{"the", "and", "don't", "wouldn", "ourselves"} {
		assert.True(t, res.IsStopWord(w), w)
	}
	for _, w := range []string{"fiji", "suva", "The"} {
		assert.False(t, res.IsStopWord(w), w)
	}
}

func TestResources_Tokens(t *testing.T) {
	res := plain()

	got := res.Tokens("Suva, Fiji -- the PM's 2024 plan!")
	assert.Equal(t, []string{"suva", "fiji", "the", "pm", "'s", "2024", "plan"}, got)
}

func TestResources_Tokens_SplitsClitics(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "possessive", in: "Fiji's budget", want: []string{"fiji", "'s", "budget"}},
		{name: "typographic possessive", in: "Fiji’s budget", want: []string{"fiji", "'s", "budget"}},
		{name: "negation", in: "They didn't vote", want: []string{"they", "did", "n't", "vote"}},
		{name: "contractions", in: "we're sure they'll come", want: []string{"we", "'re", "sure", "they", "'ll", "come"}},
		{name: "inner apostrophe kept", in: "Rabuka o'connor", want: []string{"rabuka", "o'connor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plain().Tokens(tt.in))
		})
	}
}

func TestResources_KeyTopics_CountsPossessives(t *testing.T) {
	res := plain()
	text := "Fiji's economy grew. Fiji's budget passed. Fiji’s tourism boomed. The government's plan for Fiji."

	got := res.KeyTopics(text, 10)
	require.NotEmpty(t, got)
	assert.Equal(t, "fiji", got[0])
	assert.Contains(t, got, "government")
	assert.NotContains(t, got, "fiji's")
}

func TestResources_Normalize(t *testing.T) {
	tests := []struct {
		name string
		lem  nlp.Lemmatizer
		in   string
		want string
	}{
		{
			name: "punctuation and stop words removed",
			in:   "The Prime Minister's speech, in Suva!",
			want: "prime ministers speech suva",
		},
		{
			name: "lemmatizer applied after stop-word removal",
			lem:  suffixLemmatizer{},
			in:   "Players and coaches",
			want: "player coache",
		},
		{
			name: "empty input",
			in:   "   ",
			want: "",
		},
		{
			name: "underscore is a word character",
			in:   "snake_case words",
			want: "snake_case words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := nlp.NewResourcesWithLemmatizer(tt.lem)
			assert.Equal(t, tt.want, res.Normalize(tt.in))
		})
	}
}

func TestResources_KeyTopics(t *testing.T) {
	res := plain()
	text := "Rugby rugby team. The team won; rugby fans cheered. Suva fans, suva."

	got := res.KeyTopics(text, 3)
	// team, fans and suva tie on two and keep first-seen order.
	assert.Equal(t, []string{"rugby", "team", "fans"}, got)
}

func TestResources_KeyTopics_FiltersShortAndNonAlpha(t *testing.T) {
	res := plain()

	got := res.KeyTopics("the fiji 2024 abc abc abc a1b2 cyclone", 5)
	assert.Equal(t, []string{"fiji", "cyclone"}, got)
	assert.Empty(t, res.KeyTopics("", 5))
}

func TestMostCommon_StableTies(t *testing.T) {
	got := nlp.MostCommon([]string{"Fiji Sun", "Fiji Times", "Fiji Times", "FBC News", "Fiji Sun"})

	assert.Equal(t, []nlp.Count{
		{Value: "Fiji Sun", N: 2},
		{Value: "Fiji Times", N: 2},
		{Value: "FBC News", N: 1},
	}, got)
}

func TestResources_CommonPhrases(t *testing.T) {
	res := plain()

	// "minister rugby" and "prime minister" score the same and sort by words;
	// "team" also appears outside its pair so "rugby team" ranks last.
	text := strings.Repeat("prime minister rugby team ", 3) + "team boat boat"

	got := res.CommonPhrases(text, 10)
	assert.Equal(t, []string{"minister rugby", "prime minister", "rugby team"}, got)
	assert.Equal(t, []string{"minister rugby"}, res.CommonPhrases(text, 1))
}

func TestResources_CommonPhrases_BelowThreshold(t *testing.T) {
	res := plain()

	assert.Empty(t, res.CommonPhrases("prime minister prime minister", 10))
	assert.Empty(t, res.CommonPhrases("", 10))
}
