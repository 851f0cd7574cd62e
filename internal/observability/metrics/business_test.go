package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordArticleHarvested(t *testing.T) {
	before := testutil.ToFloat64(ArticlesHarvestedTotal.WithLabelValues("Fiji Sun"))

	RecordArticleHarvested("Fiji Sun")
	RecordArticleHarvested("Fiji Sun")

	after := testutil.ToFloat64(ArticlesHarvestedTotal.WithLabelValues("Fiji Sun"))
	assert.Equal(t, 2.0, after-before)
}

func TestRecordArticleRejected(t *testing.T) {
	tests := []struct {
		name   string
		source string
		reason string
	}{
		{name: "too short", source: "FBC News", reason: "too_short"},
		{name: "not relevant", source: "FBC News", reason: "not_relevant"},
		{name: "fetch error", source: "Fiji Village", reason: "fetch_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ArticlesRejectedTotal.WithLabelValues(tt.source, tt.reason)
			before := testutil.ToFloat64(c)
			RecordArticleRejected(tt.source, tt.reason)
			assert.Equal(t, 1.0, testutil.ToFloat64(c)-before)
		})
	}
}

func TestRecordArticleSummarized(t *testing.T) {
	tests := []struct {
		name    string
		success bool
		label   string
	}{
		{name: "success", success: true, label: "success"},
		{name: "fallback", success: false, label: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ArticlesSummarizedTotal.WithLabelValues(tt.label)
			before := testutil.ToFloat64(c)
			RecordArticleSummarized(tt.success)
			assert.Equal(t, 1.0, testutil.ToFloat64(c)-before)
		})
	}
}

func TestRecordThreats(t *testing.T) {
	before := testutil.ToFloat64(ThreatsDetectedTotal)

	RecordThreats(0)
	RecordThreats(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(ThreatsDetectedTotal)-before)
}

func TestRecordDurations_DoNotPanic(t *testing.T) {
	durations := []time.Duration{0, 100 * time.Millisecond, 5 * time.Second}

	for _, d := range durations {
		assert.NotPanics(t, func() {
			RecordSourceHarvest("Fiji Times", d)
			RecordHarvest(d)
			RecordExtraction(d, 2048)
			RecordNarration("google", true, d)
			RecordNarration("espeak", false, d)
		})
	}
}

func TestRecordClassificationAndReport(t *testing.T) {
	c := ArticlesClassifiedTotal.WithLabelValues("sports")
	before := testutil.ToFloat64(c)
	RecordClassification("sports")
	assert.Equal(t, 1.0, testutil.ToFloat64(c)-before)

	r := ReportsGeneratedTotal.WithLabelValues("analysis")
	before = testutil.ToFloat64(r)
	RecordReport("analysis")
	assert.Equal(t, 1.0, testutil.ToFloat64(r)-before)
}
