package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/infra/store"
)

var at = time.Date(2024, 5, 17, 9, 30, 5, 0, time.UTC)

func newStore(t *testing.T) *store.FileStore {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return s
}

func sampleBundle() entity.CategorizedBundle {
	b := entity.NewCategorizedBundle()
	b.Add(entity.Article{
		Title:         "Drua beat Chiefs <late>",
		URL:           "https://www.fbcnews.com.fj/sports/drua",
		Source:        "FBC News",
		PublishedDate: entity.NewDate(at),
		Text:          "The Fijian Drua won in Lautoka & celebrated.",
		Summary:       "Drua won.",
		Keywords:      []string{"drua", "lautoka"},
		Category:      entity.CategorySports,
	})
	return b
}

func TestFileStore_SaveAndLoadBundle_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	bundle := sampleBundle()

	name, err := s.SaveBundle(ctx, bundle, at)
	require.NoError(t, err)
	assert.Equal(t, "fiji_news_20240517_093005.json", name)

	raw, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n    \"politics\": []"))
	assert.Contains(t, string(raw), "<late>")
	assert.Contains(t, string(raw), "Lautoka & celebrated")

	loaded, err := s.LoadBundle(ctx, name)
	require.NoError(t, err)
	if diff := cmp.Diff(bundle, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// Saving the reloaded bundle produces identical bytes.
	name2, err := s.SaveBundle(ctx, loaded, at.Add(time.Second))
	require.NoError(t, err)
	raw2, err := os.ReadFile(filepath.Join(s.Dir(), name2))
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(raw2))
}

func TestFileStore_ListNewsFiles(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	files, err := s.ListNewsFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.NotNil(t, files)

	_, err = s.SaveBundle(ctx, sampleBundle(), at)
	require.NoError(t, err)
	_, err = s.SaveBundle(ctx, sampleBundle(), at.Add(time.Hour))
	require.NoError(t, err)
	_, err = s.SaveSummary(ctx, "report", at)
	require.NoError(t, err)
	require.NoError(t, s.SaveModel([]byte(`{}`)))

	files, err = s.ListNewsFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fiji_news_20240517_103005.json", "fiji_news_20240517_093005.json"}, files)
}

func TestFileStore_LoadBundle_Errors(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "fiji_news_bad.json"), []byte(`{"weather":[]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "fiji_news_truncated.json"), []byte(`{"politics":[`), 0o644))

	tests := []struct {
		name     string
		filename string
		wantIs   error
	}{
		{name: "missing file", filename: "fiji_news_19990101_000000.json", wantIs: entity.ErrNotFound},
		{name: "parent traversal", filename: "../secret.json", wantIs: entity.ErrInvalidInput},
		{name: "nested path", filename: "sub/file.json", wantIs: entity.ErrInvalidInput},
		{name: "empty name", filename: "", wantIs: entity.ErrInvalidInput},
		{name: "unknown label in file", filename: "fiji_news_bad.json", wantIs: entity.ErrCorrupt},
		{name: "truncated file", filename: "fiji_news_truncated.json", wantIs: entity.ErrCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.LoadBundle(ctx, tt.filename)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantIs), "got %v", err)
		})
	}
}

func TestFileStore_LoadBundle_CorruptFileIsNotInvalidInput(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "fiji_news_bad.json"), []byte(`{"weather":[]}`), 0o644))

	_, err := s.LoadBundle(context.Background(), "fiji_news_bad.json")

	assert.ErrorIs(t, err, entity.ErrCorrupt)
	assert.NotErrorIs(t, err, entity.ErrInvalidInput)
}

func TestFileStore_SaveSummaryAndAnalysis(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	name, err := s.SaveSummary(ctx, "FIJI NEWS SUMMARY", at)
	require.NoError(t, err)
	assert.Equal(t, "summary_20240517_093005.txt", name)
	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "FIJI NEWS SUMMARY", string(data))

	analysis := &entity.Analysis{
		Timestamp:            "2024-05-17 09:30",
		EmergingThreats:      []entity.ThreatRecord{},
		MitigationStrategies: []entity.MitigationStrategy{{Type: "general", Description: "ok"}},
	}
	name, err = s.SaveAnalysis(ctx, analysis, at)
	require.NoError(t, err)
	assert.Equal(t, "analysis_20240517_093005.json", name)
	data, err = os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"timestamp": "2024-05-17 09:30"`)
}

func TestFileStore_Audio(t *testing.T) {
	s := newStore(t)

	path := s.AudioPath(at)
	assert.Equal(t, filepath.Join(s.Dir(), "audio_20240517_093005.mp3"), path)

	_, err := s.OpenAudio("audio_20240517_093005.mp3")
	assert.True(t, errors.Is(err, entity.ErrNotFound))

	require.NoError(t, os.WriteFile(path, []byte("ID3"), 0o644))
	got, err := s.OpenAudio("audio_20240517_093005.mp3")
	require.NoError(t, err)
	assert.Equal(t, path, got)

	_, err = s.OpenAudio("../audio.mp3")
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
}

func TestFileStore_Model(t *testing.T) {
	s := newStore(t)

	data, found, err := s.LoadModel()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)

	require.NoError(t, s.SaveModel([]byte(`{"kind":"keyword"}`)))
	data, found, err = s.LoadModel()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"kind":"keyword"}`, string(data))
}

func TestFileStore_Ping(t *testing.T) {
	s := newStore(t)
	assert.NoError(t, s.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}

func TestNew_RejectsEmptyDir(t *testing.T) {
	_, err := store.New("  ")
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
}
