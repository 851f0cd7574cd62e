package news_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiji-news/internal/domain/entity"
	httphandler "fiji-news/internal/handler/http"
	"fiji-news/internal/handler/http/news"
	"fiji-news/internal/infra/store"
	"fiji-news/internal/usecase/harvest"
	newsUC "fiji-news/internal/usecase/news"
)

type fakeService struct {
	harvestCalls atomic.Int32
	harvestGate  chan struct{}
	harvestErr   error
	bundle       entity.CategorizedBundle

	files   []string
	loaded  string
	gotData entity.CategorizedBundle
}

func (f *fakeService) Harvest(ctx context.Context) (*newsUC.HarvestResult, error) {
	f.harvestCalls.Add(1)
	if f.harvestGate != nil {
		<-f.harvestGate
	}
	if f.harvestErr != nil {
		return nil, f.harvestErr
	}
	return &newsUC.HarvestResult{Bundle: f.bundle, Filename: "fiji_news_20240517_093005.json"}, nil
}

func (f *fakeService) ListFiles(context.Context) ([]string, error) { return f.files, nil }

func (f *fakeService) Load(_ context.Context, filename string) (entity.CategorizedBundle, error) {
	f.loaded = filename
	if strings.ContainsAny(filename, `/\`) {
		return nil, fmt.Errorf("%w: invalid file name %q", entity.ErrInvalidInput, filename)
	}
	switch filename {
	case "missing.json":
		return nil, fmt.Errorf("load news: %w: %s", entity.ErrNotFound, filename)
	case "corrupt.json":
		return nil, fmt.Errorf("load news: %w: decode %s: %v", entity.ErrCorrupt, filename, entity.ErrInvalidInput)
	}
	return f.bundle, nil
}

func (f *fakeService) Summarize(_ context.Context, b entity.CategorizedBundle) (string, string, error) {
	f.gotData = b
	return "FIJI NEWS SUMMARY", "summary_20240517_093005.txt", nil
}

func (f *fakeService) Analyze(_ context.Context, b entity.CategorizedBundle) (*entity.Analysis, string, error) {
	f.gotData = b
	return &entity.Analysis{
		Timestamp:            "2024-05-17 09:30",
		EmergingThreats:      []entity.ThreatRecord{},
		MitigationStrategies: []entity.MitigationStrategy{{Type: "general", Description: "ok"}},
	}, "analysis_20240517_093005.json", nil
}

type fakeNarrator struct {
	got string
	err error
}

func (n *fakeNarrator) Convert(_ context.Context, text string) (string, error) {
	n.got = text
	if n.err != nil {
		return "", n.err
	}
	return "data/audio_20240517_093005.mp3", nil
}

func sampleBundle() entity.CategorizedBundle {
	b := entity.NewCategorizedBundle()
	b.Add(entity.Article{
		Title:    "Drua <win> in Lautoka",
		URL:      "https://fijivillage.com/sports/drua",
		Source:   "Fiji Village",
		Category: entity.CategorySports,
	})
	return b
}

type fixture struct {
	svc      *fakeService
	narrator *fakeNarrator
	store    *store.FileStore
	handler  http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs, err := store.New(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		svc:      &fakeService{bundle: sampleBundle(), files: []string{"fiji_news_20240517_093005.json"}},
		narrator: &fakeNarrator{},
		store:    fs,
	}
	mux := http.NewServeMux()
	news.Register(mux, f.svc, f.narrator, fs)
	f.handler = httphandler.LimitRequestBody(1 << 10)(mux)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestHarvest_Success(t *testing.T) {
	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/harvest_news", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Harvested 1 articles", body["message"])
	assert.Equal(t, "fiji_news_20240517_093005.json", body["filename"])
	data := body["data"].(map[string]any)
	assert.Len(t, data, 5)
	assert.Len(t, data["sports"], 1)
	assert.Contains(t, rec.Body.String(), "Drua <win> in Lautoka")
}

func TestHarvest_Error(t *testing.T) {
	f := newFixture(t)
	f.svc.harvestErr = fmt.Errorf("harvest news: %w", errors.New("connection refused"))

	rec, body := f.do(t, http.MethodPost, "/harvest_news", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "harvest news: connection refused", body["message"])
}

func TestHarvest_NoSources(t *testing.T) {
	f := newFixture(t)
	f.svc.harvestErr = fmt.Errorf("harvest news: %w", harvest.ErrNoSources)

	rec, body := f.do(t, http.MethodPost, "/harvest_news", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "harvest news: no sources configured", body["message"])
}

func TestHarvest_ConcurrentRequestsShareOneRun(t *testing.T) {
	f := newFixture(t)
	f.svc.harvestGate = make(chan struct{})

	var wg sync.WaitGroup
	codes := make([]int, 3)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := httptest.NewRecorder()
			f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/harvest_news", nil))
			codes[i] = rec.Code
		}(i)
	}

	require.Eventually(t, func() bool { return f.svc.harvestCalls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	close(f.svc.harvestGate)
	wg.Wait()

	assert.Equal(t, int32(1), f.svc.harvestCalls.Load())
	assert.Equal(t, []int{200, 200, 200}, codes)
}

func TestGetNewsFiles(t *testing.T) {
	f := newFixture(t)

	rec, body := f.do(t, http.MethodGet, "/get_news_files", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, []any{"fiji_news_20240517_093005.json"}, body["files"])
}

func TestLoadNews(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantCode   int
		wantStatus string
		wantMsg    string
	}{
		{name: "ok", body: `{"filename":"fiji_news_20240517_093005.json"}`, wantCode: 200, wantStatus: "success"},
		{name: "missing filename", body: `{}`, wantCode: 400, wantStatus: "error", wantMsg: "No filename provided"},
		{name: "blank filename", body: `{"filename":"  "}`, wantCode: 400, wantStatus: "error", wantMsg: "No filename provided"},
		{name: "empty body", body: ``, wantCode: 400, wantStatus: "error"},
		{name: "malformed body", body: `{"filename":`, wantCode: 400, wantStatus: "error"},
		{name: "unknown file", body: `{"filename":"missing.json"}`, wantCode: 500, wantStatus: "error"},
		{name: "corrupt file", body: `{"filename":"corrupt.json"}`, wantCode: 500, wantStatus: "error"},
		{name: "path in filename", body: `{"filename":"../secret.json"}`, wantCode: 400, wantStatus: "error"},
		{name: "oversized body", body: `{"filename":"` + strings.Repeat("a", 2048) + `"}`, wantCode: 413, wantStatus: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec, body := f.do(t, http.MethodPost, "/load_news", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantStatus, body["status"])
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body["message"])
			}
			if tt.wantCode == 200 {
				assert.Equal(t, "fiji_news_20240517_093005.json", f.svc.loaded)
				assert.Len(t, body["data"], 5)
			}
		})
	}
}

func TestGenerateSummary(t *testing.T) {
	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/generate_summary",
		`{"news_data":{"sports":[{"title":"Drua win","url":"u","source":"s","published_date":"2024-05-16","text":"t","summary":"s","keywords":[],"category":"sports"}]}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "FIJI NEWS SUMMARY", body["summary"])
	assert.Equal(t, "summary_20240517_093005.txt", body["filename"])
	assert.Equal(t, 1, f.svc.gotData.Total())
	assert.Len(t, f.svc.gotData, 5)
}

func TestBundleEndpoints_Validation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{name: "missing news_data", body: `{}`, wantCode: 400, wantMsg: "No news data provided"},
		{name: "null news_data", body: `{"news_data":null}`, wantCode: 400, wantMsg: "No news data provided"},
		{name: "empty news_data", body: `{"news_data":{}}`, wantCode: 400, wantMsg: "No news data provided"},
		{name: "news_data not an object", body: `{"news_data":[1,2]}`, wantCode: 400},
		{name: "unknown label", body: `{"news_data":{"weather":[]}}`, wantCode: 400},
	}

	for _, path := range []string{"/generate_summary", "/analyze_trends"} {
		for _, tt := range tests {
			t.Run(path+"/"+tt.name, func(t *testing.T) {
				f := newFixture(t)
				rec, body := f.do(t, http.MethodPost, path, tt.body)

				assert.Equal(t, tt.wantCode, rec.Code)
				assert.Equal(t, "error", body["status"])
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, body["message"])
				}
			})
		}
	}
}

func TestAnalyzeTrends(t *testing.T) {
	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/analyze_trends", `{"news_data":{"politics":[]}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "analysis_20240517_093005.json", body["filename"])
	analysis := body["analysis"].(map[string]any)
	assert.Equal(t, "2024-05-17 09:30", analysis["timestamp"])
	assert.Equal(t, []any{}, analysis["emerging_threats"])
}

func TestTextToSpeech(t *testing.T) {
	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/text_to_speech", `{"text":"Bula vinaka"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "data/audio_20240517_093005.mp3", body["audio_file"])
	assert.Equal(t, "Bula vinaka", f.narrator.got)

	rec, body = f.do(t, http.MethodPost, "/text_to_speech", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No text provided", body["message"])

	f.narrator.err = errors.New("text to speech failed: online: 503; offline: espeak not found")
	rec, body = f.do(t, http.MethodPost, "/text_to_speech", `{"text":"Bula"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "text to speech failed: online: 503; offline: espeak not found", body["message"])
}

func TestAudio(t *testing.T) {
	f := newFixture(t)
	name := "audio_20240517_093005.mp3"
	require.NoError(t, os.WriteFile(filepath.Join(f.store.Dir(), name), []byte("ID3fake"), 0o644))

	rec, _ := f.do(t, http.MethodGet, "/audio/"+name, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mp3", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ID3fake", rec.Body.String())

	rec, body := f.do(t, http.MethodGet, "/audio/audio_19990101_000000.mp3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", body["status"])

	rec, _ = f.do(t, http.MethodGet, "/audio/nested/x.mp3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
