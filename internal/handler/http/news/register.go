// Package news exposes the harvest, report and narration endpoints.
package news

import (
	"context"
	"errors"
	"net/http"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/handler/http/respond"
	newsUC "fiji-news/internal/usecase/news"
)

const noNewsData = "No news data provided"

// Service is the subset of the news use cases the handlers call.
type Service interface {
	Harvest(ctx context.Context) (*newsUC.HarvestResult, error)
	ListFiles(ctx context.Context) ([]string, error)
	Load(ctx context.Context, filename string) (entity.CategorizedBundle, error)
	Summarize(ctx context.Context, bundle entity.CategorizedBundle) (string, string, error)
	Analyze(ctx context.Context, bundle entity.CategorizedBundle) (*entity.Analysis, string, error)
}

// Narrator turns text into an audio file and returns its path.
type Narrator interface {
	Convert(ctx context.Context, text string) (string, error)
}

// AudioStore resolves audio file names in the data directory.
type AudioStore interface {
	OpenAudio(filename string) (string, error)
}

// Register mounts the news endpoints on mux.
func Register(mux *http.ServeMux, svc Service, narrator Narrator, audio AudioStore) {
	mux.Handle("POST /harvest_news", &HarvestHandler{Svc: svc})
	mux.Handle("GET /get_news_files", FilesHandler{Svc: svc})
	mux.Handle("POST /load_news", LoadHandler{Svc: svc})
	mux.Handle("POST /generate_summary", SummaryHandler{Svc: svc})
	mux.Handle("POST /analyze_trends", AnalyzeHandler{Svc: svc})
	mux.Handle("POST /text_to_speech", SpeechHandler{Narrator: narrator})
	mux.Handle("GET /audio/", AudioHandler{Store: audio})
}

// fail reports request decoding errors, mapping oversized bodies to 413.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBodyTooLarge) {
		respond.Error(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	respond.Fail(w, r, err)
}
