package news

import (
	"errors"
	"net/http"
	"os"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/handler/http/pathutil"
	"fiji-news/internal/handler/http/respond"
)

const audioPrefix = "/audio/"

// AudioHandler serves GET /audio/<filename> from the data directory.
type AudioHandler struct{ Store AudioStore }

func (h AudioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name, err := pathutil.ExtractFilename(r.URL.Path, audioPrefix)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "audio file not found")
		return
	}

	path, err := h.Store.OpenAudio(name)
	if errors.Is(err, entity.ErrNotFound) || errors.Is(err, entity.ErrInvalidInput) {
		respond.Error(w, http.StatusNotFound, "audio file not found")
		return
	}
	if err != nil {
		respond.Fail(w, r, err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "audio file not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		respond.Fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mp3")
	http.ServeContent(w, r, name, info.ModTime(), f)
}
