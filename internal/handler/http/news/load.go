package news

import (
	"net/http"
	"strings"

	"fiji-news/internal/handler/http/respond"
)

// LoadHandler serves POST /load_news.
type LoadHandler struct{ Svc Service }

func (h LoadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Filename) == "" {
		respond.Error(w, http.StatusBadRequest, "No filename provided")
		return
	}

	bundle, err := h.Svc.Load(r.Context(), req.Filename)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, loadResponse{Status: respond.StatusSuccess, Data: bundle})
}
