package news

import (
	"net/http"

	"fiji-news/internal/handler/http/respond"
)

// FilesHandler serves GET /get_news_files.
type FilesHandler struct{ Svc Service }

func (h FilesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	files, err := h.Svc.ListFiles(r.Context())
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, filesResponse{Status: respond.StatusSuccess, Files: files})
}
