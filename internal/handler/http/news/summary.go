package news

import (
	"net/http"

	"fiji-news/internal/handler/http/respond"
)

// SummaryHandler serves POST /generate_summary.
type SummaryHandler struct{ Svc Service }

func (h SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req bundleRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	bundle, ok, err := decodeBundle(req.NewsData)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	if !ok {
		respond.Error(w, http.StatusBadRequest, noNewsData)
		return
	}

	summary, filename, err := h.Svc.Summarize(r.Context(), bundle)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, summaryResponse{
		Status:   respond.StatusSuccess,
		Summary:  summary,
		Filename: filename,
	})
}
