package news

import (
	"net/http"

	"fiji-news/internal/handler/http/respond"
)

// AnalyzeHandler serves POST /analyze_trends.
type AnalyzeHandler struct{ Svc Service }

func (h AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	analysis, filename, err := h.Svc.Analyze(r.Context(), bundle)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, analysisResponse{
		Status:   respond.StatusSuccess,
		Analysis: analysis,
		Filename: filename,
	})
}
