package news

import (
	"net/http"
	"strings"

	"fiji-news/internal/handler/http/respond"
)

// SpeechHandler serves POST /text_to_speech.
type SpeechHandler struct{ Narrator Narrator }

func (h SpeechHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(w, http.StatusBadRequest, "No text provided")
		return
	}

	path, err := h.Narrator.Convert(r.Context(), req.Text)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, speechResponse{Status: respond.StatusSuccess, AudioFile: path})
}
