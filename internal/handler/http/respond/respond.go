// Package respond writes the JSON envelopes returned by the news API.
//
// Successful responses carry "status":"success" next to their payload fields.
// Failures always use {"status":"error","message":...} with status 400 for
// bad client input and 500 for everything else (see StatusFor).
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/usecase/narrate"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorBody is the error envelope.
type ErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JSON writes v with the given status code. HTML characters are not escaped
// so article text is returned verbatim.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		// headers are already sent
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes the error envelope with an explicit status code.
func Error(w http.ResponseWriter, code int, message string) {
	JSON(w, code, ErrorBody{Status: StatusError, Message: message})
}

// StatusFor maps an error to its HTTP status code. Only invalid input is the
// client's fault; every other failure is a 500, including stored files that
// are missing or corrupt.
func StatusFor(err error) int {
	if errors.Is(err, entity.ErrInvalidInput) || errors.Is(err, narrate.ErrEmptyText) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Fail logs err with secrets masked and writes the error envelope. The
// client receives the same masked message.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	code := StatusFor(err)
	msg := SanitizeError(err)

	level := slog.LevelWarn
	if code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Default().Log(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("code", code),
		slog.String("error", msg))

	Error(w, code, msg)
}
