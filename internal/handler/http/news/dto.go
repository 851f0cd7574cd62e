package news

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"fiji-news/internal/domain/entity"
)

type loadRequest struct {
	Filename string `json:"filename"`
}

type bundleRequest struct {
	NewsData json.RawMessage `json:"news_data"`
}

type speechRequest struct {
	Text string `json:"text"`
}

type harvestResponse struct {
	Status   string                   `json:"status"`
	Message  string                   `json:"message"`
	Data     entity.CategorizedBundle `json:"data"`
	Filename string                   `json:"filename"`
}

type filesResponse struct {
	Status string   `json:"status"`
	Files  []string `json:"files"`
}

type loadResponse struct {
	Status string                   `json:"status"`
	Data   entity.CategorizedBundle `json:"data"`
}

type summaryResponse struct {
	Status   string `json:"status"`
	Summary  string `json:"summary"`
	Filename string `json:"filename"`
}

type analysisResponse struct {
	Status   string           `json:"status"`
	Analysis *entity.Analysis `json:"analysis"`
	Filename string           `json:"filename"`
}

type speechResponse struct {
	Status    string `json:"status"`
	AudioFile string `json:"audio_file"`
}

// errBodyTooLarge marks bodies cut off by LimitRequestBody.
var errBodyTooLarge = errors.New("request body too large")

// decodeJSON reads one JSON object from r's body. Malformed bodies are
// invalid input.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", entity.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid request body: %v", entity.ErrInvalidInput, err)
	}
	return nil
}

// decodeBundle parses the news_data field. ok is false when the field is
// absent, null or an empty object.
func decodeBundle(raw json.RawMessage) (bundle entity.CategorizedBundle, ok bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false, nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, false, fmt.Errorf("%w: news_data must be an object", entity.ErrInvalidInput)
	}
	if len(probe) == 0 {
		return nil, false, nil
	}
	if err := json.Unmarshal(trimmed, &bundle); err != nil {
		return nil, false, err
	}
	return bundle, true, nil
}
