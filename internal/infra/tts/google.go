package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"fiji-news/internal/resilience"
	"fiji-news/internal/resilience/circuitbreaker"
	"fiji-news/internal/resilience/retry"
	"fiji-news/internal/usecase/narrate"
	"fiji-news/internal/utils/text"
)

const (
	// DefaultGoogleURL is the Google Translate speech endpoint.
	DefaultGoogleURL = "https://translate.google.com/translate_tts"

	// googleMaxChars is the longest text the endpoint accepts per request.
	googleMaxChars = 100

	maxSegmentBytes = 5 << 20
)

var _ narrate.OnlineEngine = (*GoogleTranslate)(nil)

// GoogleTranslate synthesizes MP3 audio through the Google Translate speech
// endpoint. Text is split on word boundaries into pieces of at most 100
// characters and the returned MP3 segments are concatenated.
type GoogleTranslate struct {
	baseURL  string
	language string
	client   *http.Client
	guard    *resilience.Guard
}

// NewGoogleTranslate creates an engine speaking language (e.g. "en").
func NewGoogleTranslate(language string) *GoogleTranslate {
	if language == "" {
		language = "en"
	}
	return &GoogleTranslate{
		baseURL:  DefaultGoogleURL,
		language: language,
		client:   &http.Client{Timeout: 30 * time.Second},
		guard: resilience.NewGuard(circuitbreaker.Settings{
			Name:           "google-tts",
			HalfOpenProbes: 3,
			Window:         time.Minute,
			Cooldown:       time.Minute,
			TripRatio:      0.5,
			MinSamples:     3,
		}, retry.Scrape()),
	}
}

// WithBaseURL points the engine at another endpoint.
func (g *GoogleTranslate) WithBaseURL(u string) *GoogleTranslate {
	g.baseURL = u
	return g
}

// WithRetryPolicy replaces the retry policy applied to each segment.
func (g *GoogleTranslate) WithRetryPolicy(p retry.Policy) *GoogleTranslate {
	g.guard.Policy = p
	return g
}

// Name implements narrate.OnlineEngine.
func (g *GoogleTranslate) Name() string { return "google" }

// Synthesize writes the MP3 narration of input to path.
func (g *GoogleTranslate) Synthesize(ctx context.Context, input, path string) error {
	pieces := text.WordChunks(input, googleMaxChars)
	if len(pieces) == 0 {
		return narrate.ErrEmptyText
	}

	var audio bytes.Buffer
	for i, piece := range pieces {
		segment, err := resilience.Call(ctx, g.guard, func(ctx context.Context) ([]byte, error) {
			return g.fetchSegment(ctx, piece, i, len(pieces))
		})
		if err != nil {
			return fmt.Errorf("google tts segment %d/%d: %w", i+1, len(pieces), err)
		}
		audio.Write(segment)
	}

	if err := os.WriteFile(path, audio.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	return nil
}

func (g *GoogleTranslate) fetchSegment(ctx context.Context, piece string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", g.language)
	q.Set("q", piece)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(text.CountRunes(piece)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://translate.google.com/")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSegmentBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxSegmentBytes {
		return nil, fmt.Errorf("audio segment exceeds %d bytes", maxSegmentBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty audio segment")
	}
	return data, nil
}
