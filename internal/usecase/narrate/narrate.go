// Package narrate turns report text into an audio file. It tries an online
// speech engine first and falls back to a local one.
package narrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"fiji-news/internal/observability/metrics"
	"fiji-news/internal/repository"
	"fiji-news/internal/utils/text"
)

// onlineChunkRunes is the size of the text chunks prepared for the online
// engine. Only the first chunk is synthesized.
const onlineChunkRunes = 5000

// ErrEmptyText is returned when there is nothing to narrate.
var ErrEmptyText = errors.New("text is empty")

// OnlineEngine synthesizes speech through a remote service into an MP3 file.
type OnlineEngine interface {
	Name() string
	Synthesize(ctx context.Context, text, path string) error
}

// OfflineEngine synthesizes speech locally into a WAV file.
type OfflineEngine interface {
	Name() string
	SynthesizeWAV(ctx context.Context, text, path string) error
}

// Service converts text to audio files in the data directory.
type Service struct {
	audio   repository.AudioRepository
	online  OnlineEngine
	offline OfflineEngine
	now     func() time.Time
}

// NewService creates a narrator. Either engine may be nil to skip that tier.
func NewService(audio repository.AudioRepository, online OnlineEngine, offline OfflineEngine) *Service {
	return &Service{audio: audio, online: online, offline: offline, now: time.Now}
}

// WithClock replaces the clock used to name audio files.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Convert narrates text and returns the path of the new audio_<timestamp>.mp3.
//
// The online engine receives only the first 5000 characters. If it fails, the
// offline engine narrates the whole text as WAV, which is then renamed to the
// .mp3 path without re-encoding.
func (s *Service) Convert(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyText
	}
	path := s.audio.AudioPath(s.now())

	var onlineErr error
	if s.online != nil {
		first := text.Chunks(input, onlineChunkRunes)[0]
		onlineErr = s.run(s.online.Name(), func() error {
			return s.online.Synthesize(ctx, first, path)
		})
		if onlineErr == nil {
			return path, nil
		}
		_ = os.Remove(path)
		slog.Warn("online text to speech failed, falling back to offline engine",
			slog.String("engine", s.online.Name()),
			slog.Any("error", onlineErr))
	} else {
		onlineErr = errors.New("no online engine configured")
	}

	if s.offline == nil {
		return "", fmt.Errorf("text to speech failed: %w", onlineErr)
	}

	wav := strings.TrimSuffix(path, ".mp3") + ".wav"
	offlineErr := s.run(s.offline.Name(), func() error {
		if err := s.offline.SynthesizeWAV(ctx, input, wav); err != nil {
			return err
		}
		return os.Rename(wav, path)
	})
	if offlineErr != nil {
		_ = os.Remove(wav)
		return "", fmt.Errorf("text to speech failed: online: %w; offline: %w", onlineErr, offlineErr)
	}
	return path, nil
}

// ConvertAsync runs Convert on a detached goroutine and reports the outcome to
// callback, which may be nil. Cancelling ctx after the call does not stop the
// conversion.
func (s *Service) ConvertAsync(ctx context.Context, input string, callback func(path string, err error)) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		path, err := s.Convert(ctx, input)
		if err != nil {
			slog.Error("async text to speech failed", slog.Any("error", err))
		}
		if callback != nil {
			callback(path, err)
		}
	}()
}

func (s *Service) run(engine string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordNarration(engine, err == nil, time.Since(start))
	return err
}
