package repository

import (
	"context"
	"time"

	"fiji-news/internal/domain/entity"
)

// NewsRepository persists harvested bundles and the reports derived from them.
// Every save creates a new file named after at; nothing is overwritten or merged.
type NewsRepository interface {
	// SaveBundle writes a harvest snapshot and returns its file name.
	SaveBundle(ctx context.Context, bundle entity.CategorizedBundle, at time.Time) (string, error)
	// ListNewsFiles returns harvest snapshot file names, newest first.
	ListNewsFiles(ctx context.Context) ([]string, error)
	// LoadBundle reads a harvest snapshot by file name.
	// Returns entity.ErrNotFound when the file does not exist.
	LoadBundle(ctx context.Context, filename string) (entity.CategorizedBundle, error)
	SaveSummary(ctx context.Context, summary string, at time.Time) (string, error)
	SaveAnalysis(ctx context.Context, analysis *entity.Analysis, at time.Time) (string, error)
}

// AudioRepository resolves where narrated audio files live.
type AudioRepository interface {
	// AudioPath returns the path for a new audio file generated at at.
	AudioPath(at time.Time) string
	// OpenAudio resolves an existing audio file name to its path.
	// Returns entity.ErrNotFound when the file does not exist.
	OpenAudio(filename string) (string, error)
}

// ModelRepository stores the serialized classifier model.
type ModelRepository interface {
	// LoadModel returns the stored model bytes, or found=false when none is cached.
	LoadModel() (data []byte, found bool, err error)
	SaveModel(data []byte) error
}
