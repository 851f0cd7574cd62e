// Package store persists harvests, reports, audio and the classifier model as
// flat files in a single data directory. Every artifact is named after the
// time it was generated, e.g. fiji_news_20240517_093000.json.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/repository"
)

const (
	timestampLayout = "20060102_150405"

	newsPrefix     = "fiji_news_"
	summaryPrefix  = "summary_"
	analysisPrefix = "analysis_"
	audioPrefix    = "audio_"
	modelFile      = "classifier_model.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

var (
	_ repository.NewsRepository  = (*FileStore)(nil)
	_ repository.AudioRepository = (*FileStore)(nil)
	_ repository.ModelRepository = (*FileStore)(nil)
)

// FileStore implements the news, audio and model repositories on a directory.
type FileStore struct {
	dir string
}

// New creates the data directory if needed and returns a FileStore rooted there.
func New(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: data directory is empty", entity.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Ping verifies the data directory is writable.
func (s *FileStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// SaveBundle writes bundle to fiji_news_<timestamp>.json.
func (s *FileStore) SaveBundle(ctx context.Context, bundle entity.CategorizedBundle, at time.Time) (string, error) {
	name := newsPrefix + at.Format(timestampLayout) + ".json"
	if err := s.writeJSON(ctx, name, bundle); err != nil {
		return "", fmt.Errorf("save news bundle: %w", err)
	}
	return name, nil
}

// ListNewsFiles returns the harvest file names, newest first.
func (s *FileStore) ListNewsFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list data directory: %w", err)
	}
	files := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, newsPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		files = append(files, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// LoadBundle reads a harvest file from the data directory.
func (s *FileStore) LoadBundle(ctx context.Context, filename string) (entity.CategorizedBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", entity.ErrNotFound, filename)
		}
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	var bundle entity.CategorizedBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", entity.ErrCorrupt, filename, err)
	}
	return bundle, nil
}

// SaveSummary writes the report text to summary_<timestamp>.txt.
func (s *FileStore) SaveSummary(ctx context.Context, summary string, at time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := summaryPrefix + at.Format(timestampLayout) + ".txt"
	if err := s.writeFile(name, []byte(summary)); err != nil {
		return "", fmt.Errorf("save summary: %w", err)
	}
	return name, nil
}

// SaveAnalysis writes the analysis document to analysis_<timestamp>.json.
func (s *FileStore) SaveAnalysis(ctx context.Context, analysis *entity.Analysis, at time.Time) (string, error) {
	name := analysisPrefix + at.Format(timestampLayout) + ".json"
	if err := s.writeJSON(ctx, name, analysis); err != nil {
		return "", fmt.Errorf("save analysis: %w", err)
	}
	return name, nil
}

// AudioPath returns the path for a new audio_<timestamp>.mp3 file.
func (s *FileStore) AudioPath(at time.Time) string {
	return filepath.Join(s.dir, audioPrefix+at.Format(timestampLayout)+".mp3")
}

// OpenAudio resolves an existing audio file name inside the data directory.
func (s *FileStore) OpenAudio(filename string) (string, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", entity.ErrNotFound, filename)
	}
	return path, nil
}

// LoadModel returns the cached classifier model, if any.
func (s *FileStore) LoadModel() ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, modelFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read classifier model: %w", err)
	}
	return data, true, nil
}

// SaveModel writes the classifier model cache.
func (s *FileStore) SaveModel(data []byte) error {
	return s.writeFile(modelFile, data)
}

// resolve maps a bare file name to a path in the data directory.
// Names containing separators or parent references are rejected.
func (s *FileStore) resolve(filename string) (string, error) {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, `/\`) || filepath.Base(filename) != filename {
		return "", fmt.Errorf("%w: invalid file name %q", entity.ErrInvalidInput, filename)
	}
	return filepath.Join(s.dir, filename), nil
}

func (s *FileStore) writeJSON(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return s.writeFile(name, bytes.TrimRight(buf.Bytes(), "\n"))
}

// writeFile writes through a temporary file and renames it into place so
// readers never observe a partial file.
func (s *FileStore) writeFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, filepath.Join(s.dir, name))
}
