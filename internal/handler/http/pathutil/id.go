package pathutil

import (
	"errors"
	"strings"
)

// ErrInvalidFilename is returned when the path does not end in a bare file name.
var ErrInvalidFilename = errors.New("invalid filename")

// ExtractFilename returns the single path segment after prefix.
//
//	ExtractFilename("/audio/audio_20240517_093005.mp3", "/audio/") // "audio_20240517_093005.mp3", nil
//	ExtractFilename("/audio/a/b.mp3", "/audio/")                   // "", ErrInvalidFilename
func ExtractFilename(path, prefix string) (string, error) {
	if !strings.HasPrefix(path, prefix) {
		return "", ErrInvalidFilename
	}
	name := strings.TrimPrefix(path, prefix)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidFilename
	}
	return name, nil
}
