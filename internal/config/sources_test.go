package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiji-news/internal/config"
	"fiji-news/internal/domain/entity"
)

func TestDefaultSources(t *testing.T) {
	sources := config.DefaultSources()

	require.Len(t, sources, 5)
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
		assert.NoError(t, s.Validate())
	}
	assert.Equal(t, []string{"Fiji Times", "Fiji Sun", "Fiji Village", "FBC News", "Islands Business"}, names)
}

func TestLoadSources_EmptyPathUsesDefaults(t *testing.T) {
	sources, err := config.LoadSources("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSources(), sources)
}

func TestLoadSources_ShippedFileMatchesDefaults(t *testing.T) {
	sources, err := config.LoadSources(filepath.Join("..", "..", "configs", "sources.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSources(), sources)
}

func TestLoadSources_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sources:
  - name: " Fiji Village "
    url: https://www.fijivillage.com
    feed_url: https://www.fijivillage.com/feed
    link_selector: ".news a"
`), 0o600))

	sources, err := config.LoadSources(path)
	require.NoError(t, err)
	assert.Equal(t, []entity.Source{{
		Name:         "Fiji Village",
		URL:          "https://www.fijivillage.com",
		FeedURL:      "https://www.fijivillage.com/feed",
		LinkSelector: ".news a",
	}}, sources)
}

func TestLoadSources_MissingFile(t *testing.T) {
	_, err := config.LoadSources(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseSources_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "malformed", yaml: "sources: [unclosed"},
		{name: "empty list", yaml: "sources: []"},
		{name: "missing name", yaml: "sources:\n  - url: https://fijisun.com.fj\n"},
		{name: "bad scheme", yaml: "sources:\n  - name: X\n    url: ftp://fijisun.com.fj\n"},
		{name: "bad feed", yaml: "sources:\n  - name: X\n    url: https://x.fj\n    feed_url: not a url\n"},
		{name: "duplicate", yaml: "sources:\n  - name: X\n    url: https://x.fj\n  - name: x\n    url: https://y.fj\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseSources([]byte(tt.yaml))
			assert.ErrorIs(t, err, entity.ErrInvalidInput)
		})
	}
}
