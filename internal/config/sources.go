package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"fiji-news/internal/domain/entity"
)

// sourcesFile is the YAML layout of SOURCES_FILE.
//
//	sources:
//	  - name: Fiji Village
//	    url: https://www.fijivillage.com
//	    feed_url: https://www.fijivillage.com/rss
//	    link_selector: ".news-list a"
type sourcesFile struct {
	Sources []entity.Source `yaml:"sources"`
}

// DefaultSources returns the compiled-in Fiji news outlets.
func DefaultSources() []entity.Source {
	return []entity.Source{
		{Name: "Fiji Times", URL: "https://www.fijitimes.com"},
		{Name: "Fiji Sun", URL: "https://fijisun.com.fj"},
		{Name: "Fiji Village", URL: "https://www.fijivillage.com"},
		{Name: "FBC News", URL: "https://www.fbcnews.com.fj"},
		{Name: "Islands Business", URL: "https://www.islandsbusiness.com/category/fiji/"},
	}
}

// LoadSources reads the source list from a YAML file. An empty path selects
// DefaultSources. Every source is validated and names must be unique.
func LoadSources(path string) ([]entity.Source, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultSources(), nil
	}

	// #nosec G304 -- path comes from operator configuration, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}
	return ParseSources(data)
}

// ParseSources decodes and validates a YAML source list.
func ParseSources(data []byte) ([]entity.Source, error) {
	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to parse sources: %v", entity.ErrInvalidInput, err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("%w: sources file lists no sources", entity.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(file.Sources))
	for i := range file.Sources {
		src := &file.Sources[i]
		src.Name = strings.TrimSpace(src.Name)
		src.URL = strings.TrimSpace(src.URL)
		src.FeedURL = strings.TrimSpace(src.FeedURL)
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("source %d: %w", i+1, err)
		}
		key := strings.ToLower(src.Name)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate source name %q", entity.ErrInvalidInput, src.Name)
		}
		seen[key] = true
	}
	return file.Sources, nil
}
