// Package pathutil turns request paths into bounded metric labels and
// extracts path parameters.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to its label.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/audio/[^/]+$`), Template: "/audio/:filename"},
}

// knownPaths are the static routes served by the API. Anything else is
// reported as UnmatchedPath so scanners cannot inflate label cardinality.
var knownPaths = map[string]struct{}{
	"/":                 {},
	"/harvest_news":     {},
	"/get_news_files":   {},
	"/load_news":        {},
	"/generate_summary": {},
	"/analyze_trends":   {},
	"/text_to_speech":   {},
	"/health":           {},
	"/ready":            {},
	"/live":             {},
	"/metrics":          {},
}

// UnmatchedPath labels requests for routes the API does not serve.
const UnmatchedPath = "unmatched"

// NormalizePath strips the query and trailing slash and replaces dynamic
// segments with placeholders.
//
//	NormalizePath("/audio/audio_20240517_093005.mp3") // "/audio/:filename"
//	NormalizePath("/get_news_files?x=1")             // "/get_news_files"
//	NormalizePath("/wp-login.php")                   // "unmatched"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := knownPaths[path]; ok {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return UnmatchedPath
}
