package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fiji-news/internal/utils/text"
)

const truncationNote = "...\n(article truncated)"

// buildPrompt asks for an English summary within limit characters.
//
//	"Summarize the following Fiji news article in English in at most 900 characters. ..."
func buildPrompt(article string, limit int) string {
	return fmt.Sprintf("Summarize the following Fiji news article in English in at most %d characters. "+
		"Reply with the summary only.\n\n%s", limit, article)
}

// truncateInput caps the article text sent to a remote model.
func truncateInput(s string) string {
	if text.CountRunes(s) <= maxInputRunes {
		return s
	}
	return text.Truncate(s, maxInputRunes) + truncationNote
}

// recordSummary logs and records metrics for a generated summary. The limit
// is soft: an overlong summary is kept and flagged.
func recordSummary(ctx context.Context, m backendMetrics, requestID, summary string, limit int, duration time.Duration) string {
	summary = strings.TrimSpace(summary)
	length := text.CountRunes(summary)
	withinLimit := length <= limit

	slog.InfoContext(ctx, "Summarization completed",
		slog.String("request_id", requestID),
		slog.Int("summary_length", length),
		slog.Int("character_limit", limit),
		slog.Bool("within_limit", withinLimit),
		slog.Duration("duration", duration))
	if !withinLimit {
		slog.WarnContext(ctx, "Summary exceeds character limit",
			slog.String("request_id", requestID),
			slog.Int("summary_length", length),
			slog.Int("limit", limit),
			slog.Int("excess", length-limit))
	}

	m.observe(length, withinLimit, duration)
	return summary
}
