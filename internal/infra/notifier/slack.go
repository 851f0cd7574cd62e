package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fiji-news/internal/domain/entity"
)

// SlackConfig configures the Slack Incoming Webhook notifier.
type SlackConfig struct {
	Enabled    bool
	WebhookURL string
	Timeout    time.Duration
}

// SlackNotifier posts digests as Block Kit messages. Slack allows one message
// per second per webhook.
type SlackNotifier struct {
	webhook *webhook
}

// NewSlackNotifier creates a SlackNotifier.
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{webhook: newWebhook("slack", config.WebhookURL, config.Timeout, 1.0, 1)}
}

// SlackWebhookPayload is the Block Kit message body.
type SlackWebhookPayload struct {
	Text   string       `json:"text"`
	Blocks []SlackBlock `json:"blocks"`
}

// SlackBlock is a section, context or divider block.
type SlackBlock struct {
	Type     string            `json:"type"`
	Text     *SlackTextObject  `json:"text,omitempty"`
	Elements []SlackTextObject `json:"elements,omitempty"`
}

// SlackTextObject is a mrkdwn or plain_text object.
type SlackTextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const (
	maxSectionTextLength  = 3000
	maxContextTextLength  = 2000
	maxFallbackLength     = 150
	slackTruncationSuffix = "..."
)

// NotifyThreats implements Notifier. Analyses without threats are not sent.
func (s *SlackNotifier) NotifyThreats(ctx context.Context, analysis *entity.Analysis, filename string) error {
	if analysis == nil || len(analysis.EmergingThreats) == 0 {
		return nil
	}
	return s.webhook.post(ctx, buildSlackPayload(analysis, filename))
}

func buildSlackPayload(analysis *entity.Analysis, filename string) SlackWebhookPayload {
	threats, omitted := digestThreats(analysis)

	fallback := truncate(
		fmt.Sprintf("Fiji news: %d emerging threats detected (%s)", len(analysis.EmergingThreats), analysis.Timestamp),
		maxFallbackLength, slackTruncationSuffix)

	blocks := []SlackBlock{
		{
			Type: "section",
			Text: &SlackTextObject{
				Type: "mrkdwn",
				Text: fmt.Sprintf(":warning: *%d emerging threats* in the analysis of %s",
					len(analysis.EmergingThreats), analysis.Timestamp),
			},
		},
		{Type: "divider"},
	}

	for _, t := range threats {
		section := fmt.Sprintf("*<%s|%s>*\nKeywords: %s\n\n%s",
			t.URL, t.Title, strings.Join(t.Keywords, ", "), t.Summary)
		blocks = append(blocks,
			SlackBlock{
				Type: "section",
				Text: &SlackTextObject{Type: "mrkdwn", Text: truncate(section, maxSectionTextLength, slackTruncationSuffix)},
			},
			SlackBlock{
				Type:     "context",
				Elements: []SlackTextObject{{Type: "mrkdwn", Text: fmt.Sprintf("%s • %s", t.Source, t.Date)}},
			})
	}

	footer := []string{}
	if omitted > 0 {
		footer = append(footer, fmt.Sprintf("%d more threats not shown.", omitted))
	}
	for _, m := range analysis.MitigationStrategies {
		footer = append(footer, fmt.Sprintf("• *%s*: %s", m.Type, m.Description))
	}
	if filename != "" {
		footer = append(footer, "Report: "+filename)
	}
	blocks = append(blocks,
		SlackBlock{Type: "divider"},
		SlackBlock{
			Type:     "context",
			Elements: []SlackTextObject{{Type: "mrkdwn", Text: truncate(strings.Join(footer, "\n"), maxContextTextLength, slackTruncationSuffix)}},
		})

	return SlackWebhookPayload{Text: fallback, Blocks: blocks}
}
