package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fiji-news/internal/domain/entity"
)

// DiscordConfig configures the Discord webhook notifier.
type DiscordConfig struct {
	Enabled    bool
	WebhookURL string
	Timeout    time.Duration
}

// DiscordNotifier posts digests as embed messages. Discord allows 30
// requests per minute per webhook.
type DiscordNotifier struct {
	webhook *webhook
}

// NewDiscordNotifier creates a DiscordNotifier.
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{webhook: newWebhook("discord", config.WebhookURL, config.Timeout, 0.5, 3)}
}

// DiscordWebhookPayload is the webhook message body.
type DiscordWebhookPayload struct {
	Content string         `json:"content"`
	Embeds  []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed is one threat card.
type DiscordEmbed struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	URL         string             `json:"url,omitempty"`
	Color       int                `json:"color"`
	Footer      DiscordEmbedFooter `json:"footer"`
}

// DiscordEmbedFooter is the footer line of an embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

const (
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	maxContentLength     = 2000
	truncationSuffix     = "..."

	// #ED4245
	discordRedColor = 15548997
)

// NotifyThreats implements Notifier. Analyses without threats are not sent.
func (d *DiscordNotifier) NotifyThreats(ctx context.Context, analysis *entity.Analysis, filename string) error {
	if analysis == nil || len(analysis.EmergingThreats) == 0 {
		return nil
	}
	return d.webhook.post(ctx, buildDiscordPayload(analysis, filename))
}

func buildDiscordPayload(analysis *entity.Analysis, filename string) DiscordWebhookPayload {
	threats, omitted := digestThreats(analysis)

	lines := []string{fmt.Sprintf("**%d emerging threats** detected in the analysis of %s",
		len(analysis.EmergingThreats), analysis.Timestamp)}
	if omitted > 0 {
		lines = append(lines, fmt.Sprintf("%d more threats not shown.", omitted))
	}
	for _, m := range analysis.MitigationStrategies {
		lines = append(lines, fmt.Sprintf("- **%s**: %s", m.Type, m.Description))
	}
	if filename != "" {
		lines = append(lines, "Report: "+filename)
	}

	embeds := make([]DiscordEmbed, 0, len(threats))
	for _, t := range threats {
		embeds = append(embeds, DiscordEmbed{
			Title:       truncate(t.Title, maxTitleLength, truncationSuffix),
			Description: truncate(t.Summary, maxDescriptionLength, truncationSuffix),
			URL:         t.URL,
			Color:       discordRedColor,
			Footer: DiscordEmbedFooter{
				Text: fmt.Sprintf("%s • %s • %s", t.Source, t.Date, strings.Join(t.Keywords, ", ")),
			},
		})
	}

	return DiscordWebhookPayload{
		Content: truncate(strings.Join(lines, "\n"), maxContentLength, truncationSuffix),
		Embeds:  embeds,
	}
}
