// Package notifier posts emerging-threat digests to chat webhooks.
//
// A digest is sent after each scheduled analysis that detected threats. Slack
// and Discord are supported; each can be enabled independently and both share
// the same rate limiting and retry behavior.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"fiji-news/internal/domain/entity"
	envconfig "fiji-news/pkg/config"
)

// maxDigestThreats bounds the threats listed in one message.
const maxDigestThreats = 10

// Notifier sends a digest of the emerging threats in an analysis.
// filename names the persisted analysis document.
type Notifier interface {
	NotifyThreats(ctx context.Context, analysis *entity.Analysis, filename string) error
}

// Config enables the webhook notifiers.
type Config struct {
	Slack   SlackConfig
	Discord DiscordConfig
}

// LoadConfigFromEnv reads SLACK_ENABLED, SLACK_WEBHOOK_URL, DISCORD_ENABLED,
// DISCORD_WEBHOOK_URL and NOTIFY_TIMEOUT.
func LoadConfigFromEnv() Config {
	timeout := envconfig.GetEnvDuration("NOTIFY_TIMEOUT", 10*time.Second)
	return Config{
		Slack: SlackConfig{
			Enabled:    envconfig.GetEnvBool("SLACK_ENABLED", false),
			WebhookURL: envconfig.GetEnvString("SLACK_WEBHOOK_URL", ""),
			Timeout:    timeout,
		},
		Discord: DiscordConfig{
			Enabled:    envconfig.GetEnvBool("DISCORD_ENABLED", false),
			WebhookURL: envconfig.GetEnvString("DISCORD_WEBHOOK_URL", ""),
			Timeout:    timeout,
		},
	}
}

// New returns a notifier for every enabled webhook with a valid URL, or a
// NoOpNotifier when none is. An enabled webhook with a bad URL is disabled
// with a warning.
func New(cfg Config) Notifier {
	var m Multi
	if cfg.Slack.Enabled {
		if err := validateWebhookURL(cfg.Slack.WebhookURL, slackHost, "/services/"); err != nil {
			slog.Warn("Slack notifications disabled", slog.String("reason", err.Error()))
		} else {
			m = append(m, NewSlackNotifier(cfg.Slack))
		}
	}
	if cfg.Discord.Enabled {
		if err := validateWebhookURL(cfg.Discord.WebhookURL, discordHost, "/api/webhooks/"); err != nil {
			slog.Warn("Discord notifications disabled", slog.String("reason", err.Error()))
		} else {
			m = append(m, NewDiscordNotifier(cfg.Discord))
		}
	}
	switch len(m) {
	case 0:
		return NewNoOpNotifier()
	case 1:
		return m[0]
	default:
		return m
	}
}

// Multi sends each digest to all of its notifiers. A failure of one does not
// prevent delivery to the others.
type Multi []Notifier

// NotifyThreats implements Notifier.
func (m Multi) NotifyThreats(ctx context.Context, analysis *entity.Analysis, filename string) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyThreats(ctx, analysis, filename); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// digestThreats returns the threats to list and how many were left out.
func digestThreats(analysis *entity.Analysis) ([]entity.ThreatRecord, int) {
	threats := analysis.EmergingThreats
	if len(threats) <= maxDigestThreats {
		return threats, 0
	}
	return threats[:maxDigestThreats], len(threats) - maxDigestThreats
}

const (
	slackHost   = "hooks.slack.com"
	discordHost = "discord.com"
)

// validateWebhookURL requires an https URL on host under pathPrefix. The
// error never echoes the URL itself since it embeds the webhook secret.
func validateWebhookURL(raw, host, pathPrefix string) error {
	if raw == "" {
		return errors.New("webhook URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.New("webhook URL is malformed")
	}
	if u.Scheme != "https" {
		return errors.New("webhook URL must use https")
	}
	if u.Host != host {
		return fmt.Errorf("webhook host %q is not %s", u.Host, host)
	}
	if !strings.HasPrefix(u.Path, pathPrefix) {
		return fmt.Errorf("webhook path must start with %s", pathPrefix)
	}
	return nil
}
