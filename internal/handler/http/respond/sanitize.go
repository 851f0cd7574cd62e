package respond

import (
	"regexp"
)

var (
	// Anthropic keys are masked before the generic OpenAI pattern so the
	// more specific prefix is preserved.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	slackWebhookPattern   = regexp.MustCompile(`hooks\.slack\.com/services/[A-Za-z0-9/_-]+`)
	discordWebhookPattern = regexp.MustCompile(`discord(?:app)?\.com/api/webhooks/[0-9]+/[A-Za-z0-9_-]+`)

	userinfoPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
)

// SanitizeError returns err's message with API keys, webhook secrets and URL
// passwords masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = slackWebhookPattern.ReplaceAllString(msg, "hooks.slack.com/services/****")
	msg = discordWebhookPattern.ReplaceAllString(msg, "discord.com/api/webhooks/****")
	msg = userinfoPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
