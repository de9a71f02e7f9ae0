// Package notify holds the alert delivery channels. Each channel is a
// best-effort send(message) -> bool capability; delivery bookkeeping
// lives with the alert orchestrator, not here.
package notify

import (
	"sniper-agent/config"
	"sniper-agent/utils"
)

// Channel delivers one formatted alert message.
type Channel interface {
	Name() string
	Send(message string) bool
}

// Channels builds the channel set for the configured names. Unknown
// names are skipped with a warning; the orchestrator treats them as
// failed deliveries.
func Channels(names []string, cfg *config.Config, logger *utils.Logger) []Channel {
	var out []Channel
	for _, name := range names {
		ch, ok := ForName(name, cfg, logger)
		if !ok {
			logger.Warn("[notify] unknown alert channel %q", name)
			continue
		}
		out = append(out, ch)
	}
	return out
}

// ForName resolves a channel by name. ok is false for unknown names.
func ForName(name string, cfg *config.Config, logger *utils.Logger) (Channel, bool) {
	switch name {
	case "email":
		return NewEmailChannel(cfg, logger), true
	case "sms":
		return NewSMSChannel(logger), true
	case "slack":
		return NewSlackChannel(cfg.SlackWebhookURL, logger), true
	default:
		return nil, false
	}
}
