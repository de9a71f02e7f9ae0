package notify

import (
	"time"

	"github.com/go-resty/resty/v2"

	"sniper-agent/utils"
)

// SlackChannel posts alerts to an incoming-webhook URL.
type SlackChannel struct {
	webhookURL string
	client     *resty.Client
	logger     *utils.Logger
}

// NewSlackChannel builds the channel for the given webhook URL.
func NewSlackChannel(webhookURL string, logger *utils.Logger) *SlackChannel {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	return &SlackChannel{
		webhookURL: webhookURL,
		client:     client,
		logger:     logger,
	}
}

func (c *SlackChannel) Name() string { return "slack" }

// Send posts the alert as a webhook message.
func (c *SlackChannel) Send(message string) bool {
	if c.webhookURL == "" {
		c.logger.Warn("[notify] slack channel not configured (SLACK_WEBHOOK_URL)")
		return false
	}

	resp, err := c.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": message}).
		Post(c.webhookURL)
	if err != nil {
		c.logger.Warn("[notify] slack send failed: %v", err)
		return false
	}
	if !resp.IsSuccess() {
		c.logger.Warn("[notify] slack send failed: http status %d", resp.StatusCode())
		return false
	}
	return true
}
