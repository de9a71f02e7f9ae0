package notify

import "sniper-agent/utils"

// SMSChannel is a logging placeholder until a real SMS provider (e.g.
// Twilio) is wired in. It reports success so the rest of the pipeline
// can be exercised end to end.
type SMSChannel struct {
	logger *utils.Logger
}

func NewSMSChannel(logger *utils.Logger) *SMSChannel {
	return &SMSChannel{logger: logger}
}

func (c *SMSChannel) Name() string { return "sms" }

func (c *SMSChannel) Send(message string) bool {
	c.logger.Info("[notify] SMS alert: %s", message)
	return true
}
