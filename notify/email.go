package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"sniper-agent/config"
	"sniper-agent/utils"
)

// EmailChannel delivers alerts over SMTP.
type EmailChannel struct {
	host     string
	port     int
	from     string
	password string
	to       string
	logger   *utils.Logger
}

// NewEmailChannel builds the channel from SMTP config.
func NewEmailChannel(cfg *config.Config, logger *utils.Logger) *EmailChannel {
	return &EmailChannel{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		password: cfg.SMTPPassword,
		to:       cfg.AlertEmailTo,
		logger:   logger,
	}
}

func (c *EmailChannel) Name() string { return "email" }

// Send mails the alert message. Missing addressing config is a failed
// delivery, not a crash.
func (c *EmailChannel) Send(message string) bool {
	if c.from == "" || c.to == "" {
		c.logger.Warn("[notify] email channel not configured (SMTP_FROM / ALERT_EMAIL_TO)")
		return false
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Sniper Agent <%s>", c.from)
	mail.To = []string{c.to}
	mail.Subject = "Deal alert"
	mail.Text = []byte(message)

	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	var auth smtp.Auth
	if c.password != "" {
		auth = smtp.PlainAuth("", c.from, c.password, c.host)
	}
	if err := mail.Send(addr, auth); err != nil {
		c.logger.Warn("[notify] email send failed: %v", err)
		return false
	}
	return true
}
