package config

import (
	"strings"
	"time"
)

// NotifyConfig controls how one-time codes leave the process.
// Codes are always logged; a webhook is added when WebhookURL is set.
type NotifyConfig struct {
	WebhookURL     string        `env:"WEBHOOK_URL"     envDefault:""`
	WebhookTimeout time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookRetries int           `env:"WEBHOOK_RETRIES" envDefault:"2"`
}

// Sanitize trims the URL and clamps retry settings.
func (c *NotifyConfig) Sanitize() {
	c.WebhookURL = strings.TrimSpace(c.WebhookURL)
	if c.WebhookTimeout <= 0 {
		c.WebhookTimeout = 5 * time.Second
	}
	if c.WebhookRetries < 0 {
		c.WebhookRetries = 0
	}
}

// WebhookEnabled reports whether codes should also be posted to a webhook.
func (c *NotifyConfig) WebhookEnabled() bool {
	return c.WebhookURL != ""
}
