package importer

import (
	"net/url"
	"time"
)

// Config represents the configuration for the recipe import client
type Config struct {
	// WebhookURL receives {"url": ...} and answers with a recipe document
	WebhookURL string

	// Timeout bounds a single import call
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.WebhookURL == "" {
		return ErrInvalidConfig
	}
	u, err := url.Parse(c.WebhookURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidConfig
	}
	if c.Timeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}
