// internal/chat/config.go
package chat

import (
	"time"

	"kushi-chatbot/internal/common/config"
)

type Config struct {
	MaxBodyBytes int64
	RetryAfter   time.Duration
}

// LoadConfig derives the handler settings from the application config.
func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		MaxBodyBytes: cfg.Chat.MaxBodyBytes,
		RetryAfter:   config.GetDuration(cfg.RateLimit.Window),
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 16 << 10
	}
	return c
}
