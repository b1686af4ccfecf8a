package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken    string
	WebhookSecret    string
	DatabaseURL      string
	ListenAddr       string
	RedisAddr        string
	SnapshotInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// The bot token is always required; the webhook secret only in push mode,
// which is checked by RequireWebhookSecret.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DATABASE_URL", "coach.db")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("SNAPSHOT_INTERVAL_HOURS", 6)

	cfg := Config{
		TelegramToken:    strings.TrimSpace(v.GetString("TELEGRAM_BOT_TOKEN")),
		WebhookSecret:    strings.TrimSpace(v.GetString("TELEGRAM_WEBHOOK_SECRET")),
		DatabaseURL:      strings.TrimSpace(v.GetString("DATABASE_URL")),
		ListenAddr:       strings.TrimSpace(v.GetString("LISTEN_ADDR")),
		RedisAddr:        strings.TrimSpace(v.GetString("REDIS_ADDR")),
		SnapshotInterval: time.Duration(v.GetInt("SNAPSHOT_INTERVAL_HOURS")) * time.Hour,
	}

	if cfg.SnapshotInterval < 0 {
		cfg.SnapshotInterval = 0
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	return cfg, nil
}

// RequireWebhookSecret fails fast when push mode starts without a secret.
func (c Config) RequireWebhookSecret() error {
	if c.WebhookSecret == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_SECRET is required in webhook mode")
	}
	return nil
}
