package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_BOT_TOKEN,required=true"`
	TelegramDebug bool   `env:"TELEGRAM_DEBUG,default=false"`

	// PollTimeout is the long-poll timeout in seconds handed to Telegram.
	PollTimeout int `env:"POLL_TIMEOUT_SECONDS,default=60"`

	Port     string `env:"PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	// .env is optional — env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return &cfg, nil
}

// Level maps LOG_LEVEL to a slog level, defaulting to info on anything
// unrecognized.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
