package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

// unsetenv removes key for the test and restores it afterwards. t.Setenv
// alone cannot express "not set at all", which is what the required and
// default paths react to.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	for _, key := range []string{"TELEGRAM_DEBUG", "POLL_TIMEOUT_SECONDS", "PORT", "LOG_LEVEL"} {
		unsetenv(t, key)
	}

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "123:abc", cfg.TelegramToken)
	require.False(t, cfg.TelegramDebug)
	require.Equal(t, 60, cfg.PollTimeout)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ReadsOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_DEBUG", "true")
	t.Setenv("POLL_TIMEOUT_SECONDS", "5")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	require.True(t, cfg.TelegramDebug)
	require.Equal(t, 5, cfg.PollTimeout)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingToken(t *testing.T) {
	unsetenv(t, "TELEGRAM_BOT_TOKEN")

	_, err := Load()

	var missing *env.ErrMissingRequiredValue
	require.ErrorAs(t, err, &missing)
}

func TestConfig_Level(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "INFO", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "loud", want: slog.LevelInfo},
		{level: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		require.Equal(t, tt.want, cfg.Level(), "level %q", tt.level)
	}
}
