package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MemoryDriverDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DEMO_ENABLED", "true")
	t.Setenv("ALERT_INTERVAL", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.App.StorageDriver)
	assert.True(t, cfg.App.DemoEnabled)
	assert.Equal(t, 15*time.Minute, cfg.Alerts.Interval)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.Alerts.EmailInterval)
	assert.Empty(t, cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoad_SMTP(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SMTP_HOST", "mail.test")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("ALERT_EMAIL_INTERVAL", "12h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mail.test", cfg.SMTP.Host)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, 12*time.Hour, cfg.Alerts.EmailInterval)

	t.Setenv("SMTP_PORT", "smtp")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_PostgresRequiresPassword(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "certs", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://u:p@db:5433/certs?sslmode=disable", cfg.DatabaseURL())
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, AppConfig{LogLevel: in}.SlogLevel(), in)
	}
}
