package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "/tmp/sa.json")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("JWT_SECRET", "secret")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 20, cfg.DefaultCapacity)
	assert.Equal(t, time.Hour, cfg.PendingOverdue)
	assert.True(t, cfg.AllowRejectedResubmit)
	assert.Equal(t, "none", cfg.Notifier)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DEFAULT_CAPACITY", "14")
	t.Setenv("PENDING_OVERDUE", "30m")
	t.Setenv("ALLOW_REJECTED_RESUBMIT", "no")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 14, cfg.DefaultCapacity)
	assert.Equal(t, 30*time.Minute, cfg.PendingOverdue)
	assert.False(t, cfg.AllowRejectedResubmit)
}

func TestFromEnvBadNumbersFallBack(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_CAPACITY", "lots")
	t.Setenv("PENDING_OVERDUE", "-5m")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.DefaultCapacity)
	assert.Equal(t, time.Hour, cfg.PendingOverdue)
}

func TestFromEnvMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnvTelegramNeedsToken(t *testing.T) {
	setRequired(t)
	t.Setenv("NOTIFIER", "telegram")

	_, err := FromEnv()
	require.Error(t, err)

	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_TG_ID", "42")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.AdminTGID)
}
