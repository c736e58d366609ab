package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "support-message-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 90, cfg.Retention.Days)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MESSAGE_RETENTION_DAYS", "30")
	t.Setenv("MESSAGE_ENCRYPTION_KEY", strings.Repeat("ab", 32))
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 30, cfg.Retention.Days)
	assert.Equal(t, strings.Repeat("ab", 32), cfg.Encryption.KeyHex)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("MESSAGE_RETENTION_DAYS", "ninety")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Retention.Days)
}
