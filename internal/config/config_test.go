package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LITLE_MERCHANT_ID", "101")
	t.Setenv("LITLE_USERNAME", "login")
	t.Setenv("LITLE_PASSWORD", "secret")
	t.Setenv("LITLE_TEST", "false")
	t.Setenv("LITLE_TIMEOUT", "45")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "101", cfg.Gateway.MerchantID)
	assert.Equal(t, "login", cfg.Gateway.Username)
	assert.Equal(t, "secret", cfg.Gateway.Password)
	assert.False(t, cfg.Gateway.Test)
	assert.Equal(t, 45, cfg.Gateway.Timeout)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("LITLE_USERNAME", "login")
	t.Setenv("LITLE_PASSWORD", "secret")
	t.Setenv("LITLE_TEST", "")
	t.Setenv("LITLE_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.Gateway.Test)
	assert.Equal(t, 30, cfg.Gateway.Timeout)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromEnvRequiresCredentials(t *testing.T) {
	t.Setenv("LITLE_USERNAME", "")
	t.Setenv("LITLE_PASSWORD", "secret")
	_, err := LoadFromEnv()
	require.Error(t, err)

	t.Setenv("LITLE_USERNAME", "login")
	t.Setenv("LITLE_PASSWORD", "")
	_, err = LoadFromEnv()
	require.Error(t, err)
}

func TestGetEnvAsBoolInvalidValueFallsBack(t *testing.T) {
	t.Setenv("LITLE_TEST", "not-a-bool")
	assert.True(t, getEnvAsBool("LITLE_TEST", true))
	assert.False(t, getEnvAsBool("LITLE_TEST", false))
}
