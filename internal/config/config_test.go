package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "admin@stockflow.local", cfg.SeedAdminEmail)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://localhost/stockflow")

	cfg := Load()
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiresIn)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres://localhost/stockflow", cfg.DatabaseURL)
}

func TestLoadIgnoresBadDuration(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "tomorrow")
	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
}
