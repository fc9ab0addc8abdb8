package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "bizhub-api", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, 15*time.Minute, cfg.JWT.FileURLTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Nil(t, cfg.CORS.AllowedHeaders)
	assert.Equal(t, "none", cfg.SMS.Provider)
	assert.Equal(t, 72*time.Hour, cfg.Compliance.AlertCooldown)
	assert.Equal(t, 4, cfg.Compliance.SweepConcurrency)
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/test.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test,")
	t.Setenv("COMPLIANCE_ALERT_COOLDOWN_HOURS", "24")
	t.Setenv("FRONTEND_URL", "https://app.test/")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Database.SQLitePath)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.Compliance.AlertCooldown)
	assert.Equal(t, "https://app.test", cfg.App.FrontendURL)
	assert.True(t, cfg.App.IsProduction())
}

func TestRateLimitConfig_RequestsPerSecond(t *testing.T) {
	assert.InDelta(t, 100.0/60.0, (&RateLimitConfig{Requests: 100, Duration: 60}).RequestsPerSecond(), 1e-9)
	assert.Zero(t, (&RateLimitConfig{Requests: 100}).RequestsPerSecond())
}
