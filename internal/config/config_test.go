package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PG_HOST", "localhost")
	t.Setenv("PG_USER", "icebreaker")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_DATABASE", "icebreaker")
	t.Setenv("REDIS_ADDR", "localhost:6379")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "icebreaker", cfg.Name)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTPAddr)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "icebreaker:events", cfg.Events.Channel)
	assert.True(t, cfg.Seed.SampleData)
	assert.Empty(t, cfg.Admin.PasswordHash)
	assert.Empty(t, cfg.StaticDir)
	assert.Equal(t,
		"host=localhost port=5432 user=icebreaker password=secret dbname=icebreaker sslmode=disable pool_max_conns=10",
		cfg.Postgres.ConnString())
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("PG_HOST", "")

	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("ADMIN_TOKEN_TTL", "30m")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 30*time.Minute, cfg.Admin.TokenTTL)
}

func TestLoadRejectsZeroRateLimit(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_MAX", "0")

	_, err := Load(context.Background())
	assert.Error(t, err)
}
