package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/garagelog")
	t.Setenv("FIREBASE_PROJECT_ID", "garagelog-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 30, cfg.AuthRateLimit)
	assert.Equal(t, 10, cfg.AuthRateBurst)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_RequiredKeys(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("FIREBASE_PROJECT_ID", "garagelog-test")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/garagelog")
	t.Setenv("FIREBASE_PROJECT_ID", "")

	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_RateLimitOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/garagelog")
	t.Setenv("FIREBASE_PROJECT_ID", "garagelog-test")
	t.Setenv("AUTH_RATE_LIMIT", "120")
	t.Setenv("AUTH_RATE_BURST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.AuthRateLimit)
	assert.Equal(t, 10, cfg.AuthRateBurst, "unparseable values fall back to the default")
}
