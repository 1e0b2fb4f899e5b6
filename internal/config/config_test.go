package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Ensure clean env for this test.
	os.Clearenv()

	cfg := Load()
	require.Equal(t, "", cfg.DatabaseURL)
	require.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	require.Equal(t, 20, cfg.MaxConns)
	require.Equal(t, 2, cfg.MinConns)
	require.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
	require.Equal(t, 5*time.Minute, cfg.ConnMaxIdleTime)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.False(t, cfg.Debug)
}

func TestLoad_OverridesAndInvalidValues(t *testing.T) {
	t.Cleanup(os.Clearenv)

	t.Run("valid overrides", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/mynotes?sslmode=disable")
		os.Setenv("REDIS_URL", "redis://cache:6380/1")
		os.Setenv("DB_MAX_CONNS", "5")
		os.Setenv("DB_MIN_CONNS", "1")
		os.Setenv("DB_CONN_MAX_LIFETIME", "1m")
		os.Setenv("DB_CONN_MAX_IDLE_TIME", "10s")
		os.Setenv("SESSION_TTL", "48h")
		os.Setenv("HTTP_ADDR", ":9999")
		os.Setenv("DEBUG", "true")

		cfg := Load()
		require.Equal(t, "postgres://u:p@localhost:5432/mynotes?sslmode=disable", cfg.DatabaseURL)
		require.Equal(t, "redis://cache:6380/1", cfg.RedisURL)
		require.Equal(t, 5, cfg.MaxConns)
		require.Equal(t, 1, cfg.MinConns)
		require.Equal(t, time.Minute, cfg.ConnMaxLifetime)
		require.Equal(t, 10*time.Second, cfg.ConnMaxIdleTime)
		require.Equal(t, 48*time.Hour, cfg.SessionTTL)
		require.Equal(t, ":9999", cfg.HTTPAddr)
		require.True(t, cfg.Debug)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("DB_MAX_CONNS", "abc")
		os.Setenv("DB_MIN_CONNS", "xyz")
		os.Setenv("DB_CONN_MAX_LIFETIME", "bad")
		os.Setenv("DB_CONN_MAX_IDLE_TIME", "bad")
		os.Setenv("SESSION_TTL", "soon")
		os.Setenv("DEBUG", "yep")

		cfg := Load()
		require.Equal(t, 20, cfg.MaxConns)
		require.Equal(t, 2, cfg.MinConns)
		require.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
		require.Equal(t, 5*time.Minute, cfg.ConnMaxIdleTime)
		require.Equal(t, 24*time.Hour, cfg.SessionTTL)
		require.False(t, cfg.Debug)
	})
}
