package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DB_ENABLED", "DB_HOST", "DB_PORT", "DB_NAME", "DB_SSLMODE", "JWT_TOKEN_TTL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	require.Equal(t, ":5000", cfg.HTTP.Addr)
	require.True(t, cfg.DBEnabled)
	require.Equal(t, "localhost", cfg.Database.Host)
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, "swasthya", cfg.Database.Database)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	// token 默认 7 天有效
	require.Equal(t, 168*time.Hour, cfg.JWT.TokenTTL)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("JWT_TOKEN_TTL", "24h")

	cfg := Load()
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.False(t, cfg.DBEnabled)
	require.Equal(t, 15432, cfg.Database.Port)
	require.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("JWT_TOKEN_TTL", "eternal")

	cfg := Load()
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, 168*time.Hour, cfg.JWT.TokenTTL)
}
