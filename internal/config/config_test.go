package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gemaura")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	require.Equal(t, "gemaura", cfg.JWTIssuer)
	require.Equal(t, int64(3600), cfg.SessionTTLSeconds)
	require.Equal(t, "token", cfg.CookieName)
	require.False(t, cfg.CookieSecure)
	require.Equal(t, 5, cfg.LoginRateLimit)
	require.Equal(t, 15*time.Minute, cfg.LoginRateWindow)
	require.Equal(t, 60*time.Minute, cfg.ContactRateWindow)
	require.Equal(t, time.Hour, cfg.SessionTTL())
	require.Nil(t, cfg.CorsOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gemaura")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_SECONDS", "120")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CORS_ORIGINS", "https://gemaura.md, https://admin.gemaura.md ,")

	cfg := Load()
	require.Equal(t, int64(120), cfg.SessionTTLSeconds)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, []string{"https://gemaura.md", "https://admin.gemaura.md"}, cfg.CorsOrigins)
}

func TestLoadPanicsWithoutSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gemaura")
	t.Setenv("JWT_SECRET", "")

	require.Panics(t, func() { Load() })
}
