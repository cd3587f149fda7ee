package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration loaded from environment variables.
// Site-level settings (branding, SMTP, fonts) live in the app_settings table
// instead; see services.LoadSiteSettings.
type Config struct {
	DatabaseURL       string
	JWTSecret         string
	JWTIssuer         string
	SessionTTLSeconds int64
	CookieName        string
	CookieSecure      bool
	MediaStoragePath  string
	CorsOrigins       []string
	LoginRateLimit    int
	LoginRateWindow   time.Duration
	ContactRateLimit  int
	ContactRateWindow time.Duration
}

func Load() Config {
	return Config{
		DatabaseURL:       mustEnv("DATABASE_URL"),
		JWTSecret:         mustEnv("JWT_SECRET"),
		JWTIssuer:         envOr("JWT_ISSUER", "gemaura"),
		SessionTTLSeconds: int64(envOrInt("SESSION_TTL_SECONDS", 3600)),
		CookieName:        envOr("SESSION_COOKIE_NAME", "token"),
		CookieSecure:      envOr("COOKIE_SECURE", "false") == "true",
		MediaStoragePath:  envOr("MEDIA_STORAGE_PATH", "storage/media"),
		CorsOrigins:       parseCSV(envOr("CORS_ORIGINS", "")),
		LoginRateLimit:    envOrInt("LOGIN_RATE_LIMIT", 5),
		LoginRateWindow:   time.Duration(envOrInt("LOGIN_RATE_WINDOW_MINUTES", 15)) * time.Minute,
		ContactRateLimit:  envOrInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow: time.Duration(envOrInt("CONTACT_RATE_WINDOW_MINUTES", 60)) * time.Minute,
	}
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
