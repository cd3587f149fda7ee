package services

import (
	"strconv"
	"strings"
	"time"

	"gemaura-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SiteSettings is the typed view over the app_settings key-value table.
// The table stores everything as strings; known keys are mapped to types
// here so the rest of the code never does untyped lookups.
type SiteSettings struct {
	SiteTitle    string
	SiteTagline  string
	HeadingFont  string
	BodyFont     string
	ContactEmail string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	NotifyEmail  string
}

func LoadSiteSettings(db *sqlx.DB) (SiteSettings, error) {
	rows := []models.AppSetting{}
	if err := db.Select(&rows, `SELECT setting_key, setting_value, is_private FROM app_settings`); err != nil {
		return SiteSettings{}, err
	}
	return mapSettings(rows), nil
}

func mapSettings(rows []models.AppSetting) SiteSettings {
	settings := SiteSettings{SMTPPort: 587}
	for _, row := range rows {
		value := strings.TrimSpace(row.Value)
		switch row.Key {
		case "site_title":
			settings.SiteTitle = value
		case "site_tagline":
			settings.SiteTagline = value
		case "heading_font":
			settings.HeadingFont = value
		case "body_font":
			settings.BodyFont = value
		case "contact_email":
			settings.ContactEmail = value
		case "smtp_host":
			settings.SMTPHost = value
		case "smtp_port":
			if port, err := strconv.Atoi(value); err == nil && port > 0 {
				settings.SMTPPort = port
			}
		case "smtp_username":
			settings.SMTPUsername = value
		case "smtp_password":
			settings.SMTPPassword = value
		case "smtp_from":
			settings.SMTPFrom = value
		case "notify_email":
			settings.NotifyEmail = value
		}
	}
	return settings
}

// PublicSettings returns the key-value map served without authentication.
// Rows flagged is_private (SMTP credentials and the like) are excluded.
func PublicSettings(db *sqlx.DB) (map[string]string, error) {
	rows := []models.AppSetting{}
	if err := db.Select(&rows, `SELECT setting_key, setting_value, is_private FROM app_settings WHERE is_private = FALSE`); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

func UpsertSetting(db *sqlx.DB, key, value string, isPrivate bool) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrBadRequest("Setting key is required")
	}
	_, err := db.Exec(`
INSERT INTO app_settings (id, setting_key, setting_value, is_private, updated_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value, is_private = EXCLUDED.is_private, updated_at = EXCLUDED.updated_at
`, uuid.NewString(), key, value, isPrivate, time.Now().UTC())
	return err
}
