package services

import (
	"testing"

	"gemaura-backend-go/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestMapSettingsTypesKnownKeys(t *testing.T) {
	settings := mapSettings([]models.AppSetting{
		{Key: "site_title", Value: "  Gemaura  "},
		{Key: "heading_font", Value: "Cormorant Garamond"},
		{Key: "smtp_host", Value: "smtp.example.com", IsPrivate: true},
		{Key: "smtp_port", Value: "2525", IsPrivate: true},
		{Key: "notify_email", Value: "owner@example.com", IsPrivate: true},
		{Key: "some_future_key", Value: "ignored"},
	})
	require.Equal(t, "Gemaura", settings.SiteTitle)
	require.Equal(t, "Cormorant Garamond", settings.HeadingFont)
	require.Equal(t, "smtp.example.com", settings.SMTPHost)
	require.Equal(t, 2525, settings.SMTPPort)
	require.Equal(t, "owner@example.com", settings.NotifyEmail)
}

func TestMapSettingsSMTPPortDefaults(t *testing.T) {
	require.Equal(t, 587, mapSettings(nil).SMTPPort)
	require.Equal(t, 587, mapSettings([]models.AppSetting{{Key: "smtp_port", Value: "not-a-number"}}).SMTPPort)
	require.Equal(t, 587, mapSettings([]models.AppSetting{{Key: "smtp_port", Value: "0"}}).SMTPPort)
}

func TestPublicSettingsExcludesPrivateRows(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "pgx")

	mock.ExpectQuery("FROM app_settings WHERE is_private = FALSE").
		WillReturnRows(sqlmock.NewRows([]string{"setting_key", "setting_value", "is_private"}).
			AddRow("site_title", "Gemaura", false).
			AddRow("body_font", "Lato", false))

	values, err := PublicSettings(db)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"site_title": "Gemaura", "body_font": "Lato"}, values)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSettingRejectsBlankKey(t *testing.T) {
	err := UpsertSetting(nil, "   ", "value", false)
	require.Error(t, err)
	serr, ok := err.(ServiceError)
	require.True(t, ok)
	require.Equal(t, 400, serr.Status)
}

func TestUpsertSettingWritesRow(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "pgx")

	mock.ExpectExec("INSERT INTO app_settings").
		WithArgs(sqlmock.AnyArg(), "site_tagline", "Fine stones", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, UpsertSetting(db, " site_tagline ", "Fine stones", false))
	require.NoError(t, mock.ExpectationsWereMet())
}
