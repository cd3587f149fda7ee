package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Care & Cleaning  ", "care-cleaning"},
		{"Émeraude brute", "émeraude-brute"},
		{"already-slugged", "already-slugged"},
		{"Multiple   spaces!!", "multiple-spaces"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.in))
	}
}

func TestSlugifyEmptyFallsBackToUUID(t *testing.T) {
	slug := Slugify("!!!")
	require.Len(t, slug, 36)
}

func TestResolveSlugAppendsCounterOnCollision(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "pgx")

	mock.ExpectQuery("SELECT EXISTS").WithArgs("care-guide", "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("care-guide-2", "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	slug, err := ResolveSlug(db, "pages", "Care Guide", "")
	require.NoError(t, err)
	require.Equal(t, "care-guide-2", slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveSlugSkipsOwnRow(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "pgx")

	mock.ExpectQuery("SELECT EXISTS").WithArgs("care-guide", "page-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	slug, err := ResolveSlug(db, "pages", "Care Guide", "page-1")
	require.NoError(t, err)
	require.Equal(t, "care-guide", slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNormalizeRequired(t *testing.T) {
	value, err := NormalizeRequired("  Ruby  ", "Title is required")
	require.NoError(t, err)
	require.Equal(t, "Ruby", value)

	_, err = NormalizeRequired("   ", "Title is required")
	require.Error(t, err)
	serr, ok := err.(ServiceError)
	require.True(t, ok)
	require.Equal(t, 400, serr.Status)
	require.Equal(t, "Title is required", serr.Message)
}
