package services

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func Slugify(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	lastDash := false
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return uuid.NewString()
	}
	return slug
}

// ResolveSlug returns a slug derived from title that is unique within table
// (posts or pages), appending -2, -3, ... on collision. exceptID skips the
// row being updated.
func ResolveSlug(db *sqlx.DB, table, title, exceptID string) (string, error) {
	base := Slugify(title)
	candidate := base
	counter := 2
	for {
		var exists bool
		err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM `+table+` WHERE slug = $1 AND id <> $2)`, candidate, exceptID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(counter)
		counter++
	}
}

func NormalizeRequired(value, message string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrBadRequest(message)
	}
	return trimmed, nil
}
