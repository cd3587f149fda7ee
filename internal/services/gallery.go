package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GalleryEntry is one submitted gallery image. Position comes from the order
// of the submitted array, never from the client.
type GalleryEntry struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// ReplaceGallery swaps an entity's whole image gallery in one transaction:
// delete everything, reinsert with positional zero-based sort_order. That is
// what keeps sort_order contiguous per parent.
func ReplaceGallery(db *sqlx.DB, table, parentColumn, parentID string, gallery []GalleryEntry) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM `+table+` WHERE `+parentColumn+` = $1`, parentID); err != nil {
		return err
	}
	position := 0
	for _, entry := range gallery {
		url := strings.TrimSpace(entry.URL)
		if url == "" {
			continue
		}
		_, err := tx.Exec(`
INSERT INTO `+table+` (id, `+parentColumn+`, url, public_id, sort_order)
VALUES ($1,$2,$3,$4,$5)
`, uuid.NewString(), parentID, url, strings.TrimSpace(entry.PublicID), position)
		if err != nil {
			return err
		}
		position++
	}
	return tx.Commit()
}

func FetchGallery(db *sqlx.DB, table, parentColumn, parentID string) ([]GalleryEntry, error) {
	rows := []struct {
		URL      string `db:"url"`
		PublicID string `db:"public_id"`
	}{}
	err := db.Select(&rows, `
SELECT url, public_id FROM `+table+`
WHERE `+parentColumn+` = $1
ORDER BY sort_order ASC
`, parentID)
	if err != nil {
		return nil, err
	}
	gallery := make([]GalleryEntry, 0, len(rows))
	for _, row := range rows {
		gallery = append(gallery, GalleryEntry{URL: row.URL, PublicID: row.PublicID})
	}
	return gallery, nil
}

// ReplaceComposition swaps a jewelry item's gemstone-type junction rows in
// one transaction. Unknown category ids are skipped.
func ReplaceComposition(db *sqlx.DB, jewelryID string, categoryIDs []string) error {
	valid := make([]string, 0, len(categoryIDs))
	seen := map[string]bool{}
	for _, id := range categoryIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		var exists bool
		if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM gemstone_categories WHERE id = $1)`, id); err != nil {
			return err
		}
		if !exists {
			continue
		}
		seen[id] = true
		valid = append(valid, id)
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM jewelry_gemstone_compositions WHERE jewelry_id = $1`, jewelryID); err != nil {
		return err
	}
	for _, categoryID := range valid {
		_, err := tx.Exec(`
INSERT INTO jewelry_gemstone_compositions (jewelry_id, gemstone_category_id)
VALUES ($1,$2)
`, jewelryID, categoryID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
