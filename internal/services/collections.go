package services

import (
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	ItemTypeGemstone = "gemstone"
	ItemTypeJewelry  = "jewelry"
)

// ItemRef is the application-side shape of a collection member: a tagged
// union of gemstone or jewelry. The two-nullable-column representation only
// exists at the persistence edge.
type ItemRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ResolvedItem is the polymorphic member shape returned to clients,
// coalesced from whichever join side is non-null.
type ResolvedItem struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Title        string  `json:"title"`
	Image        *string `json:"image"`
	Price        *string `json:"price"`
	CategoryName *string `json:"category_name"`
}

type collectionItemRow struct {
	ID          string  `db:"id"`
	GemstoneID  *string `db:"gemstone_id"`
	JewelryID   *string `db:"jewelry_id"`
	SortOrder   int     `db:"sort_order"`
	GemTitle    *string `db:"gem_title"`
	GemImage    *string `db:"gem_image"`
	GemPrice    *string `db:"gem_price"`
	GemCategory *string `db:"gem_category"`
	JewTitle    *string `db:"jew_title"`
	JewImage    *string `db:"jew_image"`
	JewPrice    *string `db:"jew_price"`
	JewCategory *string `db:"jew_category"`
}

// ResolveCollectionItems fetches every membership row for a collection with
// both product sides LEFT JOINed in one pass, and normalizes each into a
// single polymorphic shape.
func ResolveCollectionItems(db *sqlx.DB, collectionID string) ([]ResolvedItem, error) {
	rows := []collectionItemRow{}
	err := db.Select(&rows, `
SELECT ci.id, ci.gemstone_id, ci.jewelry_id, ci.sort_order,
       g.title AS gem_title, g.image AS gem_image, g.price AS gem_price, gc.name AS gem_category,
       j.title AS jew_title, j.image AS jew_image, j.price AS jew_price, jc.name AS jew_category
FROM collection_items ci
LEFT JOIN gemstones g ON g.id = ci.gemstone_id
LEFT JOIN gemstone_categories gc ON gc.id = g.category_id
LEFT JOIN jewelry_items j ON j.id = ci.jewelry_id
LEFT JOIN jewelry_categories jc ON jc.id = j.category_id
WHERE ci.collection_id = $1
ORDER BY ci.sort_order ASC
`, collectionID)
	if err != nil {
		return nil, err
	}
	return NormalizeItems(rows), nil
}

func NormalizeItems(rows []collectionItemRow) []ResolvedItem {
	items := make([]ResolvedItem, 0, len(rows))
	for _, row := range rows {
		switch {
		case row.GemstoneID != nil && row.GemTitle != nil:
			items = append(items, ResolvedItem{
				ID:           *row.GemstoneID,
				Type:         ItemTypeGemstone,
				Title:        *row.GemTitle,
				Image:        row.GemImage,
				Price:        row.GemPrice,
				CategoryName: row.GemCategory,
			})
		case row.JewelryID != nil && row.JewTitle != nil:
			items = append(items, ResolvedItem{
				ID:           *row.JewelryID,
				Type:         ItemTypeJewelry,
				Title:        *row.JewTitle,
				Image:        row.JewImage,
				Price:        row.JewPrice,
				CategoryName: row.JewCategory,
			})
		}
	}
	return items
}

// Facets are the derived, non-persisted category-name lists used for UI
// filters. Recomputed on every read.
type Facets struct {
	GemstoneCategories []string `json:"gemstone_categories"`
	JewelryCategories  []string `json:"jewelry_categories"`
}

func DeriveFacets(items []ResolvedItem) Facets {
	facets := Facets{GemstoneCategories: []string{}, JewelryCategories: []string{}}
	seenGem := map[string]bool{}
	seenJew := map[string]bool{}
	for _, item := range items {
		if item.CategoryName == nil || strings.TrimSpace(*item.CategoryName) == "" {
			continue
		}
		name := *item.CategoryName
		switch item.Type {
		case ItemTypeGemstone:
			if !seenGem[name] {
				seenGem[name] = true
				facets.GemstoneCategories = append(facets.GemstoneCategories, name)
			}
		case ItemTypeJewelry:
			if !seenJew[name] {
				seenJew[name] = true
				facets.JewelryCategories = append(facets.JewelryCategories, name)
			}
		}
	}
	return facets
}

// ReplaceCollectionItems swaps a collection's membership wholesale inside a
// transaction. References to ids that no longer exist are logged and skipped
// rather than aborting the save: partial success is the contract. The final
// membership equals the subset of requested refs that existed at save time.
func ReplaceCollectionItems(db *sqlx.DB, collectionID string, items []ItemRef) error {
	valid := make([]ItemRef, 0, len(items))
	for _, item := range items {
		itemType := strings.ToLower(strings.TrimSpace(item.Type))
		var table string
		switch itemType {
		case ItemTypeGemstone:
			table = "gemstones"
		case ItemTypeJewelry:
			table = "jewelry_items"
		default:
			log.Printf("collection %s: skipping item with unknown type %q", collectionID, item.Type)
			continue
		}
		var exists bool
		if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM `+table+` WHERE id = $1)`, item.ID); err != nil {
			return err
		}
		if !exists {
			log.Printf("collection %s: skipping %s %s, no such row", collectionID, itemType, item.ID)
			continue
		}
		valid = append(valid, ItemRef{Type: itemType, ID: item.ID})
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM collection_items WHERE collection_id = $1`, collectionID); err != nil {
		return err
	}
	for position, item := range valid {
		var gemstoneID, jewelryID *string
		if item.Type == ItemTypeGemstone {
			gemstoneID = &item.ID
		} else {
			jewelryID = &item.ID
		}
		_, err := tx.Exec(`
INSERT INTO collection_items (id, collection_id, gemstone_id, jewelry_id, sort_order)
VALUES ($1,$2,$3,$4,$5)
`, uuid.NewString(), collectionID, gemstoneID, jewelryID, position)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
