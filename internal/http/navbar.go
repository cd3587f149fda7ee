package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"gemaura-backend-go/internal/models"
	"gemaura-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	navTypeFixed     = "fixed"
	navTypeCustom    = "custom"
	navTypeSeparator = "separator"
)

type NavbarItemDTO struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Type      string  `json:"type"`
	URL       *string `json:"url"`
	ParentID  *string `json:"parent_id"`
	SortOrder int     `json:"sort_order"`
	IsVisible bool    `json:"is_visible"`
}

type NavbarUpsertRequest struct {
	Label     string  `json:"label"`
	Type      *string `json:"type"`
	URL       *string `json:"url"`
	ParentID  *string `json:"parent_id"`
	SortOrder *int    `json:"sort_order"`
	IsVisible *bool   `json:"is_visible"`
}

func navbarItemDTO(row models.NavbarItem) NavbarItemDTO {
	return NavbarItemDTO{
		ID:        row.ID,
		Label:     row.Label,
		Type:      row.Type,
		URL:       row.URL,
		ParentID:  row.ParentID,
		SortOrder: row.SortOrder,
		IsVisible: row.IsVisible,
	}
}

func (s *Server) ListNavbarItems(w http.ResponseWriter, r *http.Request) {
	rows := []models.NavbarItem{}
	if err := s.DB.Select(&rows, `
SELECT id, label, type, url, parent_id, sort_order, is_visible
FROM navbar_items
ORDER BY sort_order ASC, label ASC
`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]NavbarItemDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, navbarItemDTO(row))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) CreateNavbarItem(w http.ResponseWriter, r *http.Request) {
	var req NavbarUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	label, err := services.NormalizeRequired(req.Label, "Label is required")
	if mapServiceError(w, err) {
		return
	}
	itemType := navTypeCustom
	if req.Type != nil {
		itemType = *req.Type
	}
	// Fixed entries are seeded by migration, never created through the API.
	if itemType != navTypeCustom && itemType != navTypeSeparator {
		WriteError(w, http.StatusBadRequest, "Type must be custom or separator")
		return
	}
	if req.ParentID != nil {
		var exists bool
		_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM navbar_items WHERE id = $1)`, *req.ParentID)
		if !exists {
			WriteError(w, http.StatusBadRequest, "Parent item does not exist")
			return
		}
	}
	itemID := uuid.NewString()
	_, err = s.DB.Exec(`
INSERT INTO navbar_items (id, label, type, url, parent_id, sort_order, is_visible, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, itemID, label, itemType, req.URL, req.ParentID, intOr(req.SortOrder, 0), boolOr(req.IsVisible, true), time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"id": itemID})
}

func (s *Server) UpdateNavbarItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")
	var req NavbarUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	row := models.NavbarItem{}
	if err := s.DB.Get(&row, `
SELECT id, label, type, url, parent_id, sort_order, is_visible
FROM navbar_items
WHERE id = $1
`, itemID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	// Fixed items keep their identity; only ordering and visibility move.
	if row.Type == navTypeFixed {
		_, err := s.DB.Exec(`UPDATE navbar_items SET sort_order = $2, is_visible = $3 WHERE id = $1`,
			itemID, intOr(req.SortOrder, row.SortOrder), boolOr(req.IsVisible, row.IsVisible))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"id": itemID})
		return
	}
	label, err := services.NormalizeRequired(req.Label, "Label is required")
	if mapServiceError(w, err) {
		return
	}
	if req.ParentID != nil && *req.ParentID == itemID {
		WriteError(w, http.StatusBadRequest, "Item cannot be its own parent")
		return
	}
	_, err = s.DB.Exec(`
UPDATE navbar_items
SET label = $2, url = $3, parent_id = $4, sort_order = $5, is_visible = $6
WHERE id = $1
`, itemID, label, req.URL, req.ParentID, intOr(req.SortOrder, row.SortOrder), boolOr(req.IsVisible, row.IsVisible))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"id": itemID})
}

func (s *Server) DeleteNavbarItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")
	var itemType string
	if err := s.DB.Get(&itemType, `SELECT type FROM navbar_items WHERE id = $1`, itemID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if itemType == navTypeFixed {
		WriteError(w, http.StatusBadRequest, "Fixed items cannot be deleted")
		return
	}
	// Children go with the parent via the self-FK CASCADE.
	_, _ = s.DB.Exec(`DELETE FROM navbar_items WHERE id = $1`, itemID)
	w.WriteHeader(http.StatusNoContent)
}
