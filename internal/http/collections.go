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

type CollectionDTO struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Description *string                 `json:"description"`
	Image       *string                 `json:"image"`
	IsVisible   bool                    `json:"is_visible"`
	SortOrder   int                     `json:"sort_order"`
	Items       []services.ResolvedItem `json:"items,omitempty"`
	Facets      *services.Facets        `json:"facets,omitempty"`
}

type CollectionUpsertRequest struct {
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	Image       *string            `json:"image"`
	IsVisible   *bool              `json:"is_visible"`
	SortOrder   *int               `json:"sort_order"`
	Items       []services.ItemRef `json:"items"`
}

func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	rows := []models.Collection{}
	if err := s.DB.Select(&rows, `
SELECT id, title, description, image, is_visible, sort_order
FROM collections
ORDER BY sort_order ASC, title ASC
`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]CollectionDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, CollectionDTO{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			Image:       row.Image,
			IsVisible:   row.IsVisible,
			SortOrder:   row.SortOrder,
		})
	}
	WriteJSON(w, http.StatusOK, items)
}

// GetCollection returns the collection with its members resolved to the
// polymorphic item shape and the two facet lists derived from them. Facets
// are never persisted, they are recomputed on every read.
func (s *Server) GetCollection(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "collectionId")
	row := models.Collection{}
	if err := s.DB.Get(&row, `
SELECT id, title, description, image, is_visible, sort_order
FROM collections
WHERE id = $1
`, collectionID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	items, err := services.ResolveCollectionItems(s.DB, collectionID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	facets := services.DeriveFacets(items)
	WriteJSON(w, http.StatusOK, CollectionDTO{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Image:       row.Image,
		IsVisible:   row.IsVisible,
		SortOrder:   row.SortOrder,
		Items:       items,
		Facets:      &facets,
	})
}

func (s *Server) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req CollectionUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title, err := services.NormalizeRequired(req.Title, "Title is required")
	if mapServiceError(w, err) {
		return
	}
	collectionID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO collections (id, title, description, image, is_visible, sort_order, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
`, collectionID, title, req.Description, req.Image, boolOr(req.IsVisible, true), intOr(req.SortOrder, 0), now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if req.Items != nil {
		if err := services.ReplaceCollectionItems(s.DB, collectionID, req.Items); err != nil {
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"id": collectionID})
}

func (s *Server) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "collectionId")
	var req CollectionUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title, err := services.NormalizeRequired(req.Title, "Title is required")
	if mapServiceError(w, err) {
		return
	}
	result, err := s.DB.Exec(`
UPDATE collections
SET title = $2, description = $3, image = $4, is_visible = $5, sort_order = $6, updated_at = $7
WHERE id = $1
`, collectionID, title, req.Description, req.Image, boolOr(req.IsVisible, true), intOr(req.SortOrder, 0), time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if req.Items != nil {
		if err := services.ReplaceCollectionItems(s.DB, collectionID, req.Items); err != nil {
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}
	WriteJSON(w, http.StatusOK, map[string]string{"id": collectionID})
}

func (s *Server) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "collectionId")
	result, err := s.DB.Exec(`DELETE FROM collections WHERE id = $1`, collectionID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func intOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
