package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gemaura-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CompositionEntry struct {
	CategoryID   string `json:"category_id" db:"id"`
	CategoryName string `json:"category_name" db:"name"`
}

type JewelryDTO struct {
	ID           string                  `json:"id"`
	Title        string                  `json:"title"`
	Description  *string                 `json:"description"`
	Price        *string                 `json:"price"`
	CategoryID   *string                 `json:"category_id"`
	CategoryName *string                 `json:"category_name"`
	Image        *string                 `json:"image"`
	IsVisible    bool                    `json:"is_visible"`
	Composition  []CompositionEntry      `json:"composition"`
	Gallery      []services.GalleryEntry `json:"gallery"`
	CreatedAt    string                  `json:"created_at"`
}

type JewelryUpsertRequest struct {
	Title       string                  `json:"title"`
	Description *string                 `json:"description"`
	Price       *string                 `json:"price"`
	CategoryID  *string                 `json:"category_id"`
	Image       *string                 `json:"image"`
	IsVisible   *bool                   `json:"is_visible"`
	Composition []string                `json:"composition"`
	Gallery     []services.GalleryEntry `json:"gallery"`
}

type jewelryRow struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	Description  *string   `db:"description"`
	Price        *string   `db:"price"`
	CategoryID   *string   `db:"category_id"`
	CategoryName *string   `db:"category_name"`
	Image        *string   `db:"image"`
	IsVisible    bool      `db:"is_visible"`
	CreatedAt    time.Time `db:"created_at"`
}

const jewelrySelect = `
SELECT j.id, j.title, j.description, j.price, j.category_id, c.name AS category_name,
       j.image, j.is_visible, j.created_at
FROM jewelry_items j
LEFT JOIN jewelry_categories c ON c.id = j.category_id
`

// fetchComposition resolves the gemstone-type set for one jewelry row. The
// list endpoint calls this per returned row; not batched, the catalog is
// small. A failed lookup degrades to an empty set rather than failing the
// whole aggregate, but it is logged.
func (s *Server) fetchComposition(jewelryID string) []CompositionEntry {
	rows := []CompositionEntry{}
	if err := s.DB.Select(&rows, `
SELECT gc.id, gc.name
FROM jewelry_gemstone_compositions comp
JOIN gemstone_categories gc ON gc.id = comp.gemstone_category_id
WHERE comp.jewelry_id = $1
ORDER BY gc.name ASC
`, jewelryID); err != nil {
		log.Printf("jewelry %s: load composition: %v", jewelryID, err)
		return []CompositionEntry{}
	}
	return rows
}

func (s *Server) jewelryDTO(row jewelryRow) JewelryDTO {
	return JewelryDTO{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		Price:        row.Price,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		Image:        row.Image,
		IsVisible:    row.IsVisible,
		Composition:  s.fetchComposition(row.ID),
		Gallery:      []services.GalleryEntry{},
		CreatedAt:    row.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) ListJewelry(w http.ResponseWriter, r *http.Request) {
	rows := []jewelryRow{}
	if err := s.DB.Select(&rows, jewelrySelect+`ORDER BY j.created_at DESC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]JewelryDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, s.jewelryDTO(row))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) GetJewelry(w http.ResponseWriter, r *http.Request) {
	jewelryID := chi.URLParam(r, "jewelryId")
	row := jewelryRow{}
	if err := s.DB.Get(&row, jewelrySelect+`WHERE j.id = $1`, jewelryID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	gallery, err := services.FetchGallery(s.DB, "jewelry_images", "jewelry_id", jewelryID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	dto := s.jewelryDTO(row)
	dto.Gallery = gallery
	WriteJSON(w, http.StatusOK, dto)
}

func (s *Server) CreateJewelry(w http.ResponseWriter, r *http.Request) {
	var req JewelryUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title, err := services.NormalizeRequired(req.Title, "Title is required")
	if mapServiceError(w, err) {
		return
	}
	jewelryID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO jewelry_items (id, title, description, price, category_id, image, is_visible, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
`, jewelryID, title, req.Description, req.Price, req.CategoryID, req.Image, boolOr(req.IsVisible, true), now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := s.saveJewelryChildren(jewelryID, req); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"id": jewelryID})
}

func (s *Server) UpdateJewelry(w http.ResponseWriter, r *http.Request) {
	jewelryID := chi.URLParam(r, "jewelryId")
	var req JewelryUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title, err := services.NormalizeRequired(req.Title, "Title is required")
	if mapServiceError(w, err) {
		return
	}
	result, err := s.DB.Exec(`
UPDATE jewelry_items
SET title = $2, description = $3, price = $4, category_id = $5, image = $6, is_visible = $7, updated_at = $8
WHERE id = $1
`, jewelryID, title, req.Description, req.Price, req.CategoryID, req.Image, boolOr(req.IsVisible, true), time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if err := s.saveJewelryChildren(jewelryID, req); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"id": jewelryID})
}

func (s *Server) saveJewelryChildren(jewelryID string, req JewelryUpsertRequest) error {
	if req.Gallery != nil {
		if err := services.ReplaceGallery(s.DB, "jewelry_images", "jewelry_id", jewelryID, req.Gallery); err != nil {
			return err
		}
	}
	if req.Composition != nil {
		if err := services.ReplaceComposition(s.DB, jewelryID, req.Composition); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) DeleteJewelry(w http.ResponseWriter, r *http.Request) {
	jewelryID := chi.URLParam(r, "jewelryId")
	result, err := s.DB.Exec(`DELETE FROM jewelry_items WHERE id = $1`, jewelryID)
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
