package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"gemaura-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type GemstoneDTO struct {
	ID           string                  `json:"id"`
	Title        string                  `json:"title"`
	Description  *string                 `json:"description"`
	Price        *string                 `json:"price"`
	CategoryID   *string                 `json:"category_id"`
	CategoryName *string                 `json:"category_name"`
	WeightCarats *string                 `json:"weight_carats"`
	Dimensions   *string                 `json:"dimensions"`
	Color        *string                 `json:"color"`
	Clarity      *string                 `json:"clarity"`
	Cut          *string                 `json:"cut"`
	Origin       *string                 `json:"origin"`
	Image        *string                 `json:"image"`
	IsVisible    bool                    `json:"is_visible"`
	Gallery      []services.GalleryEntry `json:"gallery"`
	CreatedAt    string                  `json:"created_at"`
}

type GemstoneUpsertRequest struct {
	Title        string                  `json:"title"`
	Description  *string                 `json:"description"`
	Price        *string                 `json:"price"`
	CategoryID   *string                 `json:"category_id"`
	WeightCarats *string                 `json:"weight_carats"`
	Dimensions   *string                 `json:"dimensions"`
	Color        *string                 `json:"color"`
	Clarity      *string                 `json:"clarity"`
	Cut          *string                 `json:"cut"`
	Origin       *string                 `json:"origin"`
	Image        *string                 `json:"image"`
	IsVisible    *bool                   `json:"is_visible"`
	Gallery      []services.GalleryEntry `json:"gallery"`
}

type gemstoneRow struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	Description  *string   `db:"description"`
	Price        *string   `db:"price"`
	CategoryID   *string   `db:"category_id"`
	CategoryName *string   `db:"category_name"`
	WeightCarats *string   `db:"weight_carats"`
	Dimensions   *string   `db:"dimensions"`
	Color        *string   `db:"color"`
	Clarity      *string   `db:"clarity"`
	Cut          *string   `db:"cut"`
	Origin       *string   `db:"origin"`
	Image        *string   `db:"image"`
	IsVisible    bool      `db:"is_visible"`
	CreatedAt    time.Time `db:"created_at"`
}

const gemstoneSelect = `
SELECT g.id, g.title, g.description, g.price, g.category_id, c.name AS category_name,
       g.weight_carats, g.dimensions, g.color, g.clarity, g.cut, g.origin,
       g.image, g.is_visible, g.created_at
FROM gemstones g
LEFT JOIN gemstone_categories c ON c.id = g.category_id
`

func gemstoneDTO(row gemstoneRow) GemstoneDTO {
	return GemstoneDTO{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		Price:        row.Price,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		WeightCarats: row.WeightCarats,
		Dimensions:   row.Dimensions,
		Color:        row.Color,
		Clarity:      row.Clarity,
		Cut:          row.Cut,
		Origin:       row.Origin,
		Image:        row.Image,
		IsVisible:    row.IsVisible,
		Gallery:      []services.GalleryEntry{},
		CreatedAt:    row.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) ListGemstones(w http.ResponseWriter, r *http.Request) {
	rows := []gemstoneRow{}
	if err := s.DB.Select(&rows, gemstoneSelect+`ORDER BY g.created_at DESC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]GemstoneDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, gemstoneDTO(row))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) GetGemstone(w http.ResponseWriter, r *http.Request) {
	gemstoneID := chi.URLParam(r, "gemstoneId")
	row := gemstoneRow{}
	if err := s.DB.Get(&row, gemstoneSelect+`WHERE g.id = $1`, gemstoneID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	gallery, err := services.FetchGallery(s.DB, "gemstone_images", "gemstone_id", gemstoneID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	dto := gemstoneDTO(row)
	dto.Gallery = gallery
	WriteJSON(w, http.StatusOK, dto)
}

func (s *Server) CreateGemstone(w http.ResponseWriter, r *http.Request) {
	var req GemstoneUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title, err := services.NormalizeRequired(req.Title, "Title is required")
	if mapServiceError(w, err) {
		return
	}
	gemstoneID := uuid.NewString()
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO gemstones (id, title, description, price, category_id, weight_carats, dimensions,
                       color, clarity, cut, origin, image, is_visible, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$14)
`, gemstoneID, title, req.Description, req.Price, req.CategoryID, req.WeightCarats, req.Dimensions,
		req.Color, req.Clarity, req.Cut, req.Origin, req.Image, boolOr(req.IsVisible, true), now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if req.Gallery != nil {
		if err := services.ReplaceGallery(s.DB, "gemstone_images", "gemstone_id", gemstoneID, req.Gallery); err != nil {
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"id": gemstoneID})
}

func (s *Server) UpdateGemstone(w http.ResponseWriter, r *http.Request) {
	gemstoneID := chi.URLParam(r, "gemstoneId")
	var req GemstoneUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title, err := services.NormalizeRequired(req.Title, "Title is required")
	if mapServiceError(w, err) {
		return
	}
	result, err := s.DB.Exec(`
UPDATE gemstones
SET title = $2, description = $3, price = $4, category_id = $5, weight_carats = $6,
    dimensions = $7, color = $8, clarity = $9, cut = $10, origin = $11, image = $12,
    is_visible = $13, updated_at = $14
WHERE id = $1
`, gemstoneID, title, req.Description, req.Price, req.CategoryID, req.WeightCarats,
		req.Dimensions, req.Color, req.Clarity, req.Cut, req.Origin, req.Image,
		boolOr(req.IsVisible, true), time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if req.Gallery != nil {
		if err := services.ReplaceGallery(s.DB, "gemstone_images", "gemstone_id", gemstoneID, req.Gallery); err != nil {
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}
	WriteJSON(w, http.StatusOK, map[string]string{"id": gemstoneID})
}

// DeleteGemstone relies on the schema's ON DELETE CASCADE for gallery and
// collection-membership rows.
func (s *Server) DeleteGemstone(w http.ResponseWriter, r *http.Request) {
	gemstoneID := chi.URLParam(r, "gemstoneId")
	result, err := s.DB.Exec(`DELETE FROM gemstones WHERE id = $1`, gemstoneID)
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

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
