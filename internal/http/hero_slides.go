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

type HeroSlideDTO struct {
	ID        string  `json:"id"`
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	Image     string  `json:"image"`
	LinkURL   *string `json:"link_url"`
	SortOrder int     `json:"sort_order"`
	IsVisible bool    `json:"is_visible"`
}

type HeroSlideUpsertRequest struct {
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	Image     string  `json:"image"`
	LinkURL   *string `json:"link_url"`
	SortOrder *int    `json:"sort_order"`
	IsVisible *bool   `json:"is_visible"`
}

func heroSlideDTO(row models.HeroSlide) HeroSlideDTO {
	return HeroSlideDTO{
		ID:        row.ID,
		Title:     row.Title,
		Subtitle:  row.Subtitle,
		Image:     row.Image,
		LinkURL:   row.LinkURL,
		SortOrder: row.SortOrder,
		IsVisible: row.IsVisible,
	}
}

func (s *Server) ListHeroSlides(w http.ResponseWriter, r *http.Request) {
	rows := []models.HeroSlide{}
	if err := s.DB.Select(&rows, `
SELECT id, title, subtitle, image, link_url, sort_order, is_visible
FROM hero_slides
ORDER BY sort_order ASC
`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]HeroSlideDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, heroSlideDTO(row))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) CreateHeroSlide(w http.ResponseWriter, r *http.Request) {
	var req HeroSlideUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	image, err := services.NormalizeRequired(req.Image, "Image is required")
	if mapServiceError(w, err) {
		return
	}
	slideID := uuid.NewString()
	_, err = s.DB.Exec(`
INSERT INTO hero_slides (id, title, subtitle, image, link_url, sort_order, is_visible, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, slideID, req.Title, req.Subtitle, image, req.LinkURL, intOr(req.SortOrder, 0), boolOr(req.IsVisible, true), time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"id": slideID})
}

func (s *Server) UpdateHeroSlide(w http.ResponseWriter, r *http.Request) {
	slideID := chi.URLParam(r, "slideId")
	var req HeroSlideUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	image, err := services.NormalizeRequired(req.Image, "Image is required")
	if mapServiceError(w, err) {
		return
	}
	result, err := s.DB.Exec(`
UPDATE hero_slides
SET title = $2, subtitle = $3, image = $4, link_url = $5, sort_order = $6, is_visible = $7
WHERE id = $1
`, slideID, req.Title, req.Subtitle, image, req.LinkURL, intOr(req.SortOrder, 0), boolOr(req.IsVisible, true))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"id": slideID})
}

func (s *Server) DeleteHeroSlide(w http.ResponseWriter, r *http.Request) {
	slideID := chi.URLParam(r, "slideId")
	result, err := s.DB.Exec(`DELETE FROM hero_slides WHERE id = $1`, slideID)
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
