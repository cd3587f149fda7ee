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

type PageDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Content     *string `json:"content"`
	IsPublished bool    `json:"is_published"`
	CreatedAt   string  `json:"created_at"`
}

type PageUpsertRequest struct {
	Title       string  `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

const pageSelect = `
SELECT id, title, slug, content, is_published, created_at
FROM pages
`

func pageDTO(row models.Page) PageDTO {
	return PageDTO{
		ID:          row.ID,
		Title:       row.Title,
		Slug:        row.Slug,
		Content:     row.Content,
		IsPublished: row.IsPublished,
		CreatedAt:   row.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListPages is admin-only; the storefront uses PublicPages and GetPageBySlug.
// The asymmetry is intentional: drafts must not leak through the full list.
func (s *Server) ListPages(w http.ResponseWriter, r *http.Request) {
	rows := []models.Page{}
	if err := s.DB.Select(&rows, pageSelect+`ORDER BY title ASC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]PageDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, pageDTO(row))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) PublicPages(w http.ResponseWriter, r *http.Request) {
	rows := []models.Page{}
	if err := s.DB.Select(&rows, pageSelect+`WHERE is_published = TRUE ORDER BY title ASC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]PageDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, pageDTO(row))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageId")
	row := models.Page{}
	if err := s.DB.Get(&row, pageSelect+`WHERE id = $1`, pageID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	WriteJSON(w, http.StatusOK, pageDTO(row))
}

func (s *Server) GetPageBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	row := models.Page{}
	if err := s.DB.Get(&row, pageSelect+`WHERE slug = $1 AND is_published = TRUE`, slug); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	WriteJSON(w, http.StatusOK, pageDTO(row))
}

func (s *Server) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req PageUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title, err := services.NormalizeRequired(req.Title, "Title is required")
	if mapServiceError(w, err) {
		return
	}
	pageID := uuid.NewString()
	slug, err := services.ResolveSlug(s.DB, "pages", title, pageID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	now := time.Now().UTC()
	_, err = s.DB.Exec(`
INSERT INTO pages (id, title, slug, content, is_published, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$6)
`, pageID, title, slug, req.Content, boolOr(req.IsPublished, false), now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"id": pageID, "slug": slug})
}

func (s *Server) UpdatePage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageId")
	var req PageUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title, err := services.NormalizeRequired(req.Title, "Title is required")
	if mapServiceError(w, err) {
		return
	}
	row := models.Page{}
	if err := s.DB.Get(&row, pageSelect+`WHERE id = $1`, pageID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	slug, err := services.ResolveSlug(s.DB, "pages", title, pageID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	_, err = s.DB.Exec(`
UPDATE pages
SET title = $2, slug = $3, content = $4, is_published = $5, updated_at = $6
WHERE id = $1
`, pageID, title, slug, req.Content, boolOr(req.IsPublished, row.IsPublished), time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"id": pageID, "slug": slug})
}

func (s *Server) DeletePage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageId")
	result, err := s.DB.Exec(`DELETE FROM pages WHERE id = $1`, pageID)
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
