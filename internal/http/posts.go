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

type PostDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Excerpt     *string `json:"excerpt"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
	IsPublished bool    `json:"is_published"`
	PublishedAt *string `json:"published_at"`
	CreatedAt   string  `json:"created_at"`
}

type PostUpsertRequest struct {
	Title       string  `json:"title"`
	Excerpt     *string `json:"excerpt"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
	IsPublished *bool   `json:"is_published"`
}

const postSelect = `
SELECT id, title, slug, excerpt, content, image, is_published, published_at, created_at
FROM posts
`

func postDTO(row models.Post) PostDTO {
	var published *string
	if row.PublishedAt != nil {
		formatted := row.PublishedAt.UTC().Format(time.RFC3339)
		published = &formatted
	}
	return PostDTO{
		ID:          row.ID,
		Title:       row.Title,
		Slug:        row.Slug,
		Excerpt:     row.Excerpt,
		Content:     row.Content,
		Image:       row.Image,
		IsPublished: row.IsPublished,
		PublishedAt: published,
		CreatedAt:   row.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	rows := []models.Post{}
	if err := s.DB.Select(&rows, postSelect+`ORDER BY created_at DESC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]PostDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, postDTO(row))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	row := models.Post{}
	if err := s.DB.Get(&row, postSelect+`WHERE id = $1`, postID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	WriteJSON(w, http.StatusOK, postDTO(row))
}

func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req PostUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title, err := services.NormalizeRequired(req.Title, "Title is required")
	if mapServiceError(w, err) {
		return
	}
	postID := uuid.NewString()
	slug, err := services.ResolveSlug(s.DB, "posts", title, postID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	now := time.Now().UTC()
	published := boolOr(req.IsPublished, false)
	var publishedAt *time.Time
	if published {
		publishedAt = &now
	}
	_, err = s.DB.Exec(`
INSERT INTO posts (id, title, slug, excerpt, content, image, is_published, published_at, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
`, postID, title, slug, req.Excerpt, req.Content, req.Image, published, publishedAt, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"id": postID, "slug": slug})
}

func (s *Server) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	var req PostUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title, err := services.NormalizeRequired(req.Title, "Title is required")
	if mapServiceError(w, err) {
		return
	}
	row := models.Post{}
	if err := s.DB.Get(&row, postSelect+`WHERE id = $1`, postID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	slug, err := services.ResolveSlug(s.DB, "posts", title, postID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	now := time.Now().UTC()
	published := boolOr(req.IsPublished, row.IsPublished)
	publishedAt := row.PublishedAt
	if published && publishedAt == nil {
		publishedAt = &now
	}
	_, err = s.DB.Exec(`
UPDATE posts
SET title = $2, slug = $3, excerpt = $4, content = $5, image = $6,
    is_published = $7, published_at = $8, updated_at = $9
WHERE id = $1
`, postID, title, slug, req.Excerpt, req.Content, req.Image, published, publishedAt, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"id": postID, "slug": slug})
}

func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	result, err := s.DB.Exec(`DELETE FROM posts WHERE id = $1`, postID)
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
