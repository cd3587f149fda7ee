package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"gemaura-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CategoryDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CategoryUpsertRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type categoryRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
}

func (s *Server) listCategories(w http.ResponseWriter, table string) {
	rows := []categoryRow{}
	if err := s.DB.Select(&rows, `SELECT id, name, description FROM `+table+` ORDER BY name ASC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, CategoryDTO{ID: row.ID, Name: row.Name, Description: row.Description})
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request, table string) {
	var req CategoryUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	name, err := services.NormalizeRequired(req.Name, "Category name is required")
	if mapServiceError(w, err) {
		return
	}
	categoryID := uuid.NewString()
	_, err = s.DB.Exec(`INSERT INTO `+table+` (id, name, description, created_at) VALUES ($1,$2,$3,$4)`,
		categoryID, name, req.Description, time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, CategoryDTO{ID: categoryID, Name: name, Description: req.Description})
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request, table string) {
	categoryID := chi.URLParam(r, "categoryId")
	var req CategoryUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	name, err := services.NormalizeRequired(req.Name, "Category name is required")
	if mapServiceError(w, err) {
		return
	}
	result, err := s.DB.Exec(`UPDATE `+table+` SET name = $2, description = $3 WHERE id = $1`,
		categoryID, name, req.Description)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	WriteJSON(w, http.StatusOK, CategoryDTO{ID: categoryID, Name: name, Description: req.Description})
}

// deleteCategory refuses to remove a category that products still reference.
func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request, table, productTable string) {
	categoryID := chi.URLParam(r, "categoryId")
	var exists bool
	_ = s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM `+table+` WHERE id = $1)`, categoryID)
	if !exists {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	var hasProducts bool
	_ = s.DB.Get(&hasProducts, `SELECT EXISTS(SELECT 1 FROM `+productTable+` WHERE category_id = $1)`, categoryID)
	if hasProducts {
		WriteError(w, http.StatusBadRequest, "Category is still referenced by products")
		return
	}
	_, _ = s.DB.Exec(`DELETE FROM `+table+` WHERE id = $1`, categoryID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListGemstoneCategories(w http.ResponseWriter, r *http.Request) {
	s.listCategories(w, "gemstone_categories")
}

func (s *Server) CreateGemstoneCategory(w http.ResponseWriter, r *http.Request) {
	s.createCategory(w, r, "gemstone_categories")
}

func (s *Server) UpdateGemstoneCategory(w http.ResponseWriter, r *http.Request) {
	s.updateCategory(w, r, "gemstone_categories")
}

func (s *Server) DeleteGemstoneCategory(w http.ResponseWriter, r *http.Request) {
	s.deleteCategory(w, r, "gemstone_categories", "gemstones")
}

func (s *Server) ListJewelryCategories(w http.ResponseWriter, r *http.Request) {
	s.listCategories(w, "jewelry_categories")
}

func (s *Server) CreateJewelryCategory(w http.ResponseWriter, r *http.Request) {
	s.createCategory(w, r, "jewelry_categories")
}

func (s *Server) UpdateJewelryCategory(w http.ResponseWriter, r *http.Request) {
	s.updateCategory(w, r, "jewelry_categories")
}

func (s *Server) DeleteJewelryCategory(w http.ResponseWriter, r *http.Request) {
	s.deleteCategory(w, r, "jewelry_categories", "jewelry_items")
}
