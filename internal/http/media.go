package httpapi

import (
	"net/http"
	"path/filepath"

	"gemaura-backend-go/internal/models"
	"gemaura-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

// Upload accepts a multipart `file`, stores it on local disk and answers
// with the {url, public_id} pair galleries reference.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		WriteError(w, http.StatusBadRequest, "Uploaded file is empty")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Uploaded file is empty")
		return
	}
	defer file.Close()
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	assetID, url, err := services.SaveMediaAsset(s.DB, s.Config.MediaStoragePath, contentType, header.Filename, file)
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"url": url, "public_id": assetID})
}

func (s *Server) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetId")
	if err := services.DeleteAsset(s.DB, s.Config.MediaStoragePath, assetID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) MediaContent(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetId")
	row := models.MediaAsset{}
	if err := s.DB.Get(&row, `SELECT storage_key, filename, content_type FROM media_assets WHERE id = $1`, assetID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if row.Filename != nil {
		w.Header().Set("Content-Disposition", "inline; filename=\""+*row.Filename+"\"")
	}
	if row.ContentType != "" {
		w.Header().Set("Content-Type", row.ContentType)
	}
	http.ServeFile(w, r, filepath.Join(s.Config.MediaStoragePath, row.StorageKey))
}
