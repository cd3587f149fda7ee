package services

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func EnsureStoragePath(base string) (string, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return "", err
	}
	return base, nil
}

// SaveMediaAsset writes an uploaded file to local disk and records it. The
// returned id doubles as the public_id clients reference in galleries.
func SaveMediaAsset(db *sqlx.DB, basePath, contentType, filename string, body io.Reader) (string, string, error) {
	assetID := uuid.NewString()
	storageKey := assetID
	dir, err := EnsureStoragePath(basePath)
	if err != nil {
		return "", "", err
	}
	targetPath := filepath.Join(dir, storageKey)

	file, err := os.Create(targetPath)
	if err != nil {
		return "", "", err
	}
	size, err := io.Copy(file, body)
	_ = file.Close()
	if err != nil {
		return "", "", err
	}
	if size == 0 {
		_ = os.Remove(targetPath)
		return "", "", ErrBadRequest("Uploaded file is empty")
	}

	_, err = db.Exec(`
INSERT INTO media_assets (id, filename, content_type, size_bytes, storage_key, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, assetID, filename, contentType, size, storageKey, time.Now().UTC())
	if err != nil {
		_ = os.Remove(targetPath)
		return "", "", err
	}
	return assetID, BuildAssetURL(assetID), nil
}

func BuildAssetURL(assetID string) string {
	return "/media/assets/" + assetID + "/content"
}

func DeleteAsset(db *sqlx.DB, basePath, assetID string) error {
	var storageKey string
	if err := db.Get(&storageKey, `SELECT storage_key FROM media_assets WHERE id = $1`, assetID); err != nil {
		return nil
	}
	_, _ = db.Exec(`DELETE FROM media_assets WHERE id = $1`, assetID)
	_ = os.Remove(filepath.Join(basePath, storageKey))
	return nil
}
