package httpapi

import (
	"encoding/json"
	"net/http"

	"gemaura-backend-go/internal/services"
)

type SettingUpsert struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	IsPrivate bool   `json:"is_private"`
}

// PublicSettings serves the non-private key-value map consumed by the
// storefront on nearly every page load.
func (s *Server) PublicSettings(w http.ResponseWriter, r *http.Request) {
	values, err := services.PublicSettings(s.DB)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, values)
}

// UpsertSettings accepts either a single {key,value,is_private} object or an
// array of them, matching how the admin console saves setting groups.
func (s *Server) UpsertSettings(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	entries := []SettingUpsert{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		var single SettingUpsert
		if err := json.Unmarshal(raw, &single); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid payload")
			return
		}
		entries = append(entries, single)
	}
	if len(entries) == 0 {
		WriteError(w, http.StatusBadRequest, "No settings provided")
		return
	}
	for _, entry := range entries {
		if err := services.UpsertSetting(s.DB, entry.Key, entry.Value, entry.IsPrivate); err != nil {
			if mapServiceError(w, err) {
				return
			}
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Settings saved"})
}
