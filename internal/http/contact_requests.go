package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"gemaura-backend-go/internal/models"
	"gemaura-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ContactSubmitRequest struct {
	Salutation        *string                    `json:"salutation"`
	Phone             string                     `json:"phone" validate:"required"`
	Email             string                     `json:"email" validate:"required,email"`
	Subject           string                     `json:"subject" validate:"required"`
	Message           string                     `json:"message" validate:"required"`
	SelectedGemstones []services.ProductSnapshot `json:"selected_gemstones"`
	SelectedJewelry   []services.ProductSnapshot `json:"selected_jewelry"`
}

type ContactUpdateRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

type ContactRequestDTO struct {
	ID                string                     `json:"id"`
	Salutation        *string                    `json:"salutation"`
	Phone             string                     `json:"phone"`
	Email             string                     `json:"email"`
	Subject           string                     `json:"subject"`
	Message           string                     `json:"message"`
	SelectedGemstones []services.ProductSnapshot `json:"selected_gemstones"`
	SelectedJewelry   []services.ProductSnapshot `json:"selected_jewelry"`
	Status            string                     `json:"status"`
	AdminNotes        *string                    `json:"admin_notes"`
	CreatedAt         string                     `json:"created_at"`
}

const contactSelect = `
SELECT id, salutation, phone, email, subject, message,
       selected_gemstones, selected_jewelry, status, admin_notes, created_at
FROM contact_requests
`

func contactDTO(row models.ContactRequest) ContactRequestDTO {
	return ContactRequestDTO{
		ID:                row.ID,
		Salutation:        row.Salutation,
		Phone:             row.Phone,
		Email:             row.Email,
		Subject:           row.Subject,
		Message:           row.Message,
		SelectedGemstones: services.ParseSnapshots(row.SelectedGemstones),
		SelectedJewelry:   services.ParseSnapshots(row.SelectedJewelry),
		Status:            row.Status,
		AdminNotes:        row.AdminNotes,
		CreatedAt:         row.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// SubmitContactRequest is the public intake endpoint. The response is sent as
// soon as the row is durably written; the admin notification email runs on
// its own goroutine and its failure never surfaces to the submitter.
func (s *Server) SubmitContactRequest(w http.ResponseWriter, r *http.Request) {
	var req ContactSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if err := s.Validate.Struct(req); err != nil {
		WriteFieldErrors(w, validationFields(err))
		return
	}
	requestID := uuid.NewString()
	_, err := s.DB.Exec(`
INSERT INTO contact_requests (id, salutation, phone, email, subject, message,
                              selected_gemstones, selected_jewelry, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'new',$9)
`, requestID, req.Salutation, req.Phone, req.Email, req.Subject, req.Message,
		services.EncodeSnapshots(req.SelectedGemstones), services.EncodeSnapshots(req.SelectedJewelry),
		time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	go s.Mailer.NotifyContactRequest(requestID, req.Subject, req.Email, req.Phone)
	WriteJSON(w, http.StatusCreated, map[string]string{"id": requestID})
}

func (s *Server) ListContactRequests(w http.ResponseWriter, r *http.Request) {
	rows := []models.ContactRequest{}
	if err := s.DB.Select(&rows, contactSelect+`ORDER BY created_at DESC`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]ContactRequestDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, contactDTO(row))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) GetContactRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	row := models.ContactRequest{}
	if err := s.DB.Get(&row, contactSelect+`WHERE id = $1`, requestID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	WriteJSON(w, http.StatusOK, contactDTO(row))
}

func (s *Server) UpdateContactRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	var req ContactUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	row := models.ContactRequest{}
	if err := s.DB.Get(&row, contactSelect+`WHERE id = $1`, requestID); err != nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	status := row.Status
	if req.Status != nil {
		candidate := strings.ToLower(strings.TrimSpace(*req.Status))
		if !services.ValidContactStatus(candidate) {
			WriteError(w, http.StatusBadRequest, "Status must be one of: new, contacted, completed")
			return
		}
		status = candidate
	}
	notes := row.AdminNotes
	if req.AdminNotes != nil {
		notes = req.AdminNotes
	}
	if _, err := s.DB.Exec(`UPDATE contact_requests SET status = $2, admin_notes = $3 WHERE id = $1`,
		requestID, status, notes); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	row.Status = status
	row.AdminNotes = notes
	WriteJSON(w, http.StatusOK, contactDTO(row))
}

func (s *Server) DeleteContactRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	result, err := s.DB.Exec(`DELETE FROM contact_requests WHERE id = $1`, requestID)
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

func validationFields(err error) map[string]string {
	fields := map[string]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			name := strings.ToLower(verr.Field())
			switch verr.Tag() {
			case "email":
				fields[name] = "Must be a valid email address"
			default:
				fields[name] = "This field is required"
			}
		}
	}
	return fields
}
