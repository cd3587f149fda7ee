package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"gemaura-backend-go/internal/models"
)

const invalidCredentials = "Invalid credentials"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := s.Validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	row := models.AdminUser{}
	err := s.DB.Get(&row, `
SELECT id, username, email, password_hash, role, is_active
FROM admin_users
WHERE username = $1
`, req.Username)
	if err != nil {
		// Burn a compare so a missing row costs as much as a mismatch.
		s.Tokens.BurnCompare(req.Password)
		WriteError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if !s.Tokens.VerifyPassword(req.Password, row.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if !row.IsActive {
		WriteError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	_, _ = s.DB.Exec(`UPDATE admin_users SET last_login_at = $1 WHERE id = $2`, time.Now().UTC(), row.ID)
	token, _, err := s.Tokens.CreateSessionToken(row.ID, row.Username, row.Role)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.setSessionCookie(w, token)
	WriteJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    UserDTO{ID: row.ID, Username: row.Username, Email: row.Email, Role: row.Role},
	})
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	row := models.AdminUser{}
	if err := s.DB.Get(&row, `SELECT id, username, email, role FROM admin_users WHERE id = $1`, CurrentUserID(r)); err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]UserDTO{"user": {ID: row.ID, Username: row.Username, Email: row.Email, Role: row.Role}})
}

// Logout clears the cookie. The token itself stays cryptographically valid
// until expiry; there is no server-side revocation list.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if len(req.NewPassword) < 6 {
		WriteError(w, http.StatusBadRequest, "New password must be at least 6 characters")
		return
	}
	userID := CurrentUserID(r)
	var hash string
	if err := s.DB.Get(&hash, `SELECT password_hash FROM admin_users WHERE id = $1`, userID); err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if !s.Tokens.VerifyPassword(req.CurrentPassword, hash) {
		WriteError(w, http.StatusUnauthorized, "Current password incorrect")
		return
	}
	newHash, err := s.Tokens.HashPassword(req.NewPassword)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if _, err := s.DB.Exec(`UPDATE admin_users SET password_hash = $1 WHERE id = $2`, newHash, userID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Config.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.Config.SessionTTLSeconds),
		HttpOnly: true,
		Secure:   s.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
