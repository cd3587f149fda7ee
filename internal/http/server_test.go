package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gemaura-backend-go/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	notified chan string
}

func (m *stubMailer) NotifyContactRequest(requestID, subject, email, phone string) {
	m.notified <- requestID
}

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock, *stubMailer) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	cfg := config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "gemaura",
		SessionTTLSeconds: 3600,
		CookieName:        "token",
		LoginRateLimit:    3,
		LoginRateWindow:   time.Minute,
		ContactRateLimit:  10,
		ContactRateWindow: time.Minute,
	}
	s := NewServer(sqlx.NewDb(mockDB, "pgx"), cfg)
	mailer := &stubMailer{notified: make(chan string, 8)}
	s.Mailer = mailer
	return s, mock, mailer
}

func authCookie(t *testing.T, s *Server) *http.Cookie {
	t.Helper()
	token, _, err := s.Tokens.CreateSessionToken("user-1", "admin", "admin")
	require.NoError(t, err)
	return &http.Cookie{Name: s.Config.CookieName, Value: token}
}

func doRequest(s *Server, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}
