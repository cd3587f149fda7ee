package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSubmitContactRequest(t *testing.T) {
	s, mock, mailer := newTestServer(t)

	mock.ExpectExec("INSERT INTO contact_requests").
		WithArgs(sqlmock.AnyArg(), nil, "+37360123456", "maria@example.com", "Ring inquiry", "Interested in the gold ring.",
			[]byte(`[{"id":"g1","title":"Ruby","price":"1200"}]`), []byte(`[]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{
		"phone": "  +37360123456 ",
		"email": "maria@example.com",
		"subject": "Ring inquiry",
		"message": "Interested in the gold ring.",
		"selected_gemstones": [{"id":"g1","title":"Ruby","price":"1200"}]
	}`
	rec := doRequest(s, http.MethodPost, "/api/contact-requests", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["id"])

	select {
	case requestID := <-mailer.notified:
		require.Equal(t, resp["id"], requestID)
	case <-time.After(time.Second):
		t.Fatal("notification was never dispatched")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitContactRequestValidation(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/contact-requests",
		`{"phone":"","email":"not-an-email","subject":"Hi","message":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Validation failed", resp.Message)
	require.Equal(t, "This field is required", resp.Fields["phone"])
	require.Equal(t, "Must be a valid email address", resp.Fields["email"])
	require.Equal(t, "This field is required", resp.Fields["message"])
	require.NotContains(t, resp.Fields, "subject")
}

func contactRows(selectedGemstones, selectedJewelry []byte) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "salutation", "phone", "email", "subject", "message",
		"selected_gemstones", "selected_jewelry", "status", "admin_notes", "created_at",
	}).AddRow("req-1", nil, "+37360123456", "maria@example.com", "Ring inquiry", "Hello",
		selectedGemstones, selectedJewelry, "new", nil, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
}

func TestGetContactRequestParsesStoredSnapshots(t *testing.T) {
	s, mock, _ := newTestServer(t)

	// Older rows can hold the array doubly encoded; reads must cope.
	doubleEncoded := []byte(`"[{\"id\":\"g1\",\"title\":\"Ruby\",\"price\":\"1200\"}]"`)
	mock.ExpectQuery("FROM contact_requests WHERE id").WithArgs("req-1").
		WillReturnRows(contactRows(doubleEncoded, []byte(`[]`)))

	rec := doRequest(s, http.MethodGet, "/api/contact-requests/req-1", "", authCookie(t, s))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ContactRequestDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "new", resp.Status)
	require.Len(t, resp.SelectedGemstones, 1)
	require.Equal(t, "Ruby", resp.SelectedGemstones[0].Title)
	require.Empty(t, resp.SelectedJewelry)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContactRequestRejectsUnknownStatus(t *testing.T) {
	s, mock, _ := newTestServer(t)
	mock.ExpectQuery("FROM contact_requests WHERE id").WithArgs("req-1").
		WillReturnRows(contactRows([]byte(`[]`), []byte(`[]`)))

	rec := doRequest(s, http.MethodPut, "/api/contact-requests/req-1",
		`{"status":"archived"}`, authCookie(t, s))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Status must be one of: new, contacted, completed", resp.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContactRequestStatusAndNotes(t *testing.T) {
	s, mock, _ := newTestServer(t)
	mock.ExpectQuery("FROM contact_requests WHERE id").WithArgs("req-1").
		WillReturnRows(contactRows([]byte(`[]`), []byte(`[]`)))
	mock.ExpectExec("UPDATE contact_requests SET status").
		WithArgs("req-1", "contacted", "called back on Friday").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doRequest(s, http.MethodPut, "/api/contact-requests/req-1",
		`{"status":" Contacted ","admin_notes":"called back on Friday"}`, authCookie(t, s))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ContactRequestDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "contacted", resp.Status)
	require.NotNil(t, resp.AdminNotes)
	require.Equal(t, "called back on Friday", *resp.AdminNotes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRequestListRequiresAuth(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/api/contact-requests", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
