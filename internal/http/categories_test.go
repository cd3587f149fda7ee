package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func boolRows(value bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"exists"}).AddRow(value)
}

func TestDeleteCategoryStillReferenced(t *testing.T) {
	s, mock, _ := newTestServer(t)
	mock.ExpectQuery("SELECT EXISTS").WithArgs("cat-1").WillReturnRows(boolRows(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("cat-1").WillReturnRows(boolRows(true))

	rec := doRequest(s, http.MethodDelete, "/api/gemstone-categories/cat-1", "", authCookie(t, s))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Category is still referenced by products", resp.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategoryUnreferenced(t *testing.T) {
	s, mock, _ := newTestServer(t)
	mock.ExpectQuery("SELECT EXISTS").WithArgs("cat-1").WillReturnRows(boolRows(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("cat-1").WillReturnRows(boolRows(false))
	mock.ExpectExec("DELETE FROM jewelry_categories").WithArgs("cat-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doRequest(s, http.MethodDelete, "/api/jewelry-categories/cat-1", "", authCookie(t, s))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategoryNotFound(t *testing.T) {
	s, mock, _ := newTestServer(t)
	mock.ExpectQuery("SELECT EXISTS").WithArgs("ghost").WillReturnRows(boolRows(false))

	rec := doRequest(s, http.MethodDelete, "/api/gemstone-categories/ghost", "", authCookie(t, s))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategoryRequiresName(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := doRequest(s, http.MethodPost, "/api/gemstone-categories", `{"name":"   "}`, authCookie(t, s))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCategory(t *testing.T) {
	s, mock, _ := newTestServer(t)
	mock.ExpectExec("INSERT INTO gemstone_categories").
		WithArgs(sqlmock.AnyArg(), "Corundum", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doRequest(s, http.MethodPost, "/api/gemstone-categories", `{"name":" Corundum "}`, authCookie(t, s))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CategoryDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Corundum", resp.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryMutationsRequireAuth(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := doRequest(s, http.MethodPost, "/api/gemstone-categories", `{"name":"Corundum"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
