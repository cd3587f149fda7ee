package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeItemsCoalescesBothSides(t *testing.T) {
	rows := []collectionItemRow{
		{
			ID:          "ci-1",
			GemstoneID:  strPtr("g1"),
			SortOrder:   0,
			GemTitle:    strPtr("Ruby"),
			GemPrice:    strPtr("1200"),
			GemCategory: strPtr("Corundum"),
		},
		{
			ID:          "ci-2",
			JewelryID:   strPtr("j1"),
			SortOrder:   1,
			JewTitle:    strPtr("Gold Ring"),
			JewCategory: strPtr("Rings"),
		},
	}
	items := NormalizeItems(rows)
	require.Len(t, items, 2)
	require.Equal(t, ItemTypeGemstone, items[0].Type)
	require.Equal(t, "g1", items[0].ID)
	require.Equal(t, "Ruby", items[0].Title)
	require.Equal(t, ItemTypeJewelry, items[1].Type)
	require.Equal(t, "Gold Ring", items[1].Title)
}

func TestNormalizeItemsDropsDanglingRows(t *testing.T) {
	// A membership row whose product side joined to nothing is omitted.
	rows := []collectionItemRow{
		{ID: "ci-1", GemstoneID: strPtr("g1"), GemTitle: nil},
		{ID: "ci-2"},
	}
	require.Empty(t, NormalizeItems(rows))
}

func TestDeriveFacetsDeduplicatesPerType(t *testing.T) {
	corundum := strPtr("Corundum")
	rings := strPtr("Rings")
	items := []ResolvedItem{
		{ID: "g1", Type: ItemTypeGemstone, CategoryName: corundum},
		{ID: "g2", Type: ItemTypeGemstone, CategoryName: corundum},
		{ID: "g3", Type: ItemTypeGemstone, CategoryName: strPtr("Beryl")},
		{ID: "j1", Type: ItemTypeJewelry, CategoryName: rings},
		{ID: "j2", Type: ItemTypeJewelry, CategoryName: nil},
	}
	facets := DeriveFacets(items)
	require.Equal(t, []string{"Corundum", "Beryl"}, facets.GemstoneCategories)
	require.Equal(t, []string{"Rings"}, facets.JewelryCategories)
}

func TestDeriveFacetsEmptyInput(t *testing.T) {
	facets := DeriveFacets(nil)
	require.NotNil(t, facets.GemstoneCategories)
	require.NotNil(t, facets.JewelryCategories)
	require.Empty(t, facets.GemstoneCategories)
	require.Empty(t, facets.JewelryCategories)
}

func TestReplaceCollectionItemsSkipsMissingRefs(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "pgx")

	mock.ExpectQuery("SELECT EXISTS").WithArgs("g1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("j-missing").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM collection_items").WithArgs("col-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO collection_items").
		WithArgs(sqlmock.AnyArg(), "col-1", "g1", nil, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = ReplaceCollectionItems(db, "col-1", []ItemRef{
		{Type: "gemstone", ID: "g1"},
		{Type: "jewelry", ID: "j-missing"},
		{Type: "spaceship", ID: "x"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCollectionItemsIdempotent(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "pgx")

	items := []ItemRef{
		{Type: "gemstone", ID: "g1"},
		{Type: "jewelry", ID: "j1"},
	}
	// Applying the same list twice issues the same validation and the same
	// wholesale rewrite, leaving identical membership both times.
	for run := 0; run < 2; run++ {
		mock.ExpectQuery("SELECT EXISTS").WithArgs("g1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery("SELECT EXISTS").WithArgs("j1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM collection_items").WithArgs("col-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("INSERT INTO collection_items").
			WithArgs(sqlmock.AnyArg(), "col-1", "g1", nil, 0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO collection_items").
			WithArgs(sqlmock.AnyArg(), "col-1", nil, "j1", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	require.NoError(t, ReplaceCollectionItems(db, "col-1", items))
	require.NoError(t, ReplaceCollectionItems(db, "col-1", items))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCollectionItemsEmptyClearsMembership(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "pgx")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM collection_items").WithArgs("col-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, ReplaceCollectionItems(db, "col-1", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
