package qfilter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunDefaultsSortToPrimaryKey exercises Run's empty-Sorting default
// (spec §8 Testable Property 7: "with no explicit sort, rows are ordered
// by primary key ascending"), grounded on the teacher's sqlmock-based
// executor tests (safequery_test.go, since removed) for the mocking style.
func TestRunDefaultsSortToPrimaryKey(t *testing.T) {
	require.NoError(t, Register[testModel]())

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(test_models\.id\) FROM test_models`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(`(?s)SELECT \* FROM test_models.*ORDER BY test_models\.id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).
			AddRow(2, "Bob", true).
			AddRow(1, "Ada", false))

	page, err := Run[testModel](context.Background(), db, DialectPostgreSQL, FilterDocument{}, Paginator{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Results, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
