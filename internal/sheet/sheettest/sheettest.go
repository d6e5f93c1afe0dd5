// Package sheettest provides a workbook-backed store on a temp dir for tests.
package sheettest

import (
	"context"
	"testing"

	"study-tracker/internal/sheet"
	"study-tracker/internal/storage"

	"github.com/stretchr/testify/require"
)

func NewStore(t *testing.T) *sheet.WorkbookStore {
	t.Helper()

	objects, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	store := sheet.NewWorkbookStore(objects, "test.xlsx")
	require.NoError(t, store.Init(context.Background()))
	return store
}

// Seed appends rows to a table, failing the test on error.
func Seed(t *testing.T, store sheet.Store, table sheet.Table, rows ...[]interface{}) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, store.AppendRow(context.Background(), table, row))
	}
}

// Student builds a Students row with the same goal hours every weekday.
func Student(name, password string, goalHours float64) []interface{} {
	row := []interface{}{name, password}
	for i := 0; i < 7; i++ {
		row = append(row, goalHours)
	}
	return row
}
