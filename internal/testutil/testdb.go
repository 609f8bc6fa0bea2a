package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/orgchart/internal/db"
)

// NewTestDB opens a migrated in-memory chart store that lives until the
// test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	store, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("open chart store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func NewTestUoW(store *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(store)
}
