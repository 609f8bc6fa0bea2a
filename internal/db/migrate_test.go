package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Re-running every statement must succeed.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"kv", "snapshots"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}

	var idx string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_snapshots_key_seq'`).Scan(&idx)
	require.NoError(t, err)
}

func TestMigrate_SnapshotsSizeColumn(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(snapshots)`)
	require.NoError(t, err)
	defer rows.Close()

	found := false
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		if name == "size_bytes" {
			found = true
		}
	}
	require.NoError(t, rows.Err())
	assert.True(t, found, "snapshots table should have size_bytes column")
}

func TestMigrate_SnapshotSeqUniquePerKey(t *testing.T) {
	db := openTestDB(t)

	insert := `INSERT INTO snapshots (id, key, seq, value, created_at) VALUES (?, ?, ?, '{}', '2024-01-01T00:00:00Z')`
	_, err := db.Exec(insert, "s1", "data", 1)
	require.NoError(t, err)
	_, err = db.Exec(insert, "s2", "other", 1)
	require.NoError(t, err)
	_, err = db.Exec(insert, "s3", "data", 1)
	assert.Error(t, err, "duplicate seq for the same key must be rejected")
}

func TestMigrate_BackfillsSnapshotSize(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO snapshots (id, key, seq, value, created_at) VALUES ('s1', 'data', 1, '{"a":1}', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	var size int
	require.NoError(t, db.QueryRow(`SELECT size_bytes FROM snapshots WHERE id = 's1'`).Scan(&size))
	assert.Equal(t, 7, size)
}

func TestOpenDB_InMemoryJournalMode(t *testing.T) {
	// In-memory SQLite uses "memory" journal mode; WAL only applies to file DBs.
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestOpenDB_FileCreatesDirectoryAndUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "orgchart.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}
