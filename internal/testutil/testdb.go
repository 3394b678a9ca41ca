package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/levelup/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a migrated in-memory database closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return OpenTestDB(t, db.MemoryPath)
}

// TempDBPath is a fresh database file location inside the test's temp dir.
func TempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "levelup.db")
}

// OpenTestDB opens path as a migrated database closed with the test. Opening
// the same file twice gives two independent connection pools, which is how
// tests simulate a second levelup process.
func OpenTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
