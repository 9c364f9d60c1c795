package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/medcorpus/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a migrated in-memory database that is closed when the
// test ends.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return openMigrated(t, db.MemoryPath)
}

// NewFileTestDB is NewTestDB backed by a file under t.TempDir, for tests that
// need WAL mode or a second connection. The path is returned for reopening.
func NewFileTestDB(t testing.TB) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "medcorpus.db")
	return openMigrated(t, path), path
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

func openMigrated(t testing.TB, path string) *sql.DB {
	database, err := db.OpenDB(context.Background(), path)
	require.NoError(t, err, "opening test database %s", path)
	t.Cleanup(func() { _ = database.Close() })
	return database
}
