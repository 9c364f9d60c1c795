package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	n, err := Migrate(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	v, err := SchemaVersion(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"topics", "validation_runs"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
	for _, idx := range []string{"idx_topics_subdomain", "idx_topics_status", "idx_validation_runs_started"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_VersionCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO topics (id, subdomain, type, status, version, updated_at, document, stored_at)
		VALUES ('x', 's', 'concept', 'draft', 0, '', '{}', '')`)
	assert.Error(t, err)
}

func TestOpenDB_FileUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "medcorpus.db")
	db, err := OpenDB(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}
