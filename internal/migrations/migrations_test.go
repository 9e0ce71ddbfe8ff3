package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTempDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestRunMigrations_CreatesTables(t *testing.T) {
	db := openTempDB(t)

	require.NoError(t, RunMigrations(db, true))
	require.True(t, tableExists(t, db, "readings"))
	require.True(t, tableExists(t, db, "aggregates"))
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTempDB(t)

	require.NoError(t, RunMigrations(db, true))
	require.NoError(t, RunMigrations(db, true))

	var version int
	require.NoError(t, db.QueryRow(`SELECT version FROM schema_migrations`).Scan(&version))
	require.Equal(t, 2, version)
}

func TestRunMigrations_PreexistingTable(t *testing.T) {
	db := openTempDB(t)

	_, err := db.Exec(`CREATE TABLE readings (id INTEGER PRIMARY KEY AUTOINCREMENT, timestamp TEXT NOT NULL, temperature TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO readings (timestamp, temperature) VALUES ('2024-01-01 00:00:00.000', '20.000000')`)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db, true))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM readings`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestRunMigrations_AutoMigrateDisabled(t *testing.T) {
	db := openTempDB(t)

	require.NoError(t, RunMigrations(db, false))
	require.False(t, tableExists(t, db, "readings"))
}
