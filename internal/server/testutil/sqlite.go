// Package testutil holds helpers shared by the server test suites.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/rollcall/internal/server/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// NewSQLiteDB returns a private in-memory SQLite database with the schema
// migrations applied. The pool is pinned to one connection because every
// ":memory:" connection is a separate database.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.Up(db, migrations.SQLiteDir))

	return db
}
