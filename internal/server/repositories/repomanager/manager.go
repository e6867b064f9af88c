// Package repomanager vends the repository implementations of one storage
// backend and runs its schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/attendance"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Attendance(db dbx.DBTX) attendance.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func init() {
	goose.SetLogger(goose.NopLogger())
}
