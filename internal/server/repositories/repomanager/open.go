package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// sqlitePragmas are appended to file-backed SQLite DSNs.
const sqlitePragmas = "_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// Open connects to the configured backend, verifies the connection and
// applies pending migrations. The caller owns the returned *sql.DB.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		db  *sql.DB
		rm  RepositoryManager
		err error
	)

	switch driver {
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
		rm = NewPostgresRepositoryManager()
	case DriverSQLite:
		db, err = sql.Open("sqlite", sqliteDSN(dsn))
		if err == nil {
			// one writer; also required for ":memory:" to stay a single database
			db.SetMaxOpenConns(1)
		}
		rm = NewSQLiteRepositoryManager()
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return db, rm, nil
}

func sqliteDSN(dsn string) string {
	switch {
	case dsn == "":
		return ":memory:"
	case dsn == ":memory:", strings.Contains(dsn, "mode=memory"), strings.Contains(dsn, "_pragma="):
		return dsn
	case strings.Contains(dsn, "?"):
		return dsn + "&" + sqlitePragmas
	default:
		return dsn + "?" + sqlitePragmas
	}
}
