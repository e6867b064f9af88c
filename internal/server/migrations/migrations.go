// Package migrations embeds the goose schema migrations for both storage
// backends. Each backend has its own directory because column types and
// timestamp encodings differ.
package migrations

import "embed"

// Migrations holds postgres/*.sql and sqlite/*.sql.
//
//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
