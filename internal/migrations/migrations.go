// Package migrations embeds the goose schema migrations for every supported
// database dialect. Each dialect lives in its own directory of FS.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Directories inside FS.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)
