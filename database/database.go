// Package database embeds the SQL migrations for every supported dialect.
package database

import (
	"embed"
	"io/fs"
)

//go:embed migrations
var migrations embed.FS

// Migrations returns the migration files for dialect ("oracle", "postgres"
// or "sqlite").
func Migrations(dialect string) (fs.FS, error) {
	return fs.Sub(migrations, "migrations/"+dialect)
}
