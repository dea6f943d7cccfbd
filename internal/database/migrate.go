package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	schema "wikiquiz/database"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Oracle errors that mean the object already exists.
var oracleAlreadyExists = []string{"ORA-00955", "ORA-01408"}

// RunMigrations brings the schema up to date. Postgres and SQLite go through
// golang-migrate; Oracle has no golang-migrate driver, so its .up.sql files
// run in name order and already-existing objects are skipped.
func RunMigrations(ctx context.Context, db *sqlx.DB, driver string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	dialect := Dialect(driver)
	files, err := schema.Migrations(dialect)
	if err != nil {
		return fmt.Errorf("could not load %s migrations: %w", dialect, err)
	}

	if dialect == "oracle" {
		return runOracleMigrations(ctx, db, files, logger)
	}

	src, err := iofs.New(files, ".")
	if err != nil {
		return fmt.Errorf("could not open migration source: %w", err)
	}

	var m *migrate.Migrate
	switch dialect {
	case "postgres":
		drv, err := migratepgx.WithInstance(db.DB, &migratepgx.Config{})
		if err != nil {
			return fmt.Errorf("could not create postgres migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "pgx5", drv)
		if err != nil {
			return fmt.Errorf("could not create migrator: %w", err)
		}
	case "sqlite":
		drv, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("could not create sqlite migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite", drv)
		if err != nil {
			return fmt.Errorf("could not create migrator: %w", err)
		}
	default:
		return fmt.Errorf("no migrations for dialect %q", dialect)
	}

	// The migrator is not closed: its driver owns db and would close it.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", err)
	}
	logger.Info("Migrations completed successfully",
		zap.String("dialect", dialect),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}

func runOracleMigrations(ctx context.Context, db *sqlx.DB, files fs.FS, logger *zap.Logger) error {
	names, err := fs.Glob(files, "*.up.sql")
	if err != nil {
		return fmt.Errorf("could not list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := fs.ReadFile(files, name)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				if isAlreadyExists(err) {
					logger.Debug("Schema object already exists", zap.String("migration", name))
					continue
				}
				return fmt.Errorf("could not execute migration %s: %w", name, err)
			}
		}
		logger.Info("Executed migration", zap.String("migration", name))
	}

	logger.Info("Migrations completed successfully", zap.String("dialect", "oracle"))
	return nil
}

// SplitStatements splits a migration file on semicolons that end a line. The
// Oracle drivers execute one statement per call and reject the trailing ';'.
func SplitStatements(sql string) []string {
	var (
		stmts   []string
		current strings.Builder
	)
	for _, line := range strings.Split(sql, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
			stmts = append(stmts, stmt)
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}

func isAlreadyExists(err error) bool {
	msg := err.Error()
	for _, code := range oracleAlreadyExists {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return false
}
