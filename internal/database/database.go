package database

import (
	"context"
	"fmt"
	"time"

	"wikiquiz/internal/config"

	_ "github.com/godror/godror" // Oracle driver (OCI)
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver (pure Go)
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

func init() {
	sqlx.BindDriver("oracle", sqlx.NAMED)
	sqlx.BindDriver("godror", sqlx.NAMED)
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// sqlDriverName maps a db.driver setting to the database/sql driver name.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case "oracle":
		return "oracle", nil
	case "godror":
		return "godror", nil
	case "postgres":
		return "pgx", nil
	case "sqlite":
		return "sqlite", nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

// Dialect returns the migration dialect for a db.driver setting.
func Dialect(driver string) string {
	switch driver {
	case "oracle", "godror":
		return "oracle"
	}
	return driver
}

// Open connects to the configured database and pings it.
func Open(ctx context.Context, driver, dsn string, logger *zap.Logger) (*sqlx.DB, error) {
	name, err := sqlDriverName(driver)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is empty for driver %q", driver)
	}

	db, err := sqlx.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == "sqlite" {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	if logger != nil {
		logger.Info("Connected to database", zap.String("driver", driver))
	}
	return db, nil
}

// OpenFromConfig opens the database described by cfg.
func OpenFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sqlx.DB, error) {
	return Open(ctx, cfg.DB.Driver, cfg.GetDSN(), logger)
}
