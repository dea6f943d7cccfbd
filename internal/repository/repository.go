package repository

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sqlx.DB and *sqlx.Tx the repositories use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
	DriverName() string
}

// isOracle reports whether the driver speaks Oracle SQL.
func isOracle(db DBTX) bool {
	switch db.DriverName() {
	case "oracle", "godror":
		return true
	}
	return false
}
