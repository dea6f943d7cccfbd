package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Document holds a serialized QuizDocument. It is written as a string so the
// same value binds to Oracle CLOB, Postgres JSONB and SQLite TEXT columns.
type Document []byte

// Value implements the driver.Valuer interface
func (d Document) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, errors.New("document column cannot be empty")
	}
	return string(d), nil
}

// Scan implements the sql.Scanner interface
func (d *Document) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = nil
	case []byte:
		*d = append((*d)[:0], v...)
	case string:
		*d = Document(v)
	default:
		return fmt.Errorf("Document Scan: unsupported type %T", value)
	}
	return nil
}

// Quiz is one row of the quizzes table.
type Quiz struct {
	ID        string    `db:"id"`
	URL       string    `db:"url"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	Data      Document  `db:"data"`
}

// QuizSummary is the projection used by the history listing.
type QuizSummary struct {
	ID        string    `db:"id"`
	URL       string    `db:"url"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}
