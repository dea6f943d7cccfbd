package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/repository/models"
	"wikiquiz/internal/util"
)

const (
	insertQuizQuery = `INSERT INTO quizzes (id, url, title, created_at, data) VALUES (?, ?, ?, ?, ?)`

	getQuizQuery = `SELECT id "id", url "url", title "title", created_at "created_at", data "data"
	FROM quizzes
	WHERE id = ?`

	listQuizzesQuery = `SELECT id "id", url "url", title "title", created_at "created_at"
	FROM quizzes
	ORDER BY created_at DESC, id DESC`

	countQuizzesQuery = `SELECT COUNT(*) FROM quizzes`
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.
type QuizDatabaseAdapter struct {
	db  DBTX
	now func() time.Time
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db DBTX) *QuizDatabaseAdapter {
	return &QuizDatabaseAdapter{db: db, now: time.Now}
}

// Save stores doc verbatim as JSON under a fresh ULID.
func (a *QuizDatabaseAdapter) Save(ctx context.Context, doc *domain.QuizDocument) (*domain.StoredQuiz, error) {
	if doc == nil {
		return nil, domain.NewInternalError("cannot save nil quiz document", nil)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, domain.NewInternalError("failed to encode quiz document", err)
	}

	row := models.Quiz{
		ID:        util.NewULID(),
		URL:       doc.URL,
		Title:     doc.Title,
		CreatedAt: a.now().UTC().Truncate(time.Microsecond),
		Data:      data,
	}

	_, err = a.db.ExecContext(ctx, a.db.Rebind(insertQuizQuery),
		row.ID, row.URL, row.Title, row.CreatedAt, row.Data)
	if err != nil {
		return nil, domain.NewInternalError("failed to save quiz", err)
	}

	return &domain.StoredQuiz{
		ID:        row.ID,
		URL:       row.URL,
		Title:     row.Title,
		CreatedAt: row.CreatedAt,
		Document:  doc,
	}, nil
}

// GetByID returns QUIZ_NOT_FOUND when no row matches.
func (a *QuizDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.StoredQuiz, error) {
	var row models.Quiz
	err := a.db.GetContext(ctx, &row, a.db.Rebind(getQuizQuery), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewQuizNotFoundError(id)
	}
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get quiz %s", id), err)
	}
	return toDomainQuiz(&row)
}

// List returns history entries, newest first.
func (a *QuizDatabaseAdapter) List(ctx context.Context, limit, offset int) ([]*domain.QuizSummary, error) {
	query := listQuizzesQuery + " LIMIT ? OFFSET ?"
	args := []any{limit, offset}
	if isOracle(a.db) {
		query = listQuizzesQuery + " OFFSET ? ROWS FETCH NEXT ? ROWS ONLY"
		args = []any{offset, limit}
	}

	var rows []models.QuizSummary
	if err := a.db.SelectContext(ctx, &rows, a.db.Rebind(query), args...); err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}

	summaries := make([]*domain.QuizSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, &domain.QuizSummary{
			ID:        r.ID,
			URL:       r.URL,
			Title:     r.Title,
			CreatedAt: r.CreatedAt.UTC(),
		})
	}
	return summaries, nil
}

func (a *QuizDatabaseAdapter) Count(ctx context.Context) (int, error) {
	var n int
	if err := a.db.GetContext(ctx, &n, countQuizzesQuery); err != nil {
		return 0, domain.NewInternalError("failed to count quizzes", err)
	}
	return n, nil
}

func toDomainQuiz(row *models.Quiz) (*domain.StoredQuiz, error) {
	var doc domain.QuizDocument
	if err := json.Unmarshal(row.Data, &doc); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("stored quiz %s has corrupt data", row.ID), err)
	}
	return &domain.StoredQuiz{
		ID:        row.ID,
		URL:       row.URL,
		Title:     row.Title,
		CreatedAt: row.CreatedAt.UTC(),
		Document:  &doc,
	}, nil
}

var _ domain.QuizRepository = (*QuizDatabaseAdapter)(nil)
