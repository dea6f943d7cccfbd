package dto

import (
	"time"

	"wikiquiz/internal/domain"
)

// GenerateQuizRequest is the body of POST /api/generate_quiz
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	URL string `json:"url" validate:"required,url" example:"https://en.wikipedia.org/wiki/Alan_Turing"`
}

// QuizResponse is a stored quiz: the generated document plus its record fields
// @Description Generated quiz
type QuizResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	*domain.QuizDocument
}

// HistoryItem is one entry of the quiz history
type HistoryItem struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// HistoryResponse is one page of the quiz history
type HistoryResponse struct {
	Items  []HistoryItem `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists every invalid request field
type ValidationErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Errors  []domain.FieldError `json:"errors"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ToQuizResponse maps a stored quiz to its API shape.
func ToQuizResponse(q *domain.StoredQuiz) QuizResponse {
	doc := q.Document
	if doc == nil {
		doc = &domain.QuizDocument{URL: q.URL, Title: q.Title}
	}
	return QuizResponse{
		ID:           q.ID,
		CreatedAt:    formatTime(q.CreatedAt),
		QuizDocument: doc,
	}
}

// ToHistoryItems maps history summaries; the result is never nil.
func ToHistoryItems(summaries []*domain.QuizSummary) []HistoryItem {
	items := make([]HistoryItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, HistoryItem{
			ID:        s.ID,
			URL:       s.URL,
			Title:     s.Title,
			CreatedAt: formatTime(s.CreatedAt),
		})
	}
	return items
}

// HistoryQuery holds the paging parameters of GET /api/history
type HistoryQuery struct {
	Limit  int `query:"limit" json:"limit" validate:"min=0"`
	Offset int `query:"offset" json:"offset" validate:"min=0"`
}
