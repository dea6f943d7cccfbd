package dto

import (
	"encoding/json"
	"testing"
	"time"

	"wikiquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToQuizResponse_FlattensDocument(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("KST", 9*3600))
	stored := &domain.StoredQuiz{
		ID:        "01HQ",
		URL:       "https://en.wikipedia.org/wiki/Go",
		Title:     "Go",
		CreatedAt: created,
		Document: &domain.QuizDocument{
			URL:     "https://en.wikipedia.org/wiki/Go",
			Title:   "Go",
			Summary: "A language.",
			Quiz: []domain.QuizQuestion{
				{Question: "Q?", Options: []string{"a", "b"}, Answer: "a", Difficulty: domain.DifficultyEasy, Explanation: "e"},
			},
		},
	}

	data, err := json.Marshal(ToQuizResponse(stored))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "01HQ", body["id"])
	assert.Equal(t, "2024-03-01T03:30:00Z", body["created_at"])
	assert.Equal(t, "Go", body["title"])
	assert.Equal(t, "A language.", body["summary"])
	assert.Len(t, body["quiz"], 1)
}

func TestToQuizResponse_MissingDocument(t *testing.T) {
	resp := ToQuizResponse(&domain.StoredQuiz{ID: "x", URL: "u", Title: "t"})
	require.NotNil(t, resp.QuizDocument)
	assert.Equal(t, "u", resp.URL)
	assert.Equal(t, "t", resp.Title)
}

func TestToHistoryItems(t *testing.T) {
	assert.NotNil(t, ToHistoryItems(nil))

	items := ToHistoryItems([]*domain.QuizSummary{
		{ID: "b", URL: "u2", Title: "T2", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "a", URL: "u1", Title: "T1", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.Len(t, items, 2)
	assert.Equal(t, HistoryItem{ID: "b", URL: "u2", Title: "T2", CreatedAt: "2024-01-02T00:00:00Z"}, items[0])
}
