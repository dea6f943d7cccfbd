package domain

import "time"

// Difficulty levels a generated question may carry.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Article is the text extracted from a Wikipedia page.
type Article struct {
	URL     string
	Title   string
	Content string
}

// QuizRequest is the input of one quiz generation. Content is the full
// extracted article text.
type QuizRequest struct {
	URL     string
	Title   string
	Content string
}

// Prompt is the rendered model input. Live backends only see Text; Request
// travels alongside so offline stand-ins can derive their output.
type Prompt struct {
	Text    string
	Request QuizRequest
}

// KeyEntities groups the named entities the model extracted from the article.
type KeyEntities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	Question    string     `json:"question"`
	Options     []string   `json:"options"`
	Answer      string     `json:"answer"`
	Difficulty  Difficulty `json:"difficulty"`
	Explanation string     `json:"explanation"`
}

// QuizDocument is the validated output of the generation pipeline.
type QuizDocument struct {
	URL           string         `json:"url"`
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	KeyEntities   KeyEntities    `json:"key_entities"`
	Sections      []string       `json:"sections"`
	Quiz          []QuizQuestion `json:"quiz"`
	RelatedTopics []string       `json:"related_topics"`
}

// StoredQuiz is a persisted QuizDocument.
type StoredQuiz struct {
	ID        string
	URL       string
	Title     string
	CreatedAt time.Time
	Document  *QuizDocument
}

// QuizSummary is one history entry.
type QuizSummary struct {
	ID        string
	URL       string
	Title     string
	CreatedAt time.Time
}
