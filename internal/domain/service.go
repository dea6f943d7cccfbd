package domain

import "context"

// ModelClient sends a prompt to a generative model and returns its raw text.
type ModelClient interface {
	// Invoke fails with MODEL_UNAVAILABLE, MODEL_CALL_ERROR or EMPTY_RESPONSE.
	Invoke(ctx context.Context, prompt Prompt) (string, error)

	// Name identifies the backend and model in logs.
	Name() string
}

// QuizGenerator turns article text into a validated quiz.
type QuizGenerator interface {
	Generate(ctx context.Context, req QuizRequest) (*QuizDocument, error)
}

// ArticleSource fetches and extracts a Wikipedia page.
type ArticleSource interface {
	Fetch(ctx context.Context, url string) (*Article, error)
}

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// Save persists doc and returns the stored record with its ID and creation time.
	Save(ctx context.Context, doc *QuizDocument) (*StoredQuiz, error)

	// GetByID returns QUIZ_NOT_FOUND when no record matches.
	GetByID(ctx context.Context, id string) (*StoredQuiz, error)

	// List returns history entries, newest first.
	List(ctx context.Context, limit, offset int) ([]*QuizSummary, error)

	// Count returns the number of stored quizzes.
	Count(ctx context.Context) (int, error)
}
