package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"wikiquiz/internal/domain"

	"go.uber.org/zap"
)

const mockSummaryLimit = 400

// MockClient is the offline stand-in selected by llm.use_mock. It derives a
// fixed quiz from the request and never looks at the prompt text.
type MockClient struct {
	logger *zap.Logger
}

func NewMockClient(logger *zap.Logger) *MockClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockClient{logger: logger}
}

func (c *MockClient) Invoke(_ context.Context, prompt domain.Prompt) (string, error) {
	c.logger.Warn("Using mock model client, output is canned and only suitable for testing")

	data, err := json.Marshal(MockDocument(prompt.Request))
	if err != nil {
		return "", domain.NewModelCallError(err)
	}
	return string(data), nil
}

func (c *MockClient) Name() string {
	return "mock"
}

// MockDocument builds the canned quiz for req. The result is a pure function
// of req.
func MockDocument(req domain.QuizRequest) *domain.QuizDocument {
	return &domain.QuizDocument{
		URL:     req.URL,
		Title:   req.Title,
		Summary: mockSummary(req.Content),
		KeyEntities: domain.KeyEntities{
			People:        []string{},
			Organizations: []string{},
			Locations:     []string{},
		},
		Sections: []string{},
		Quiz: []domain.QuizQuestion{
			{
				Question:    fmt.Sprintf("What is the main topic of the article '%s'?", req.Title),
				Options:     []string{req.Title, "Science", "History", "Mathematics"},
				Answer:      req.Title,
				Difficulty:  domain.DifficultyEasy,
				Explanation: "The article primarily discusses the given title.",
			},
			{
				Question:    "Which source was used for this quiz?",
				Options:     []string{"Blog", "Wikipedia", "Newspaper", "Podcast"},
				Answer:      "Wikipedia",
				Difficulty:  domain.DifficultyEasy,
				Explanation: "The quiz is generated from a Wikipedia article.",
			},
			{
				Question:    "What kind of publication is a Wikipedia article?",
				Options:     []string{"An encyclopedia entry", "A novel", "A press release", "A patent"},
				Answer:      "An encyclopedia entry",
				Difficulty:  domain.DifficultyMedium,
				Explanation: "Wikipedia is a free online encyclopedia.",
			},
			{
				Question:    "Who can edit a Wikipedia article?",
				Options:     []string{"Only its original author", "Volunteer editors", "Only paid staff", "Nobody"},
				Answer:      "Volunteer editors",
				Difficulty:  domain.DifficultyMedium,
				Explanation: "Wikipedia articles are written and maintained by volunteer editors.",
			},
			{
				Question:    "Where should the facts in a generated quiz come from?",
				Options:     []string{"The article itself", "The model's imagination", "Social media", "Advertisements"},
				Answer:      "The article itself",
				Difficulty:  domain.DifficultyHard,
				Explanation: "Questions must be grounded in the article text.",
			},
		},
		RelatedTopics: []string{},
	}
}

func mockSummary(content string) string {
	runes := []rune(content)
	if len(runes) <= mockSummaryLimit {
		return content
	}
	return string(runes[:mockSummaryLimit]) + "..."
}

var _ domain.ModelClient = (*MockClient)(nil)
