package quizgen

import (
	"fmt"
	"sort"

	"wikiquiz/internal/domain"

	"go.uber.org/zap"
)

const (
	MinQuestions = 5
	MaxQuestions = 10
	MinOptions   = 2
)

var requiredQuestionFields = []string{"question", "options", "answer", "difficulty", "explanation"}

// Validator gates parsed model output. It never modifies the value it checks.
type Validator struct {
	logger *zap.Logger
}

func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// Validate checks the structural and quality rules in order and stops at the
// first failure. A short quiz yields INSUFFICIENT_QUESTIONS, every other
// violation a SCHEMA_ERROR. Long quizzes and uniform difficulty only warn.
func (v *Validator) Validate(obj any) error {
	doc, ok := obj.(map[string]any)
	if !ok {
		return domain.NewSchemaError("quiz JSON is not a dictionary")
	}

	rawQuiz, ok := doc["quiz"]
	if !ok {
		return domain.NewSchemaError("quiz JSON is missing quiz field")
	}

	questions, ok := rawQuiz.([]any)
	if !ok {
		return domain.NewSchemaError("quiz field must be a list")
	}

	count := len(questions)
	v.logger.Info("Generated quiz contains questions", zap.Int("count", count))

	if count < MinQuestions {
		return domain.NewInsufficientQuestionsError(count, MinQuestions)
	}
	if count > MaxQuestions {
		v.logger.Warn("Quiz contains more questions than recommended",
			zap.Int("count", count),
			zap.Int("recommended_max", MaxQuestions))
	}

	levels := difficultyLevels(questions)
	if len(levels) < 2 {
		v.logger.Warn("Quiz has limited difficulty variety", zap.Strings("difficulties", levels))
	}
	if unknown := unknownDifficulties(levels); len(unknown) > 0 {
		v.logger.Warn("Quiz uses unrecognized difficulty levels", zap.Strings("difficulties", unknown))
	}

	for i, raw := range questions {
		q, ok := raw.(map[string]any)
		if !ok {
			return domain.NewSchemaError(fmt.Sprintf("question %d must be a dictionary", i+1))
		}
		for _, field := range requiredQuestionFields {
			if _, present := q[field]; !present {
				return domain.NewSchemaError(fmt.Sprintf("question %d is missing required field: '%s'", i+1, field))
			}
		}
		options, ok := q["options"].([]any)
		if !ok || len(options) < MinOptions {
			return domain.NewSchemaError(fmt.Sprintf("question %d must have at least %d options", i+1, MinOptions))
		}
	}

	return nil
}

// difficultyLevels returns the distinct difficulty values among the question
// objects, sorted. Questions without one count as "unknown".
func difficultyLevels(questions []any) []string {
	seen := make(map[string]struct{})
	for _, raw := range questions {
		q, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		level := "unknown"
		if d, present := q["difficulty"]; present {
			level = fmt.Sprint(d)
		}
		seen[level] = struct{}{}
	}

	levels := make([]string, 0, len(seen))
	for level := range seen {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	return levels
}

// unknownDifficulties returns the levels outside easy/medium/hard. Missing
// difficulties are left to the field check.
func unknownDifficulties(levels []string) []string {
	var unknown []string
	for _, level := range levels {
		if level == "unknown" || domain.Difficulty(level).Valid() {
			continue
		}
		unknown = append(unknown, level)
	}
	return unknown
}
