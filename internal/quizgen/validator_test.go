package quizgen

import (
	"testing"

	"wikiquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedValidator() (*Validator, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return NewValidator(zap.New(core)), logs
}

func TestValidator_Valid(t *testing.T) {
	v, logs := newObservedValidator()
	obj := questionMaps(t, quizJSON(t, 5))

	require.NoError(t, v.Validate(obj))
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestValidator_DoesNotModifyInput(t *testing.T) {
	v, _ := newObservedValidator()
	obj := questionMaps(t, quizJSON(t, 6))
	before := questionMaps(t, quizJSON(t, 6))

	require.NoError(t, v.Validate(obj))
	assert.Equal(t, before, obj)
}

func TestValidator_StructuralErrors(t *testing.T) {
	fiveQuestions := func(mutate func(q []any)) map[string]any {
		obj := questionMaps(t, quizJSON(t, 5))
		mutate(obj["quiz"].([]any))
		return obj
	}

	tests := []struct {
		name    string
		obj     any
		code    domain.ErrorCode
		message string
	}{
		{name: "not a dictionary", obj: []any{1, 2}, code: domain.CodeSchema, message: "quiz JSON is not a dictionary"},
		{name: "missing quiz", obj: map[string]any{"title": "X"}, code: domain.CodeSchema, message: "quiz JSON is missing quiz field"},
		{name: "quiz not a list", obj: map[string]any{"quiz": "nope"}, code: domain.CodeSchema, message: "quiz field must be a list"},
		{
			name: "question not a dictionary",
			obj: fiveQuestions(func(q []any) {
				q[2] = "just text"
			}),
			code:    domain.CodeSchema,
			message: "question 3 must be a dictionary",
		},
		{
			name: "missing explanation",
			obj: fiveQuestions(func(q []any) {
				delete(q[0].(map[string]any), "explanation")
			}),
			code:    domain.CodeSchema,
			message: "question 1 is missing required field: 'explanation'",
		},
		{
			name: "first missing field reported in declared order",
			obj: fiveQuestions(func(q []any) {
				delete(q[4].(map[string]any), "answer")
				delete(q[4].(map[string]any), "options")
			}),
			code:    domain.CodeSchema,
			message: "question 5 is missing required field: 'options'",
		},
		{
			name: "single option",
			obj: fiveQuestions(func(q []any) {
				q[1].(map[string]any)["options"] = []any{"only"}
			}),
			code:    domain.CodeSchema,
			message: "question 2 must have at least 2 options",
		},
		{
			name: "options not a list",
			obj: fiveQuestions(func(q []any) {
				q[3].(map[string]any)["options"] = "A, B"
			}),
			code:    domain.CodeSchema,
			message: "question 4 must have at least 2 options",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newObservedValidator()
			err := v.Validate(tt.obj)
			require.Error(t, err)
			assert.Equal(t, tt.code, domain.CodeOf(err))
			assert.Equal(t, tt.message, err.Error())
			assert.False(t, domain.IsRetryable(err))
		})
	}
}

func TestValidator_InsufficientQuestions(t *testing.T) {
	for _, n := range []int{0, 1, 4} {
		v, _ := newObservedValidator()
		err := v.Validate(questionMaps(t, quizJSON(t, n)))
		require.Error(t, err)
		assert.Equal(t, domain.CodeInsufficientQuestions, domain.CodeOf(err))
		assert.Contains(t, err.Error(), "only")
		assert.Contains(t, err.Error(), "questions")
		assert.True(t, domain.IsRetryable(err))
	}
}

func TestValidator_CountCheckedBeforeQuestionShape(t *testing.T) {
	v, _ := newObservedValidator()
	obj := map[string]any{"quiz": []any{"a", "b"}}
	err := v.Validate(obj)
	assert.Equal(t, domain.CodeInsufficientQuestions, domain.CodeOf(err))
}

func TestValidator_TooManyQuestionsWarns(t *testing.T) {
	v, logs := newObservedValidator()
	require.NoError(t, v.Validate(questionMaps(t, quizJSON(t, 12))))

	warnings := logs.FilterMessage("Quiz contains more questions than recommended")
	assert.Equal(t, 1, warnings.Len())
}

func TestValidator_UniformDifficultyWarns(t *testing.T) {
	v, logs := newObservedValidator()
	obj := questionMaps(t, quizJSON(t, 5))
	for _, q := range obj["quiz"].([]any) {
		q.(map[string]any)["difficulty"] = "easy"
	}

	require.NoError(t, v.Validate(obj))
	assert.Equal(t, 1, logs.FilterMessage("Quiz has limited difficulty variety").Len())
}

func TestValidator_UnrecognizedDifficultyWarns(t *testing.T) {
	v, logs := newObservedValidator()
	obj := questionMaps(t, quizJSON(t, 5))
	obj["quiz"].([]any)[0].(map[string]any)["difficulty"] = "expert"

	require.NoError(t, v.Validate(obj))
	warnings := logs.FilterMessage("Quiz uses unrecognized difficulty levels")
	require.Equal(t, 1, warnings.Len())
	assert.Equal(t, []any{"expert"}, warnings.All()[0].ContextMap()["difficulties"])

	v, logs = newObservedValidator()
	require.NoError(t, v.Validate(questionMaps(t, quizJSON(t, 5))))
	assert.Zero(t, logs.FilterMessage("Quiz uses unrecognized difficulty levels").Len())
}

func TestUnknownDifficulties(t *testing.T) {
	assert.Equal(t, []string{"Hard", "expert"}, unknownDifficulties([]string{"Hard", "easy", "expert", "unknown"}))
	assert.Nil(t, unknownDifficulties([]string{"easy", "medium", "hard"}))
}

func TestDifficultyLevels(t *testing.T) {
	questions := []any{
		map[string]any{"difficulty": "hard"},
		map[string]any{"difficulty": "easy"},
		map[string]any{},
		"not a question",
		map[string]any{"difficulty": "easy"},
	}
	assert.Equal(t, []string{"easy", "hard", "unknown"}, difficultyLevels(questions))
}
