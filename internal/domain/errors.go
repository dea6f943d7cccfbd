package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeQuizNotFound ErrorCode = "QUIZ_NOT_FOUND"

	// Collaborator errors
	CodeArticleFetch ErrorCode = "ARTICLE_FETCH_ERROR"

	// Generation pipeline errors
	CodeConfiguration         ErrorCode = "CONFIGURATION_ERROR"
	CodeModelUnavailable      ErrorCode = "MODEL_UNAVAILABLE"
	CodeModelCall             ErrorCode = "MODEL_CALL_ERROR"
	CodeEmptyResponse         ErrorCode = "EMPTY_RESPONSE"
	CodeInvalidJSON           ErrorCode = "INVALID_JSON"
	CodeSchema                ErrorCode = "SCHEMA_ERROR"
	CodeInsufficientQuestions ErrorCode = "INSUFFICIENT_QUESTIONS"
	CodeRetriesExhausted      ErrorCode = "RETRIES_EXHAUSTED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail value that is surfaced in error responses.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the outermost DomainError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// IsRetryable reports whether a generation attempt that failed with err may be
// repeated. Only failures plausibly caused by sampling variance qualify.
func IsRetryable(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidJSON, CodeInsufficientQuestions:
		return true
	default:
		return false
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewArticleFetchError(url string, cause error) *DomainError {
	return NewError(CodeArticleFetch, fmt.Sprintf("failed to fetch article %s", url), cause)
}

func NewConfigurationError(message string) *DomainError {
	return NewError(CodeConfiguration, message, nil)
}

func NewModelUnavailableError(cause error) *DomainError {
	return NewError(CodeModelUnavailable, "model backend unavailable", cause)
}

func NewModelCallError(cause error) *DomainError {
	return NewError(CodeModelCall, "model call failed", cause)
}

func NewEmptyResponseError(model string) *DomainError {
	return NewError(CodeEmptyResponse, fmt.Sprintf("%s returned empty response", model), nil)
}

func NewInvalidJSONError(cause error) *DomainError {
	return NewError(CodeInvalidJSON, "model response is not valid JSON", cause)
}

func NewSchemaError(detail string) *DomainError {
	return NewError(CodeSchema, detail, nil)
}

func NewInsufficientQuestionsError(count, minimum int) *DomainError {
	return NewError(CodeInsufficientQuestions,
		fmt.Sprintf("quiz has only %d questions, but at least %d questions are required", count, minimum), nil).
		WithContext("questions", count)
}

// NewRetriesExhaustedError reports that every attempt failed with a retryable
// error. The wording depends on the class of the last failure.
func NewRetriesExhaustedError(attempts int, last error) *DomainError {
	reason := "insufficient questions"
	if CodeOf(last) == CodeInvalidJSON {
		reason = "invalid JSON"
	}
	return NewError(CodeRetriesExhausted,
		fmt.Sprintf("failed to generate a valid quiz: %s after %d attempts", reason, attempts), last).
		WithContext("attempts", attempts)
}
