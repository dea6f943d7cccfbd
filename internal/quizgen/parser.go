package quizgen

import (
	"encoding/json"
	"errors"
	"strings"

	"wikiquiz/internal/domain"
)

var errNoObject = errors.New("no JSON object delimiters found in model response")

// ParseResponse extracts the JSON value from raw model output. The whole text
// is tried first; failing that, the span from the first '{' to the last '}'.
// Models that wrap JSON in prose or code fences are handled by the second
// step. Every failure is an INVALID_JSON error.
func ParseResponse(raw string) (any, error) {
	var obj any
	err := json.Unmarshal([]byte(raw), &obj)
	if err == nil {
		return obj, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, domain.NewInvalidJSONError(errNoObject)
	}

	if errExtracted := json.Unmarshal([]byte(raw[start:end+1]), &obj); errExtracted != nil {
		return nil, domain.NewInvalidJSONError(errExtracted)
	}
	return obj, nil
}

// DecodeDocument converts a validated JSON value into a QuizDocument. Type
// mismatches the validator does not look at (a numeric question, say) are
// reported as schema errors.
func DecodeDocument(obj any) (*domain.QuizDocument, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, domain.NewSchemaError("quiz document cannot be re-encoded: " + err.Error())
	}

	var doc domain.QuizDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.NewSchemaError("quiz document has unexpected field types: " + err.Error())
	}
	return &doc, nil
}
