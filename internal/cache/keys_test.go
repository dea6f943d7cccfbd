package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "record",
			identifier:  "01HX",
			expectedKey: "wikiquiz:quiz:record:01HX",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "record",
			identifier:  "01HX",
			paramsKey:   []string{},
			expectedKey: "wikiquiz:quiz:record:01HX",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "history",
			objectType:  "page",
			identifier:  "all",
			paramsKey:   []string{"20", "40"},
			expectedKey: "wikiquiz:history:page:all:20_40",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}

func TestArticleKey(t *testing.T) {
	key := ArticleKey("https://en.wikipedia.org/wiki/Go_(programming_language)")

	assert.True(t, strings.HasPrefix(key, "wikiquiz:article:page:"))
	assert.Len(t, strings.TrimPrefix(key, "wikiquiz:article:page:"), 64)
	assert.Equal(t, key, ArticleKey("https://en.wikipedia.org/wiki/Go_(programming_language)"))
	assert.NotEqual(t, key, ArticleKey("https://en.wikipedia.org/wiki/Rust_(programming_language)"))
}

func TestQuizKey(t *testing.T) {
	assert.Equal(t, "wikiquiz:quiz:record:01J0ABC", QuizKey("01J0ABC"))
}
