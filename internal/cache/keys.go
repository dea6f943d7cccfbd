package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	GlobalKeyPrefix = "wikiquiz"

	ArticleServiceName = "article"
	ArticlePageType    = "page"

	QuizServiceName = "quiz"
	QuizRecordType  = "record"
)

// GenerateCacheKey builds prefix:service:type:id. Extra params are joined by
// "_" and appended as a fifth segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// ArticleKey keys extracted article text by the SHA-256 of its URL, keeping
// arbitrary URL characters out of the key.
func ArticleKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return GenerateCacheKey(ArticleServiceName, ArticlePageType, hex.EncodeToString(sum[:]))
}

// QuizKey keys a persisted quiz record by its ID.
func QuizKey(id string) string {
	return GenerateCacheKey(QuizServiceName, QuizRecordType, id)
}
