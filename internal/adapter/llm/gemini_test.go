package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configFor(provider, key, model string) config.LLMConfig {
	return config.LLMConfig{Provider: provider, APIKey: key, Model: model, Timeout: 5 * time.Second}
}

func newTestGeminiClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient(context.Background(), configFor("gemini", "test-key", ""), server.URL, nil)
	require.NoError(t, err)
	return client
}

func geminiReply(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			},
			"finishReason": "STOP",
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     10,
			"candidatesTokenCount": 20,
			"totalTokenCount":      30,
		},
	})
}

func TestGeminiClient_HappyPath(t *testing.T) {
	var gotPath string
	client := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		geminiReply(w, `{"title":"X"}`)
	})

	text, err := client.Invoke(context.Background(), domain.Prompt{Text: "prompt"})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"X"}`, text)
	assert.True(t, strings.Contains(gotPath, "gemini-2.5-flash"), gotPath)
	assert.Equal(t, "gemini/gemini-2.5-flash", client.Name())
}

func TestGeminiClient_EmptyResponse(t *testing.T) {
	client := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		geminiReply(w, "")
	})

	_, err := client.Invoke(context.Background(), domain.Prompt{Text: "prompt"})
	require.Error(t, err)
	assert.Equal(t, domain.CodeEmptyResponse, domain.CodeOf(err))
	assert.Equal(t, "Gemini returned empty response", err.Error())
}

func TestGeminiClient_BadRequest(t *testing.T) {
	client := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := client.Invoke(context.Background(), domain.Prompt{Text: "prompt"})
	require.Error(t, err)
	assert.Equal(t, domain.CodeModelCall, domain.CodeOf(err))
}

func TestGeminiClient_ServerError(t *testing.T) {
	client := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
	})

	_, err := client.Invoke(context.Background(), domain.Prompt{Text: "prompt"})
	require.Error(t, err)
	assert.Equal(t, domain.CodeModelUnavailable, domain.CodeOf(err))
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), configFor("gemini", " ", ""), "", nil)
	require.Error(t, err)
	assert.Equal(t, domain.CodeConfiguration, domain.CodeOf(err))
}
