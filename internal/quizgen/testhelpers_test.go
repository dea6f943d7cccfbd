package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"wikiquiz/internal/domain"

	"github.com/stretchr/testify/require"
)

// scriptedClient returns one scripted reply per Invoke call. When the script
// runs out, the last reply repeats.
type scriptedClient struct {
	mu      sync.Mutex
	replies []scriptedReply
	calls   int
	prompts []domain.Prompt
}

type scriptedReply struct {
	text string
	err  error
}

func newScriptedClient(replies ...scriptedReply) *scriptedClient {
	return &scriptedClient{replies: replies}
}

func (c *scriptedClient) Invoke(_ context.Context, prompt domain.Prompt) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.calls
	if idx >= len(c.replies) {
		idx = len(c.replies) - 1
	}
	c.calls++
	c.prompts = append(c.prompts, prompt)
	r := c.replies[idx]
	return r.text, r.err
}

func (c *scriptedClient) Name() string { return "scripted" }

func (c *scriptedClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func reply(text string) scriptedReply { return scriptedReply{text: text} }

func failure(err error) scriptedReply { return scriptedReply{err: err} }

// quizJSON renders a well-formed quiz document with n questions cycling
// through the three difficulty levels.
func quizJSON(t *testing.T, n int) string {
	t.Helper()
	levels := []string{"easy", "medium", "hard"}
	questions := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, map[string]any{
			"question":    fmt.Sprintf("Question %d?", i+1),
			"options":     []string{"A", "B", "C", "D"},
			"answer":      "A",
			"difficulty":  levels[i%len(levels)],
			"explanation": fmt.Sprintf("Because of fact %d.", i+1),
		})
	}
	doc := map[string]any{
		"url":     "https://en.wikipedia.org/wiki/Go_(programming_language)",
		"title":   "Go (programming language)",
		"summary": "Go is a statically typed, compiled programming language.",
		"key_entities": map[string]any{
			"people":        []string{"Robert Griesemer", "Rob Pike", "Ken Thompson"},
			"organizations": []string{"Google"},
			"locations":     []string{},
		},
		"sections":       []string{"History", "Design"},
		"quiz":           questions,
		"related_topics": []string{"C", "Limbo"},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(data)
}

// questionMaps decodes quiz JSON into the generic form the validator sees.
func questionMaps(t *testing.T, raw string) map[string]any {
	t.Helper()
	var obj map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &obj))
	return obj
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
