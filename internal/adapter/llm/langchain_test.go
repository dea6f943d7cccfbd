package llm

import (
	"context"
	"errors"
	"net"
	"testing"

	"wikiquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// stubModel is a langchaingo model with a canned reply.
type stubModel struct {
	text        string
	err         error
	lastPrompt  string
	temperature float64
}

func (m *stubModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	m.temperature = opts.Temperature
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if tp, ok := part.(llms.TextContent); ok {
				m.lastPrompt = tp.Text
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.text}}}, nil
}

func (m *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestLangchainClient_Invoke(t *testing.T) {
	model := &stubModel{text: `{"quiz":[]}`}
	client := NewLangchainClient(model, "ollama/llama3", 0.4, nil)

	text, err := client.Invoke(context.Background(), domain.Prompt{Text: "the prompt"})
	require.NoError(t, err)
	assert.Equal(t, `{"quiz":[]}`, text)
	assert.Equal(t, "the prompt", model.lastPrompt)
	assert.InDelta(t, 0.4, model.temperature, 1e-9)
	assert.Equal(t, "ollama/llama3", client.Name())
}

func TestLangchainClient_Errors(t *testing.T) {
	tests := []struct {
		name  string
		model *stubModel
		code  domain.ErrorCode
	}{
		{name: "empty text", model: &stubModel{text: "  \n"}, code: domain.CodeEmptyResponse},
		{name: "generic failure", model: &stubModel{err: errors.New("bad request")}, code: domain.CodeModelCall},
		{name: "deadline", model: &stubModel{err: context.DeadlineExceeded}, code: domain.CodeModelCall},
		{
			name:  "connection refused",
			model: &stubModel{err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}},
			code:  domain.CodeModelUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewLangchainClient(tt.model, "openai/gpt-4o-mini", 0, nil)
			_, err := client.Invoke(context.Background(), domain.Prompt{Text: "p"})
			require.Error(t, err)
			assert.Equal(t, tt.code, domain.CodeOf(err))
			assert.False(t, domain.IsRetryable(err))
		})
	}
}

func TestNewOllamaClient_RequiresServerAndModel(t *testing.T) {
	_, err := NewOllamaClient(configFor("ollama", "", ""), nil)
	assert.Equal(t, domain.CodeConfiguration, domain.CodeOf(err))

	cfg := configFor("ollama", "", "")
	cfg.ServerURL = "http://localhost:11434"
	_, err = NewOllamaClient(cfg, nil)
	assert.Equal(t, domain.CodeConfiguration, domain.CodeOf(err))
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(configFor("openai", "", "gpt-4o-mini"), nil)
	assert.Equal(t, domain.CodeConfiguration, domain.CodeOf(err))
}
