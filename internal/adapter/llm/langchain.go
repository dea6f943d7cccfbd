package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LangchainClient adapts any langchaingo model (OpenAI, Ollama) to
// domain.ModelClient.
type LangchainClient struct {
	model       llms.Model
	name        string
	temperature float64
	logger      *zap.Logger
}

// NewLangchainClient wraps an already constructed langchaingo model.
func NewLangchainClient(model llms.Model, name string, temperature float64, logger *zap.Logger) *LangchainClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LangchainClient{model: model, name: name, temperature: temperature, logger: logger}
}

// NewOpenAIClient creates an OpenAI backed ModelClient.
func NewOpenAIClient(cfg config.LLMConfig, logger *zap.Logger) (*LangchainClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.NewConfigurationError("openai API key is required")
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
	}
	return NewLangchainClient(model, "openai/"+cfg.Model, cfg.Temperature, logger), nil
}

// NewOllamaClient creates an Ollama backed ModelClient.
func NewOllamaClient(cfg config.LLMConfig, logger *zap.Logger) (*LangchainClient, error) {
	if strings.TrimSpace(cfg.ServerURL) == "" {
		return nil, domain.NewConfigurationError("ollama server URL is required")
	}
	if cfg.Model == "" {
		return nil, domain.NewConfigurationError("ollama model name is required")
	}

	model, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		ollama.WithFormat("json"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
	}
	return NewLangchainClient(model, "ollama/"+cfg.Model, cfg.Temperature, logger), nil
}

func (c *LangchainClient) Invoke(ctx context.Context, prompt domain.Prompt) (string, error) {
	var opts []llms.CallOption
	if c.temperature > 0 {
		opts = append(opts, llms.WithTemperature(c.temperature))
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt.Text, opts...)
	if err != nil {
		c.logger.Error("LangchainGo call failed", zap.String("model", c.name), zap.Error(err))
		return "", classifyError(err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.NewEmptyResponseError(c.name)
	}
	return text, nil
}

func (c *LangchainClient) Name() string {
	return c.name
}

var _ domain.ModelClient = (*LangchainClient)(nil)
