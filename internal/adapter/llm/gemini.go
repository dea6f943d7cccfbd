package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient calls the Gemini API through the google genai SDK.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float64
	logger      *zap.Logger
}

// NewGeminiClient creates a Gemini backed ModelClient. baseURL overrides the
// API endpoint and is empty outside tests.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig, baseURL string, logger *zap.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.NewConfigurationError("gemini API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

func (c *GeminiClient) Invoke(ctx context.Context, prompt domain.Prompt) (string, error) {
	genCfg := &genai.GenerateContentConfig{}
	if c.temperature > 0 {
		temp := float32(c.temperature)
		genCfg.Temperature = &temp
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt.Text), genCfg)
	if err != nil {
		c.logger.Error("Gemini call failed", zap.String("model", c.model), zap.Error(err))
		return "", classifyError(err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", domain.NewEmptyResponseError("Gemini")
	}
	if result.UsageMetadata != nil {
		c.logger.Debug("Gemini call completed",
			zap.String("model", c.model),
			zap.Int32("prompt_tokens", result.UsageMetadata.PromptTokenCount),
			zap.Int32("output_tokens", result.UsageMetadata.CandidatesTokenCount))
	}
	return text, nil
}

func (c *GeminiClient) Name() string {
	return "gemini/" + c.model
}

var _ domain.ModelClient = (*GeminiClient)(nil)
