package llm

import (
	"context"
	"fmt"
	"strings"

	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"

	"go.uber.org/zap"
)

// NewModelClient selects the backend named by cfg. The choice is logged and
// never silent: mock mode must be requested explicitly, and a live provider
// without its credential yields CONFIGURATION_ERROR.
func NewModelClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (domain.ModelClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("Quiz generation configuration",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Bool("use_mock", cfg.UseMock),
		zap.Bool("api_key_present", strings.TrimSpace(cfg.APIKey) != ""),
		zap.Duration("timeout", cfg.Timeout))

	if cfg.UseMock {
		logger.Warn("Mock mode is enabled, quizzes will not come from a real model")
		return NewMockClient(logger), nil
	}

	if cfg.CredentialMissing() {
		return nil, domain.NewConfigurationError(fmt.Sprintf(
			"no credential configured for model provider %q; mock mode is disabled by default, "+
				"set llm.use_mock (or USE_MOCK_LLM=1) explicitly to use it", cfg.Provider))
	}

	var (
		client domain.ModelClient
		err    error
	)
	switch cfg.Provider {
	case "gemini":
		client, err = NewGeminiClient(ctx, cfg, "", logger)
	case "openai":
		client, err = NewOpenAIClient(cfg, logger)
	case "ollama":
		client, err = NewOllamaClient(cfg, logger)
	default:
		return nil, domain.NewConfigurationError(fmt.Sprintf("unknown model provider: %q", cfg.Provider))
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Model client ready", zap.String("client", client.Name()))
	return client, nil
}
