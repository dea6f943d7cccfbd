package quizgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"

	"go.uber.org/zap"
)

// MaxAttempts is the fixed attempt budget of one Generate call.
const MaxAttempts = 3

type state string

const (
	stateIdle       state = "idle"
	stateAttempting state = "attempting"
	stateSucceeded  state = "succeeded"
	stateFailed     state = "failed"
)

// Recorder observes the generation pipeline. The prometheus implementation
// lives in internal/metrics.
type Recorder interface {
	ObserveAttempt(outcome string)
	ObserveGeneration(result string, attempts int, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAttempt(string)                        {}
func (nopRecorder) ObserveGeneration(string, int, time.Duration) {}

// Generator runs the model -> parser -> validator loop for one article.
// It keeps no per-request state, so one instance serves concurrent calls.
type Generator struct {
	client    domain.ModelClient
	llmCfg    config.LLMConfig
	validator *Validator
	recorder  Recorder
	logger    *zap.Logger
}

// NewGenerator creates a Generator. client may be nil when the model
// configuration is incomplete; Generate then fails with CONFIGURATION_ERROR.
func NewGenerator(client domain.ModelClient, llmCfg config.LLMConfig, recorder Recorder, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Generator{
		client:    client,
		llmCfg:    llmCfg,
		validator: NewValidator(logger),
		recorder:  recorder,
		logger:    logger,
	}
}

var _ domain.QuizGenerator = (*Generator)(nil)

// Generate returns a validated QuizDocument or a single terminal error.
// Invalid JSON and too few questions are retried up to MaxAttempts; every
// other failure ends the call immediately.
func (g *Generator) Generate(ctx context.Context, req domain.QuizRequest) (*domain.QuizDocument, error) {
	started := time.Now()
	log := g.logger.With(zap.String("url", req.URL), zap.String("title", req.Title))

	if err := g.checkConfiguration(); err != nil {
		log.Error("Quiz generation is not configured", zap.Error(err))
		g.transition(log, stateIdle, stateFailed, 0)
		g.recorder.ObserveGeneration(resultLabel(err), 0, time.Since(started))
		return nil, err
	}

	prompt := domain.Prompt{
		Text:    BuildPrompt(req.URL, req.Title, req.Content),
		Request: req,
	}
	log.Info("Starting quiz generation",
		zap.String("model", g.client.Name()),
		zap.Int("content_length", len(req.Content)),
		zap.Int("max_attempts", MaxAttempts))

	current := stateIdle
	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		g.transition(log, current, stateAttempting, attempt)
		current = stateAttempting

		doc, err := g.attempt(ctx, prompt)
		if err == nil {
			g.recorder.ObserveAttempt("success")
			g.transition(log, current, stateSucceeded, attempt)
			g.recorder.ObserveGeneration("success", attempt, time.Since(started))
			log.Info("Quiz generation successful",
				zap.Int("attempt", attempt),
				zap.Int("questions", len(doc.Quiz)))
			return doc, nil
		}
		g.recorder.ObserveAttempt(resultLabel(err))

		if !domain.IsRetryable(err) {
			log.Error("Quiz generation failed with non-retryable error",
				zap.Int("attempt", attempt),
				zap.String("code", string(domain.CodeOf(err))),
				zap.Error(err))
			g.transition(log, current, stateFailed, attempt)
			g.recorder.ObserveGeneration(resultLabel(err), attempt, time.Since(started))
			return nil, err
		}

		lastErr = err
		if attempt < MaxAttempts {
			log.Warn("Quiz generation attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.String("code", string(domain.CodeOf(err))),
				zap.Error(err))
		}
	}

	exhausted := domain.NewRetriesExhaustedError(MaxAttempts, lastErr)
	log.Error("Quiz generation exhausted its attempts", zap.Error(exhausted))
	g.transition(log, current, stateFailed, MaxAttempts)
	g.recorder.ObserveGeneration(resultLabel(exhausted), MaxAttempts, time.Since(started))
	return nil, exhausted
}

// attempt runs one model call, parse and validation under the configured
// timeout.
func (g *Generator) attempt(ctx context.Context, prompt domain.Prompt) (*domain.QuizDocument, error) {
	if g.llmCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.llmCfg.Timeout)
		defer cancel()
	}

	raw, err := g.client.Invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}

	obj, err := ParseResponse(raw)
	if err != nil {
		g.logger.Debug("Unparseable model response", zap.String("raw_response", truncate(raw, 500)))
		return nil, err
	}

	if err := g.validator.Validate(obj); err != nil {
		return nil, err
	}

	return DecodeDocument(obj)
}

func (g *Generator) checkConfiguration() error {
	if g.llmCfg.CredentialMissing() {
		return domain.NewConfigurationError(fmt.Sprintf(
			"no credential configured for model provider %q; mock mode is disabled by default, "+
				"set llm.use_mock (or USE_MOCK_LLM=1) explicitly to use it", g.llmCfg.Provider))
	}
	if g.client == nil {
		return domain.NewConfigurationError("no model client configured")
	}
	return nil
}

func (g *Generator) transition(log *zap.Logger, from, to state, attempt int) {
	log.Debug("Generation state transition",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Int("attempt", attempt))
}

func resultLabel(err error) string {
	return strings.ToLower(string(domain.CodeOf(err)))
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
