// Package app wires configuration into the running quiz pipeline. Both the
// HTTP server and the CLI build their dependencies here.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wikiquiz/internal/adapter"
	"wikiquiz/internal/adapter/llm"
	"wikiquiz/internal/adapter/scraper"
	"wikiquiz/internal/cache"
	"wikiquiz/internal/config"
	"wikiquiz/internal/database"
	"wikiquiz/internal/domain"
	"wikiquiz/internal/metrics"
	"wikiquiz/internal/quizgen"
	"wikiquiz/internal/repository"
	"wikiquiz/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultArticleTTL = 6 * time.Hour
	defaultQuizTTL    = 24 * time.Hour
)

// Options selects the optional parts of the wiring.
type Options struct {
	// Storage opens the database and runs migrations. Without it the
	// service can only generate documents.
	Storage bool
	// Metrics, when non-nil, records generation outcomes.
	Metrics *metrics.Metrics
	// ArticleClient, when non-nil, downloads articles instead of the
	// default client.
	ArticleClient *http.Client
}

// App holds the wired components and the resources that need closing.
type App struct {
	Service   service.QuizService
	Generator *quizgen.Generator

	db    *sqlx.DB
	redis *redis.Client
}

// Build wires the pipeline. A model configuration problem is logged and
// leaves the generator without a client so that every generation reports
// CONFIGURATION_ERROR; the server still starts.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*App, error) {
	a := &App{}

	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			// The cache is an optimization; run without it.
			logger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			logger.Info("Successfully connected to Redis")
			a.redis = client
			cacheAdapter = adapter.NewRedisCacheAdapter(client)
		}
	}

	var repo domain.QuizRepository
	if opts.Storage {
		db, err := database.OpenFromConfig(ctx, cfg, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		if err := database.RunMigrations(ctx, db, cfg.DB.Driver, logger); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		repo = repository.NewQuizDatabaseAdapter(db)
	}

	source := scraper.NewWikipediaSource(cfg.Scraper, cacheAdapter,
		cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Article, defaultArticleTTL), logger)
	if opts.ArticleClient != nil {
		source.WithHTTPClient(opts.ArticleClient)
	}

	client, err := llm.NewModelClient(ctx, cfg.LLM, logger)
	if err != nil {
		if domain.CodeOf(err) != domain.CodeConfiguration {
			a.Close()
			return nil, err
		}
		logger.Error("Model client is not configured, quiz generation will fail", zap.Error(err))
		client = nil
	}

	var recorder quizgen.Recorder
	if opts.Metrics != nil {
		recorder = opts.Metrics
	}
	a.Generator = quizgen.NewGenerator(client, cfg.LLM, recorder, logger)
	a.Service = service.NewQuizService(source, a.Generator, repo, cacheAdapter,
		cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Quiz, defaultQuizTTL))
	return a, nil
}

// DB returns the database handle, or nil when storage was not requested.
func (a *App) DB() *sqlx.DB {
	return a.db
}

// Close releases the database and redis connections.
func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	return errors.Join(errs...)
}
