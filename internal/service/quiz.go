package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"wikiquiz/internal/cache"
	"wikiquiz/internal/domain"
	"wikiquiz/internal/logger"

	"go.uber.org/zap"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	// GenerateFromURL fetches the article, generates a quiz and stores it.
	GenerateFromURL(ctx context.Context, articleURL string) (*domain.StoredQuiz, error)
	// GenerateDocument runs the same pipeline without storing the result.
	GenerateDocument(ctx context.Context, articleURL string) (*domain.QuizDocument, error)
	GetQuiz(ctx context.Context, id string) (*domain.StoredQuiz, error)
	// History returns one page of summaries, newest first, and the total count.
	History(ctx context.Context, limit, offset int) ([]*domain.QuizSummary, int, error)
}

// quizService implements QuizService
type quizService struct {
	source    domain.ArticleSource
	generator domain.QuizGenerator
	repo      domain.QuizRepository
	cache     domain.Cache
	cacheTTL  time.Duration
}

// NewQuizService creates a new instance of quizService. quizCache may be nil.
func NewQuizService(
	source domain.ArticleSource,
	generator domain.QuizGenerator,
	repo domain.QuizRepository,
	quizCache domain.Cache,
	cacheTTL time.Duration,
) QuizService {
	return &quizService{
		source:    source,
		generator: generator,
		repo:      repo,
		cache:     quizCache,
		cacheTTL:  cacheTTL,
	}
}

// ValidateWikipediaURL accepts absolute http(s) URLs on wikipedia.org or one
// of its subdomains.
func ValidateWikipediaURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return domain.NewInvalidInputError("A valid http(s) URL is required.")
	}
	host := strings.ToLower(u.Hostname())
	if host != "wikipedia.org" && !strings.HasSuffix(host, ".wikipedia.org") {
		return domain.NewInvalidInputError("Only Wikipedia URLs are supported.")
	}
	return nil
}

func (s *quizService) GenerateDocument(ctx context.Context, articleURL string) (*domain.QuizDocument, error) {
	articleURL = strings.TrimSpace(articleURL)
	if err := ValidateWikipediaURL(articleURL); err != nil {
		return nil, err
	}

	article, err := s.source.Fetch(ctx, articleURL)
	if err != nil {
		logger.Get().Error("Failed to fetch article", zap.String("url", articleURL), zap.Error(err))
		return nil, err
	}

	doc, err := s.generator.Generate(ctx, domain.QuizRequest{
		URL:     articleURL,
		Title:   article.Title,
		Content: article.Content,
	})
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(doc.Title) == "" {
		doc.Title = article.Title
	}
	if strings.TrimSpace(doc.URL) == "" {
		doc.URL = articleURL
	}
	return doc, nil
}

func (s *quizService) GenerateFromURL(ctx context.Context, articleURL string) (*domain.StoredQuiz, error) {
	doc, err := s.GenerateDocument(ctx, articleURL)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Save(ctx, doc)
	if err != nil {
		logger.Get().Error("Failed to save quiz", zap.String("url", articleURL), zap.Error(err))
		return nil, err
	}

	logger.Get().Info("Quiz stored",
		zap.String("id", stored.ID),
		zap.String("url", stored.URL),
		zap.Int("questions", len(doc.Quiz)))
	s.cacheQuiz(ctx, stored)
	return stored, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id string) (*domain.StoredQuiz, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewInvalidInputError("quiz id is required")
	}

	if s.cache != nil {
		var cached domain.StoredQuiz
		err := cache.GetJSON(ctx, s.cache, cache.QuizKey(id), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Quiz cache read failed", zap.String("id", id), zap.Error(err))
		}
	}

	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheQuiz(ctx, stored)
	return stored, nil
}

func (s *quizService) History(ctx context.Context, limit, offset int) ([]*domain.QuizSummary, int, error) {
	limit, offset = NormalizePage(limit, offset)

	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// NormalizePage applies the history paging defaults and bounds.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *quizService) cacheQuiz(ctx context.Context, stored *domain.StoredQuiz) {
	if s.cache == nil {
		return
	}
	if err := cache.SetJSON(ctx, s.cache, cache.QuizKey(stored.ID), stored, s.cacheTTL); err != nil {
		logger.Get().Warn("Failed to cache quiz", zap.String("id", stored.ID), zap.Error(err))
	}
}
