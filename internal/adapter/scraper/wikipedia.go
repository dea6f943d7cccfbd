package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wikiquiz/internal/cache"
	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultTitle = "Wikipedia Article"

// WikipediaSource downloads a Wikipedia page and extracts its title and
// paragraph text. Extracted articles are optionally cached; model output never
// is.
type WikipediaSource struct {
	httpClient *http.Client
	userAgent  string
	cache      domain.Cache
	cacheTTL   time.Duration
	group      singleflight.Group
	logger     *zap.Logger
}

// NewWikipediaSource creates an ArticleSource. articleCache may be nil.
func NewWikipediaSource(cfg config.ScraperConfig, articleCache domain.Cache, cacheTTL time.Duration, logger *zap.Logger) *WikipediaSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WikipediaSource{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		cache:      articleCache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// WithHTTPClient replaces the client used for downloads. Its timeout, when
// zero, is taken from the configured one.
func (s *WikipediaSource) WithHTTPClient(client *http.Client) *WikipediaSource {
	if client.Timeout == 0 {
		client.Timeout = s.httpClient.Timeout
	}
	s.httpClient = client
	return s
}

// Fetch returns the article at url. Concurrent fetches of the same URL share
// one download.
func (s *WikipediaSource) Fetch(ctx context.Context, url string) (*domain.Article, error) {
	if article, ok := s.cached(ctx, url); ok {
		return article, nil
	}

	// The shared download outlives any single caller; the client timeout bounds it.
	flight := s.group.DoChan(url, func() (interface{}, error) {
		return s.download(context.WithoutCancel(ctx), url)
	})
	var res singleflight.Result
	select {
	case res = <-flight:
	case <-ctx.Done():
		return nil, domain.NewArticleFetchError(url, ctx.Err())
	}
	if res.Err != nil {
		return nil, res.Err
	}
	article := res.Val.(*domain.Article)
	if res.Shared {
		s.logger.Debug("Article download shared between callers", zap.String("url", url))
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, cache.ArticleKey(url), article, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache article", zap.String("url", url), zap.Error(err))
		}
	}

	copied := *article
	return &copied, nil
}

func (s *WikipediaSource) cached(ctx context.Context, url string) (*domain.Article, bool) {
	if s.cache == nil {
		return nil, false
	}
	var article domain.Article
	err := cache.GetJSON(ctx, s.cache, cache.ArticleKey(url), &article)
	if err == nil {
		s.logger.Debug("Article cache hit", zap.String("url", url))
		return &article, true
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn("Article cache read failed", zap.String("url", url), zap.Error(err))
	}
	return nil, false
}

func (s *WikipediaSource) download(ctx context.Context, url string) (*domain.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewArticleFetchError(url, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	started := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewArticleFetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewArticleFetchError(url, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, domain.NewArticleFetchError(url, err)
	}

	article := Extract(doc)
	article.URL = url
	s.logger.Info("Fetched article",
		zap.String("url", url),
		zap.String("title", article.Title),
		zap.Int("content_length", len(article.Content)),
		zap.Duration("elapsed", time.Since(started)))
	return article, nil
}

// Extract pulls the title and body text out of a parsed Wikipedia page. The
// title comes from #firstHeading, then <title>; the text is the non-empty
// paragraphs of #mw-content-text joined by blank lines, or the whole page
// text when there are none.
func Extract(doc *goquery.Document) *domain.Article {
	title := strings.TrimSpace(doc.Find("#firstHeading").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = defaultTitle
	}

	var paragraphs []string
	doc.Find("div#mw-content-text p").Each(func(_ int, p *goquery.Selection) {
		if text := normalizeSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	content := strings.Join(paragraphs, "\n\n")
	if content == "" {
		content = normalizeSpace(doc.Text())
	}

	return &domain.Article{Title: title, Content: content}
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var _ domain.ArticleSource = (*WikipediaSource)(nil)
