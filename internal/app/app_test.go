package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"
	"wikiquiz/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DB: config.DBConfig{
			Driver: "sqlite",
			DSN:    "file:" + filepath.Join(t.TempDir(), "app.db"),
		},
		LLM: config.LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
			Timeout:  5 * time.Second,
		},
		Scraper: config.ScraperConfig{UserAgent: "test", Timeout: time.Second},
	}
}

func testRequest() domain.QuizRequest {
	return domain.QuizRequest{
		URL:     "https://en.wikipedia.org/wiki/Go",
		Title:   "Go",
		Content: strings.Repeat("Go is a programming language. ", 20),
	}
}

func TestBuild_MockModelWithStorage(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.LLM.UseMock = true
	m := metrics.New()

	a, err := Build(ctx, cfg, zap.NewNop(), Options{Storage: true, Metrics: m})
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.DB())

	doc, err := a.Generator.Generate(ctx, testRequest())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(doc.Quiz), 5)

	count, err := testutil.GatherAndCount(m.Registry(), "wikiquiz_generation_results_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	items, total, err := a.Service.History(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func TestBuild_MissingCredentialStillStarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := Build(ctx, cfg, zap.NewNop(), Options{})
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.DB())

	_, err = a.Generator.Generate(ctx, testRequest())
	require.Error(t, err)
	assert.Equal(t, domain.CodeConfiguration, domain.CodeOf(err))
}

func TestBuild_UnreachableRedisIsOptional(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.UseMock = true
	cfg.Redis.Address = "127.0.0.1:1"

	a, err := Build(context.Background(), cfg, zap.NewNop(), Options{})
	require.NoError(t, err)
	assert.NoError(t, a.Close())
}

func TestBuild_BadDatabaseDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Driver = "mysql"

	_, err := Build(context.Background(), cfg, zap.NewNop(), Options{Storage: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}
