package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"wikiquiz/internal/app"
	"wikiquiz/internal/domain"
	"wikiquiz/internal/dto"
	"wikiquiz/internal/logger"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var generateCmd = &cobra.Command{
	Use:   "generate <url>...",
	Short: "Generate quizzes for one or more article URLs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		save, _ := cmd.Flags().GetBool("save")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := cmd.Context()
		components, err := app.Build(ctx, cfg, logger.Get(), app.Options{Storage: save})
		if err != nil {
			return err
		}
		defer components.Close()

		run := func(ctx context.Context, url string) (any, error) {
			if save {
				stored, err := components.Service.GenerateFromURL(ctx, url)
				if err != nil {
					return nil, err
				}
				return dto.ToQuizResponse(stored), nil
			}
			return components.Service.GenerateDocument(ctx, url)
		}

		results := runBatch(ctx, args, concurrency, run)
		if err := writeResults(cmd.OutOrStdout(), results); err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if r.Error != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d generations failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntP("concurrency", "c", 2, "Maximum number of articles processed at once")
	generateCmd.Flags().Bool("save", false, "Persist generated quizzes to the configured database")
}

// batchResult is the outcome for one URL; exactly one of Quiz and Error is set.
type batchResult struct {
	URL   string             `json:"url"`
	Quiz  any                `json:"quiz,omitempty"`
	Error *dto.ErrorResponse `json:"error,omitempty"`
}

// runBatch runs fn for every URL with at most concurrency calls in flight.
// A failed URL does not cancel the others. Results keep the input order.
func runBatch(ctx context.Context, urls []string, concurrency int, fn func(context.Context, string) (any, error)) []batchResult {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]batchResult, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, url := range urls {
		g.Go(func() error {
			quiz, err := fn(ctx, url)
			results[i] = batchResult{URL: url, Quiz: quiz}
			if err != nil {
				results[i].Quiz = nil
				results[i].Error = &dto.ErrorResponse{
					Code:    string(domain.CodeOf(err)),
					Message: err.Error(),
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func writeResults(w io.Writer, results []batchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(results)
}
