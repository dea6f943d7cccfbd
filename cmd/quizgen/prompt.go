package main

import (
	"fmt"
	"os"
	"time"

	"wikiquiz/internal/adapter/scraper"
	"wikiquiz/internal/logger"
	"wikiquiz/internal/quizgen"
	"wikiquiz/internal/service"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <url>",
	Short: "Print the model prompt rendered for an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		title, _ := cmd.Flags().GetString("title")
		contentFile, _ := cmd.Flags().GetString("content-file")

		if contentFile != "" {
			content, err := os.ReadFile(contentFile)
			if err != nil {
				return fmt.Errorf("read content file: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), quizgen.BuildPrompt(url, title, string(content)))
			return err
		}

		if err := service.ValidateWikipediaURL(url); err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		source := scraper.NewWikipediaSource(cfg.Scraper, nil, time.Hour, logger.Get())
		article, err := source.Fetch(cmd.Context(), url)
		if err != nil {
			return err
		}
		if title == "" {
			title = article.Title
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), quizgen.BuildPrompt(url, title, article.Content))
		return err
	},
}

func init() {
	promptCmd.Flags().String("title", "", "Article title (defaults to the fetched page title)")
	promptCmd.Flags().String("content-file", "", "Render with this file's text instead of fetching the article")
}
