package main

import (
	"fmt"
	"strings"

	"wikiquiz/internal/config"
	"wikiquiz/internal/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "quizgen",
	Short:         "Generate quizzes from Wikipedia articles",
	Long:          "quizgen runs the quiz generation pipeline from the command line using the server's configuration.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("mock", false, "Use the offline mock model (same as USE_MOCK_LLM=1)")
	rootCmd.PersistentFlags().String("provider", "", "Model provider override: gemini, openai or ollama")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(promptCmd)
}

// loadConfig reads the shared configuration, applies flag overrides and
// initializes logging on stderr so stdout carries only command output.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	mock, _ := cmd.Flags().GetBool("mock")
	provider, _ := cmd.Flags().GetString("provider")

	cfg, err := config.LoadConfig(func(c *config.Config) {
		if mock {
			c.LLM.UseMock = true
		}
		if provider != "" && !strings.EqualFold(provider, c.LLM.Provider) {
			// Key and model configured for the other provider do not carry over.
			c.LLM.Provider = provider
			c.LLM.APIKey = ""
			c.LLM.Model = ""
		}
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.Logger.Stderr = true
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return cfg, nil
}
