package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/config"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/logger"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/store"
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wikiquiz",
	Short: "Generate quizzes from Wikipedia articles",
	Long: `wikiquiz turns an English Wikipedia article into a six-question multiple-choice
quiz using an LLM, caches articles and quizzes in SQLite, and serves them over
HTTP or in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		level := cfg.LogLevel
		if l, _ := cmd.Flags().GetString("log-level"); l != "" {
			level = l
		}
		logger.Init(level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, "")
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WIKIQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides WIKIQUIZ_LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(quizzesCmd)
	rootCmd.AddCommand(attemptCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path from the --db flag, then
// WIKIQUIZ_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
