package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"trackpulse/internal/config"
	"trackpulse/internal/logging"
	"trackpulse/internal/types"
)

var (
	// Global flags
	verbose    bool
	configPath string
	timeout    time.Duration

	// Logger
	logger *zap.Logger

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trackpulse",
	Short: "trackpulse - project tracking spreadsheet assistant",
	Long: `trackpulse ingests project tracking spreadsheets into a local vector
index and answers questions about them.

Columns are classified by role (project, assignee, activity, progress,
notes, dates) from bilingual header keywords, each row becomes a
descriptive passage with structured metadata, and questions are answered
by retrieving the most similar passages and grounding a language model
on them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := logging.Initialize(cfg.Logging); err != nil {
			logger.Warn("file logging disabled", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Close()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "trackpulse.yaml", "Config file path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(delaysCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(clearCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

// renderError maps the typed failures to operator-facing messages. The
// structural kinds carry their own remediation hint.
func renderError(err error) string {
	var structural *types.StructuralError
	if errors.As(err, &structural) {
		if structural.Remediation != "" {
			return fmt.Sprintf("Error: %v\nSuggestion: %s", structural, structural.Remediation)
		}
		return fmt.Sprintf("Error: %v", structural)
	}

	var upstream *types.UpstreamError
	if errors.As(err, &upstream) {
		return fmt.Sprintf("Error: the %s service failed: %v\nCheck connectivity and credentials, then retry.",
			upstream.Service, upstream.Err)
	}

	var notFound *types.NotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("Error: no indexed activities found for %q. Ingest its spreadsheet first.",
			notFound.Subject)
	}

	if errors.Is(err, types.ErrEmptyQuery) {
		return "Error: the query is empty. Provide a question or project name."
	}

	return fmt.Sprintf("Error: %v", err)
}
