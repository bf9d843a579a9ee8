package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/sieve/internal/config"
	"github.com/MikeSquared-Agency/sieve/internal/runner"
	"github.com/MikeSquared-Agency/sieve/internal/screen"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

// cfg is loaded before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "sieve",
	Short: "Drop telehealth dialogues that lost their media attachments",
	Long: "sieve scans a labeled telehealth dialogue corpus and removes dialogues\n" +
		"where the doctor refers to a photo, voice message or video that the\n" +
		"patient's side of the transcript never mentions.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg = config.Load()
		if rootFlags.logLevel != "" {
			cfg.LogLevel = rootFlags.logLevel
		}
		if rootFlags.logFormat != "" {
			cfg.LogFormat = rootFlags.logFormat
		}
		setupLogging(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default $LOG_LEVEL or info)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: json or text (default $LOG_FORMAT or json)")

	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.Version = version
}

func newRunner(cmd *cobra.Command, dryRun bool) *runner.Runner {
	return runner.New(
		runner.Config{DryRun: dryRun},
		screen.Default(),
		cmd.OutOrStdout(),
		slog.Default().With("component", "runner"),
	)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
