// Package cli provides the command-line interface for chartshot.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/use-agent/chartshot/config"
)

// Execute builds the root command and runs it with the given context.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chartshot",
		Short: "Render URLs and capture their dominant chart element",
		Long: `chartshot reads a CSV of URLs, renders each page with headless Chrome,
and saves per URL: the fully rendered HTML, a screenshot of the page's
largest SVG element (falling back to a full-page shot), its accessibility
label, and an outcome record in a resumable results.json ledger.`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			initLogger(config.Load().Log)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addRunCommand(cmd)
	addStatsCommand(cmd)
	return cmd
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
