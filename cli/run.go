package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/use-agent/chartshot/batch"
	"github.com/use-agent/chartshot/config"
	"github.com/use-agent/chartshot/render"
)

func addRunCommand(parent *cobra.Command) {
	var (
		input       string
		output      string
		urlColumn   string
		retryFailed bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process a CSV of URLs into an artifact bundle per URL",
		Long: `Render every URL in the input CSV and write its artifacts under the
output directory:

  <output>/results.json          outcome ledger, rewritten after each URL
  <output>/html/<slug>.html      rendered HTML
  <output>/images/<slug>_*.png   chart or full-page screenshot

URLs already present in results.json are skipped, so an interrupted batch
resumes where it left off. By default that includes URLs whose previous
attempt failed; pass --retry-failed to attempt those again.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd.Context(), input, output, urlColumn, retryFailed)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input CSV of URLs (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "output", "output root directory")
	cmd.Flags().StringVar(&urlColumn, "url-column", "url", "name of the URL column in the input CSV")
	cmd.Flags().BoolVar(&retryFailed, "retry-failed", false, "re-attempt URLs whose previous run failed")
	_ = cmd.MarkFlagRequired("input")

	parent.AddCommand(cmd)
}

func runBatch(ctx context.Context, input, output, urlColumn string, retryFailed bool) error {
	cfg := config.Load()
	if retryFailed {
		cfg.Batch.RetryFailed = true
	}

	urls, err := batch.ReadURLs(input, urlColumn)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		fmt.Println("Input CSV is empty, nothing to do.")
		return nil
	}

	slog.Info("starting batch",
		"input", input,
		"output", output,
		"urls", len(urls),
		"retryFailed", cfg.Batch.RetryFailed,
	)

	engine, err := render.NewEngine(cfg.Browser, cfg.Capture)
	if err != nil {
		return err
	}
	defer engine.Close()

	driver := batch.NewDriver(engine, cfg.Batch, nil)
	return driver.Run(ctx, urls, output)
}
