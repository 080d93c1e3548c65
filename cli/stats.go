package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/use-agent/chartshot/batch"
	"github.com/use-agent/chartshot/models"
)

func addStatsCommand(parent *cobra.Command) {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the outcome ledger of a previous run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(output, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "output", "output root directory of the run")
	parent.AddCommand(cmd)
}

func runStats(root string, w io.Writer) error {
	path := batch.LedgerPath(root)
	ledger, err := batch.LoadLedger(path)
	if err != nil {
		return err
	}

	var ok, failed, withChart, withLabel int
	for _, r := range ledger.Records() {
		if r.Status == models.StatusOK {
			ok++
		} else {
			failed++
		}
		if r.HasChart {
			withChart++
		}
		if r.HasLabel {
			withLabel++
		}
	}

	fmt.Fprintf(w, "Ledger:     %s\n", path)
	fmt.Fprintf(w, "Records:    %d\n", ledger.Len())
	fmt.Fprintf(w, "OK:         %d\n", ok)
	fmt.Fprintf(w, "Errors:     %d\n", failed)
	fmt.Fprintf(w, "With chart: %d\n", withChart)
	fmt.Fprintf(w, "With label: %d\n", withLabel)
	return nil
}
