// Package main provides the entry point for the chartshot CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/use-agent/chartshot/cli"
)

func main() {
	// Ctrl-C stops the batch between URLs; the ledger already holds every
	// completed attempt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
