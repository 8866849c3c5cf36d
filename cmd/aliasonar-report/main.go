package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rangefold/aliasonar/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:    version.Name() + "-report",
		Usage:   "Batch-run the ranging probe across a directory and summarize results",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			batchCommand(),
			digestCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
