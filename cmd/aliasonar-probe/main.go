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
		Name:    version.Name(),
		Usage:   "Acoustic super-Nyquist ranging probe",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			calibrateCommand(),
			analyzeCommand(),
			chirpCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
