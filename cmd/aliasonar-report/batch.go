//nolint:wrapcheck
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/urfave/cli/v3"

	"github.com/rangefold/aliasonar"
	"github.com/rangefold/aliasonar/internal/output"
	"github.com/rangefold/aliasonar/internal/preflight"
	"github.com/rangefold/aliasonar/internal/types"
	"github.com/rangefold/aliasonar/internal/wavio"
)

const outputFile = "aliasonar-report.jsonl"

var (
	errNotDirectory = errors.New("not a directory")
	errNoWavFiles   = errors.New("no .wav files found")
)

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Analyze every .wav recording in a directory and write a JSONL report",
		ArgsUsage: "<folder>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "calibration",
				Usage: "Path to a calibration template JSON shared across every recording",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "Number of concurrent workers",
				Value:   runtime.NumCPU(),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("expected exactly one argument: folder path, got %d", cmd.NArg())
			}

			workers := max(cmd.Int("workers"), 1)

			return runBatch(cmd.Args().First(), cmd.String("calibration"), workers)
		},
	}
}

// runBatch fans out one Analyze call per recording across a bounded
// worker pool. Each call is independent and reads only its own
// recording plus the shared, read-only calibration template — the
// pipeline's reentrancy-across-sessions guarantee is exactly what makes
// this safe to parallelize.
func runBatch(folder, calibrationPath string, workers int) error {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%q: %w", folder, errNotDirectory)
	}

	files, err := collectWavFiles(folder)
	if err != nil {
		return fmt.Errorf("scanning folder: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("%q: %w", folder, errNoWavFiles)
	}

	var cal *aliasonar.CalibrationTemplate

	if calibrationPath != "" {
		cal, err = readCalibration(calibrationPath)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "found %d recordings (%d workers)\n", len(files), workers)

	records := make([]Record, len(files))

	var progress atomic.Int64

	sem := make(chan struct{}, workers)

	var waitGroup sync.WaitGroup

	for idx, path := range files {
		waitGroup.Add(1)

		go func(idx int, path string) {
			defer waitGroup.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			records[idx] = analyzeOne(path, cal)

			done := progress.Add(1)
			fmt.Fprintf(os.Stderr, "\r%d/%d", done, len(files))
		}(idx, path)
	}

	waitGroup.Wait()
	fmt.Fprintln(os.Stderr)

	return writeRecords(outputFile, records)
}

func analyzeOne(path string, cal *aliasonar.CalibrationTemplate) Record {
	file, err := os.Open(path) //nolint:gosec // CLI tool scans a user-specified folder
	if err != nil {
		return Record{File: path, Error: err.Error()}
	}
	defer file.Close()

	samples, format, err := wavio.Read(file)
	if err != nil {
		return Record{File: path, Error: err.Error()}
	}

	if len(samples) == 0 {
		return Record{File: path, Error: types.ErrRecordingEmpty.Error()}
	}

	warnings := preflight.Run(samples).Warnings()

	opts := aliasonar.DefaultOptions()
	opts.Chirp.SampleRate = format.SampleRate
	opts.Playback.Chirp.SampleRate = format.SampleRate

	result := aliasonar.Analyze(samples, opts.Playback, cal, opts)

	return Record{File: path, Probe: output.ResultToMap(result), Warnings: warnings}
}

func collectWavFiles(folder string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(folder, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if strings.EqualFold(filepath.Ext(path), ".wav") {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

func writeRecords(path string, records []Record) error {
	file, err := os.Create(path) //nolint:gosec // CLI tool writes its own working file
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)

	for _, rec := range records {
		if err := encoder.Encode(rec); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "wrote %s\n", path)

	return nil
}

func readCalibration(path string) (*aliasonar.CalibrationTemplate, error) {
	data, err := os.ReadFile(path) //nolint:gosec // CLI tool opens user-specified files
	if err != nil {
		return nil, fmt.Errorf("reading calibration template: %w", err)
	}

	var cal aliasonar.CalibrationTemplate
	if err := json.Unmarshal(data, &cal); err != nil {
		return nil, fmt.Errorf("parsing calibration template: %w", err)
	}

	if len(cal.Segment) == 0 {
		return nil, fmt.Errorf("%q: %w", path, types.ErrNoCalibration)
	}

	return &cal, nil
}
