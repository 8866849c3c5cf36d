package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rangefold/aliasonar"
	"github.com/rangefold/aliasonar/internal/output"
	"github.com/rangefold/aliasonar/internal/preflight"
	"github.com/rangefold/aliasonar/internal/types"
	"github.com/rangefold/aliasonar/internal/wavio"
)

var errAnalyzeArgs = errors.New("expected exactly one argument: recording.wav")

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Run the three ranging experiments over a recording",
		ArgsUsage: "<recording.wav>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "calibration",
				Usage: "Path to a calibration template JSON produced by the calibrate command",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json",
				Value:   "console",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errAnalyzeArgs, cmd.NArg())
			}

			recording, sampleRate, err := readRecording(cmd.Args().First())
			if err != nil {
				return err
			}

			for _, warning := range preflight.Run(recording).Warnings() {
				fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
			}

			var cal *aliasonar.CalibrationTemplate

			if path := cmd.String("calibration"); path != "" {
				cal, err = readCalibration(path)
				if err != nil {
					return err
				}
			}

			opts := aliasonar.DefaultOptions()
			opts.Chirp.SampleRate = sampleRate
			opts.Playback.Chirp.SampleRate = sampleRate

			result := aliasonar.Analyze(recording, opts.Playback, cal, opts)

			return printResult(result, cmd.String("format"))
		},
	}
}

func readRecording(path string) ([]float64, int, error) {
	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified audio files
	if err != nil {
		return nil, 0, fmt.Errorf("opening recording: %w", err)
	}
	defer file.Close()

	samples, format, err := wavio.Read(file)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding recording: %w", err)
	}

	if len(samples) == 0 {
		return nil, 0, types.ErrRecordingEmpty
	}

	return samples, format.SampleRate, nil
}

func printResult(result *aliasonar.ProbeResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(output.ResultToMap(result), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}

		fmt.Println(string(data))
	default:
		fmt.Print(output.Console(result))
	}

	return nil
}
