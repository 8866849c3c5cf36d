package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rangefold/aliasonar"
	"github.com/rangefold/aliasonar/internal/types"
)

var errCalibrateArgs = errors.New("expected exactly one argument: recording.wav")

func calibrateCommand() *cli.Command {
	return &cli.Command{
		Name:      "calibrate",
		Usage:     "Build a direct-path calibration template from a no-reflector recording",
		ArgsUsage: "<recording.wav>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "Path to write the calibration template JSON",
				Value: "calibration.json",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errCalibrateArgs, cmd.NArg())
			}

			recording, sampleRate, err := readRecording(cmd.Args().First())
			if err != nil {
				return err
			}

			opts := aliasonar.DefaultOptions()
			opts.Chirp.SampleRate = sampleRate
			opts.Playback.Chirp.SampleRate = sampleRate

			cal := aliasonar.Calibrate(recording, opts.Playback, opts)

			return writeCalibration(cmd.String("out"), cal)
		},
	}
}

func writeCalibration(path string, cal *aliasonar.CalibrationTemplate) error {
	data, err := json.MarshalIndent(cal, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding calibration template: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing calibration template: %w", err)
	}

	fmt.Fprintf(os.Stderr, "wrote calibration template to %s\n", path)

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
