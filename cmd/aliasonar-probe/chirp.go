package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rangefold/aliasonar/internal/chirp"
	"github.com/rangefold/aliasonar/internal/wavio"
)

var errChirpArgs = errors.New("expected exactly one argument: out.wav")

func chirpCommand() *cli.Command {
	return &cli.Command{
		Name:      "chirp",
		Usage:     "Render the playback waveform the audio subsystem should play and record",
		ArgsUsage: "<out.wav>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "sample-rate", Value: 48000},
			&cli.IntFlag{Name: "start-hz", Value: 16000},
			&cli.IntFlag{Name: "end-hz", Value: 20000},
			&cli.IntFlag{Name: "chirp-length", Value: 2400},
			&cli.IntFlag{Name: "guard-length", Value: 1200},
			&cli.IntFlag{Name: "lead-samples", Value: 24000},
			&cli.IntFlag{Name: "cycles", Value: 200},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errChirpArgs, cmd.NArg())
			}

			params := chirp.DefaultPlayback()
			params.Chirp.SampleRate = cmd.Int("sample-rate")
			params.Chirp.StartHz = float64(cmd.Int("start-hz"))
			params.Chirp.EndHz = float64(cmd.Int("end-hz"))
			params.Chirp.Length = cmd.Int("chirp-length")
			params.GuardSamples = cmd.Int("guard-length")
			params.LeadSamples = cmd.Int("lead-samples")
			params.Cycles = cmd.Int("cycles")

			buf := chirp.Playback(params)

			file, err := os.Create(cmd.Args().First()) //nolint:gosec // CLI tool writes user-specified output path
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer file.Close()

			if err := wavio.Write(file, buf, params.Chirp.SampleRate); err != nil {
				return fmt.Errorf("writing playback waveform: %w", err)
			}

			fmt.Fprintf(os.Stderr, "wrote %d samples (%.2fs) to %s\n",
				len(buf), float64(len(buf))/float64(params.Chirp.SampleRate), cmd.Args().First())

			return nil
		},
	}
}
