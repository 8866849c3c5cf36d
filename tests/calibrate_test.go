package tests_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/rangefold/aliasonar/tests/testutils"
)

func tempOutputPath(name string) string {
	dir, err := os.MkdirTemp("", "aliasonar-out-")
	if err != nil {
		panic(err)
	}

	return filepath.Join(dir, name)
}

func TestCalibrateThenAnalyze(t *testing.T) {
	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "calibrate writes a template that analyze can consume",
			Setup: func(data test.Data, _ test.Helpers) {
				data.Labels().Set("recording", fundamentalOnlyRecording())
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				out := tempOutputPath("calibration.json")

				return helpers.Command("calibrate", "--out", out, data.Labels().Get("recording"))
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Errors:   []error{errors.New("wrote calibration template")},
				}
			},
		},
	}

	testCase.Run(t)
}

func TestChirpRendersPlaybackWaveform(t *testing.T) {
	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "chirp command renders a playback wav file",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("chirp", tempOutputPath("playback.wav"))
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Errors:   []error{errors.New("wrote")},
				}
			},
		},
	}

	testCase.Run(t)
}
