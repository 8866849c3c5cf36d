package types

import "errors"

// Sentinel errors returned by the CLI-facing edges of the pipeline
// (WAV ingestion, calibration bootstrapping). Degenerate analysis inputs
// never reach these — they are absorbed as Passed=false results instead,
// per the pipeline's never-abort contract.
var (
	ErrMalformedWAV   = errors.New("malformed WAV container")
	ErrUnsupportedWAV = errors.New("unsupported WAV format (need 16/24/32-bit PCM or 32-bit IEEE float)")
	ErrNoCalibration  = errors.New("no calibration template available")
	ErrRecordingEmpty = errors.New("recording is empty")
)
