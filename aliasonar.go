package aliasonar

import (
	"github.com/rangefold/aliasonar/internal/average"
	"github.com/rangefold/aliasonar/internal/experiment/alias"
	"github.com/rangefold/aliasonar/internal/experiment/coherence"
	"github.com/rangefold/aliasonar/internal/experiment/resolution"
	"github.com/rangefold/aliasonar/internal/onset"
	"github.com/rangefold/aliasonar/internal/types"
)

// AliasDetection is experiment 1's result: see internal/types for fields.
type AliasDetection = types.AliasDetection

// RangeCoherence is experiment 2's result: see internal/types for fields.
type RangeCoherence = types.RangeCoherence

// Resolution is experiment 3's result: see internal/types for fields.
type Resolution = types.Resolution

// CalibrationTemplate is the stored direct-path response produced by
// Calibrate and consumed by Analyze.
type CalibrationTemplate = types.CalibrationTemplate

// ProbeResult bundles the outcome of all three experiments run over one
// recording.
type ProbeResult struct {
	Alias        AliasDetection
	Coherence    RangeCoherence
	Resolution   Resolution
	AllConfirmed bool
}

// Calibrate runs the coherent averager on a no-reflector recording and
// returns the averaged segment as a direct-path calibration template,
// to be passed into every subsequent Analyze call for this session.
func Calibrate(recording []float64, params types.PlaybackParams, opts Options) *CalibrationTemplate {
	onsets := onset.Detect(recording, params)
	avg := average.Average(recording, onsets, opts.segmentLength())

	return &CalibrationTemplate{
		Segment:    avg.Samples,
		SampleRate: params.Chirp.SampleRate,
	}
}

// Analyze runs all three experiments over recording: alias detection,
// range coherence, and resolution improvement. cal may be nil, in which
// case every experiment runs on raw, uncalibrated band signals — no
// exceptions are raised either way. Degenerate inputs (too short, no
// onsets, every cycle out of bounds) surface as Passed=false results
// with zeroed/epsilon-floored fields rather than an error; the pipeline
// never aborts early and always runs all three experiments.
func Analyze(recording []float64, params types.PlaybackParams, cal *CalibrationTemplate, opts Options) *ProbeResult {
	onsets := onset.Detect(recording, params)
	segLen := opts.segmentLength()

	aliasResult := alias.Detect(recording, onsets, params, opts.FFTSize, opts.SNRThresholdDB)
	coherenceResult := coherence.Run(recording, onsets, params, segLen, cal, opts.coherenceOptions())
	resolutionResult := resolution.Run(recording, onsets, params, segLen, cal, opts.coherenceOptions())

	return &ProbeResult{
		Alias:      aliasResult,
		Coherence:  coherenceResult,
		Resolution: resolutionResult,
		AllConfirmed: aliasResult.Passed &&
			coherenceResult.Passed &&
			resolutionResult.Passed,
	}
}
