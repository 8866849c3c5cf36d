// Package aliasonar implements the acoustic super-Nyquist ranging
// pipeline: chirp synthesis, coherent per-cycle averaging, band
// isolation, calibration subtraction, matched filtering, and the three
// experiments that together demonstrate resolution beyond the 4 kHz
// fundamental bandwidth of a 16-20 kHz chirp.
//
// The pipeline is a pure, single-threaded function of its arguments: it
// suspends on nothing, mutates no shared state, and is reentrant across
// independent sessions. The audio I/O subsystem and user interface are
// external collaborators, out of scope for this package.
package aliasonar

import (
	"github.com/rangefold/aliasonar/internal/chirp"
	"github.com/rangefold/aliasonar/internal/experiment/coherence"
	"github.com/rangefold/aliasonar/internal/types"
)

// Options configures the tunable constants of the pipeline. The onset
// refinement window (onset.RefineWindow) and the band edges are fixed
// constants and are not part of Options. The zero value is not useful;
// call DefaultOptions and override individual fields as needed.
type Options struct {
	Chirp    types.ChirpParams
	Playback types.PlaybackParams

	SegmentMargin int // M, samples past the chirp duration
	FFTSize       int // N_fft
	SkipLag       int // skip_lag
	MaxCalShift   int // max_cal_shift

	SNRThresholdDB         float64
	PeakOverNoiseThreshold float64
	DirectionThreshold     float64
	SpeedOfSoundMPerSec    float64
}

// DefaultOptions returns the operational parameters from the system
// specification: f_s=48000, L_c=2400, L_guard=1200, N_cycles=200,
// L_lead=24000, M=600, N_fft=4096, skip_lag=20, max_cal_shift=10,
// SNR threshold=3.0dB, peak/noise threshold=2.0, direction threshold=1.5,
// speed of sound 343 m/s.
func DefaultOptions() Options {
	return Options{
		Chirp:    chirp.DefaultParams(),
		Playback: chirp.DefaultPlayback(),

		SegmentMargin: 600,
		FFTSize:       4096,
		SkipLag:       20,
		MaxCalShift:   10,

		SNRThresholdDB:         3.0,
		PeakOverNoiseThreshold: 2.0,
		DirectionThreshold:     1.5,
		SpeedOfSoundMPerSec:    343,
	}
}

// segmentLength returns L_seg = L_c + M.
func (o Options) segmentLength() int {
	return o.Chirp.Length + o.SegmentMargin
}

func (o Options) coherenceOptions() coherence.Options {
	return coherence.Options{
		FFTSize:             o.FFTSize,
		SkipLag:             o.SkipLag,
		MaxCalShift:         o.MaxCalShift,
		PeakOverNoiseThresh: o.PeakOverNoiseThreshold,
		DirectionThresh:     o.DirectionThreshold,
		SpeedOfSoundMPerSec: o.SpeedOfSoundMPerSec,
	}
}
