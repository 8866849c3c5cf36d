// Package coherence implements experiment 2: range coherence, the pivotal
// test proving that 8-16 kHz energy is the second-harmonic alias and not
// incidental correlated noise. Random noise correlates equally with
// either sweep direction; a true alias, having been frequency-doubled and
// folded through Nyquist, must present as a 16->8 kHz downchirp and
// correlate preferentially with the matching reference.
package coherence

import (
	"github.com/rangefold/aliasonar/internal/average"
	"github.com/rangefold/aliasonar/internal/dsp/xcorr"
	"github.com/rangefold/aliasonar/internal/experiment/shared"
	"github.com/rangefold/aliasonar/internal/types"
)

// Options bundles the tuning constants experiment 2 needs, kept out of
// the function signature proper since they are shared with experiment 3.
type Options struct {
	FFTSize             int
	SkipLag             int
	MaxCalShift         int
	PeakOverNoiseThresh float64
	DirectionThresh     float64
	SpeedOfSoundMPerSec float64
}

// Run coherently averages recording over onsets, bandpass-filters and
// (if cal is non-nil) calibration-subtracts the averaged segment into
// fundamental/alias bands, then cross-correlates the alias band against
// both the predicted alias reference and the wrong-direction reference,
// skipping the first opts.SkipLag lags of each correlation. It passes iff
// the correct-direction peak both clears the correlation noise floor by
// opts.PeakOverNoiseThresh and beats the wrong-direction peak by
// opts.DirectionThresh.
func Run(
	recording []float64,
	onsets types.Onsets,
	playback types.PlaybackParams,
	segLen int,
	cal *types.CalibrationTemplate,
	opts Options,
) types.RangeCoherence {
	avg := average.Average(recording, onsets, segLen)
	if avg.ValidCycles == 0 {
		return types.RangeCoherence{}
	}

	bands := shared.PrepareBands(avg.Samples, cal, playback.Chirp.SampleRate, opts.FFTSize, opts.MaxCalShift)

	aliasRef := shared.AliasReference(playback.Chirp)
	wrongRef := shared.WrongDirectionReference(playback.Chirp)

	corrCorrect := xcorr.CrossCorrelate(bands.Alias, aliasRef)
	corrWrong := xcorr.CrossCorrelate(bands.Alias, wrongRef)

	pAlias, vCorrect := xcorr.Peak(corrCorrect, opts.SkipLag)
	_, vWrong := xcorr.Peak(corrWrong, opts.SkipLag)

	noiseFloor := xcorr.MedianAbs(corrCorrect)

	peakOverNoise := 0.0
	if noiseFloor > 0 {
		peakOverNoise = vCorrect / noiseFloor
	}

	directionRatio := 0.0
	if vWrong > 0 {
		directionRatio = vCorrect / vWrong
	}

	const speedOfSoundFloor = 0.0

	distanceMM := float64(pAlias) / float64(playback.Chirp.SampleRate) * opts.SpeedOfSoundMPerSec / 2 * 1000
	if opts.SpeedOfSoundMPerSec <= speedOfSoundFloor {
		distanceMM = 0
	}

	passed := peakOverNoise > opts.PeakOverNoiseThresh && directionRatio > opts.DirectionThresh

	return types.RangeCoherence{
		PeakSample:        pAlias,
		DistanceMM:        distanceMM,
		AliasPeakStrength: peakOverNoise,
		DirectionRatio:    directionRatio,
		Passed:            passed,
	}
}
