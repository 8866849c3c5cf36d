package aliasonar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangefold/aliasonar"
	"github.com/rangefold/aliasonar/internal/chirp"
	"github.com/rangefold/aliasonar/internal/experiment/shared"
	"github.com/rangefold/aliasonar/internal/types"
)

func smallPlayback() (aliasonar.Options, int) {
	opts := aliasonar.DefaultOptions()
	opts.Playback.Cycles = 12

	return opts, opts.Playback.CycleLength()
}

func injectAtEveryOnset(buf []float64, ref []float64, lead, cycleLen, cycles int, gain float64) {
	offset := lead
	for cycle := 0; cycle < cycles; cycle++ {
		for i, v := range ref {
			buf[offset+i] += gain * v
		}

		offset += cycleLen
	}
}

func TestAnalyzePureFundamentalReportsNoAlias(t *testing.T) {
	opts, _ := smallPlayback()

	recording := chirp.Playback(opts.Playback)

	result := aliasonar.Analyze(recording, opts.Playback, nil, opts)

	assert.False(t, result.Alias.Passed)
	assert.False(t, result.AllConfirmed)
}

func TestAnalyzeWithInjectedAliasPassesAliasDetection(t *testing.T) {
	opts, cycleLen := smallPlayback()

	recording := chirp.Playback(opts.Playback)
	aliasRef := shared.AliasReference(opts.Chirp)

	injectAtEveryOnset(recording, aliasRef, opts.Playback.LeadSamples, cycleLen, opts.Playback.Cycles, 0.4)

	result := aliasonar.Analyze(recording, opts.Playback, nil, opts)

	assert.True(t, result.Alias.Passed)
}

// TestAnalyzeWithIndependentlyBuiltAliasChirpPassesAliasDetection injects a
// chirp built directly from hardcoded 16->8 kHz parameters, not from
// shared.AliasReference, so a regression in that function's frequency
// derivation cannot hide behind a test that asks its own generator what
// the right answer is.
func TestAnalyzeWithIndependentlyBuiltAliasChirpPassesAliasDetection(t *testing.T) {
	opts, cycleLen := smallPlayback()

	recording := chirp.Playback(opts.Playback)

	independentAliasRef := chirp.Generate(types.ChirpParams{
		StartHz:    16000,
		EndHz:      8000,
		Length:     opts.Chirp.Length,
		SampleRate: opts.Chirp.SampleRate,
		Amplitude:  1.0,
	})

	injectAtEveryOnset(recording, independentAliasRef, opts.Playback.LeadSamples, cycleLen, opts.Playback.Cycles, 0.4)

	result := aliasonar.Analyze(recording, opts.Playback, nil, opts)

	assert.True(t, result.Alias.Passed)
	assert.True(t, result.Coherence.Passed)
}

// TestAnalyzeWithIndependentlyBuiltWrongDirectionChirpDoesNotConfirmCoherence
// mirrors the above for the 8->16 kHz negative control, built independently
// of shared.WrongDirectionReference.
func TestAnalyzeWithIndependentlyBuiltWrongDirectionChirpDoesNotConfirmCoherence(t *testing.T) {
	opts, cycleLen := smallPlayback()

	recording := chirp.Playback(opts.Playback)

	independentWrongWay := chirp.Generate(types.ChirpParams{
		StartHz:    8000,
		EndHz:      16000,
		Length:     opts.Chirp.Length,
		SampleRate: opts.Chirp.SampleRate,
		Amplitude:  1.0,
	})

	injectAtEveryOnset(recording, independentWrongWay, opts.Playback.LeadSamples, cycleLen, opts.Playback.Cycles, 0.4)

	result := aliasonar.Analyze(recording, opts.Playback, nil, opts)

	assert.False(t, result.Coherence.Passed)
}

func TestAnalyzeWrongDirectionReferenceDoesNotConfirmCoherence(t *testing.T) {
	opts, cycleLen := smallPlayback()

	recording := chirp.Playback(opts.Playback)
	wrongWay := shared.WrongDirectionReference(opts.Chirp)

	injectAtEveryOnset(recording, wrongWay, opts.Playback.LeadSamples, cycleLen, opts.Playback.Cycles, 0.4)

	result := aliasonar.Analyze(recording, opts.Playback, nil, opts)

	assert.False(t, result.Coherence.Passed)
}

func TestAnalyzeMissingCalibrationStillRunsAllExperiments(t *testing.T) {
	opts, cycleLen := smallPlayback()

	recording := chirp.Playback(opts.Playback)
	aliasRef := shared.AliasReference(opts.Chirp)

	injectAtEveryOnset(recording, aliasRef, opts.Playback.LeadSamples, cycleLen, opts.Playback.Cycles, 0.4)

	result := aliasonar.Analyze(recording, opts.Playback, nil, opts)

	require.NotNil(t, result)
	assert.NotZero(t, result.Coherence.PeakSample)
}

func TestCalibrateThenAnalyzeSubtractsDirectPath(t *testing.T) {
	opts, _ := smallPlayback()

	calibrationRecording := chirp.Playback(opts.Playback)
	cal := aliasonar.Calibrate(calibrationRecording, opts.Playback, opts)

	require.NotNil(t, cal)
	assert.Equal(t, opts.Chirp.SampleRate, cal.SampleRate)
	assert.NotEmpty(t, cal.Segment)

	result := aliasonar.Analyze(calibrationRecording, opts.Playback, cal, opts)
	require.NotNil(t, result)
	assert.False(t, result.Coherence.Passed)
}

func TestAnalyzeEmptyRecordingDoesNotPanic(t *testing.T) {
	opts, _ := smallPlayback()

	assert.NotPanics(t, func() {
		result := aliasonar.Analyze(nil, opts.Playback, nil, opts)
		assert.False(t, result.AllConfirmed)
	})
}
