// Package onset locates the exact sample index of each transmitted chirp
// cycle within a recording, by a coarse correlation over the first few
// cycles followed by a per-cycle refinement search that self-corrects
// against slow sample-rate drift.
package onset

import (
	"github.com/rangefold/aliasonar/internal/chirp"
	"github.com/rangefold/aliasonar/internal/dsp/xcorr"
	"github.com/rangefold/aliasonar/internal/types"
)

// RefineWindow is the +/-W search margin (samples) around each cycle's
// expected position during the refinement pass.
const RefineWindow = 50

// Detect returns the onset of each transmitted cycle found in recording.
// The coarse pass cross-correlates the first
// min(len(recording), L_lead+4*L_cycle) samples (the lead silence plus the
// first four cycles) against the chirp template to find the first onset; the refine
// pass then walks cycle by cycle, predicting each cycle's expected
// position from the previous accepted onset (not a fixed multiple of
// L_cycle), and searching a +/-RefineWindow window around it. The search
// stops early if a window would exceed the recording.
func Detect(recording []float64, playback types.PlaybackParams) types.Onsets {
	chirpTemplate := chirp.Generate(playback.Chirp)
	cycleLen := playback.CycleLength()
	chirpLen := playback.Chirp.Length

	coarseLen := playback.LeadSamples + 4*cycleLen
	if coarseLen > len(recording) {
		coarseLen = len(recording)
	}

	if coarseLen < chirpLen {
		return nil
	}

	coarseCorr := xcorr.CrossCorrelate(recording[:coarseLen], chirpTemplate)

	o0, _ := xcorr.Peak(coarseCorr, 0)

	onsets := make(types.Onsets, 0, playback.Cycles)
	onsets = append(onsets, o0)

	for cycle := 1; cycle < playback.Cycles; cycle++ {
		expected := onsets[len(onsets)-1] + cycleLen

		windowStart := expected - RefineWindow
		if windowStart < 0 {
			windowStart = 0
		}

		windowEnd := expected + RefineWindow
		if windowEnd > len(recording)-chirpLen {
			windowEnd = len(recording) - chirpLen
		}

		windowEnd += chirpLen

		if windowStart >= windowEnd || windowEnd > len(recording) {
			break
		}

		segment := recording[windowStart:windowEnd]
		if len(segment) < chirpLen {
			break
		}

		corr := xcorr.CrossCorrelate(segment, chirpTemplate)

		localIdx, _ := xcorr.Peak(corr, 0)
		onsets = append(onsets, windowStart+localIdx)
	}

	return onsets
}
