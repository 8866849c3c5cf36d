// Package average performs coherent averaging: summing aligned per-cycle
// segments of a recording and dividing by the number of cycles that were
// actually in bounds.
package average

import "github.com/rangefold/aliasonar/internal/types"

// Average sums recording[o : o+segLen] for every onset o with
// o+segLen <= len(recording), dividing the accumulator by the count of
// such valid onsets. Onsets failing the bounds check are silently
// skipped; the returned ValidCycles reports how many were actually used.
func Average(recording []float64, onsets types.Onsets, segLen int) types.AveragedSegment {
	acc := make([]float64, segLen)

	valid := 0

	for _, o := range onsets {
		if o < 0 || o+segLen > len(recording) {
			continue
		}

		segment := recording[o : o+segLen]
		for i, v := range segment {
			acc[i] += v
		}

		valid++
	}

	if valid > 0 {
		inv := 1.0 / float64(valid)
		for i := range acc {
			acc[i] *= inv
		}
	}

	return types.AveragedSegment{Samples: acc, ValidCycles: valid}
}
