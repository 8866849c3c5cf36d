package calibrate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rangefold/aliasonar/internal/dsp/calibrate"
)

func TestSubtractRemovesExactTemplate(t *testing.T) {
	template := []float64{1, 2, 3, 4, 3, 2, 1}
	x := append([]float64{}, template...)

	out := calibrate.Subtract(x, template, 3)

	for _, v := range out {
		assert.InDelta(t, 0.0, v, 1e-9)
	}
}

func TestSubtractAlignsShiftedTemplate(t *testing.T) {
	template := []float64{0, 0, 1, 2, 3, 2, 1, 0, 0}
	x := []float64{0, 1, 2, 3, 2, 1, 0, 0, 0}

	out := calibrate.Subtract(x, template, 3)

	var residual float64
	for _, v := range out {
		residual += v * v
	}

	var original float64
	for _, v := range x {
		original += v * v
	}

	assert.Less(t, residual, original)
}

func TestSubtractLeavesUnrelatedSignalMostlyIntact(t *testing.T) {
	template := []float64{1, 1, 1, 1}
	x := []float64{5, -5, 5, -5}

	out := calibrate.Subtract(x, template, 0)

	var residualEnergy, originalEnergy float64
	for i := range x {
		residualEnergy += out[i] * out[i]
		originalEnergy += x[i] * x[i]
	}

	assert.InDelta(t, originalEnergy, residualEnergy, originalEnergy*0.5)
}
