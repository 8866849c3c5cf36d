// Package calibrate implements timing-aligned least-squares calibration
// subtraction: removing a stable direct-path template from a signal with
// an amplitude match and a small integer timing tolerance.
package calibrate

import (
	"gonum.org/v1/gonum/floats"

	"github.com/rangefold/aliasonar/internal/dsp/spectrum"
)

// Subtract searches integer lags in [-maxShift, +maxShift] for the shift
// of template that maximizes the inner product with x over the overlap
// region (a negative maximum is treated as no alignment and ignored).
// It shifts template by the best lag into a zero-padded buffer c', scales
// it by alpha = <x,c'>/<c',c'> (0 if <c',c'> is below the floor epsilon),
// and returns x - alpha*c' over the overlap, with samples beyond the
// overlap copied unchanged from x.
func Subtract(x, template []float64, maxShift int) []float64 {
	n := len(x)
	if len(template) < n {
		n = len(template)
	}

	bestLag := 0
	bestScore := 0.0
	found := false

	for lag := -maxShift; lag <= maxShift; lag++ {
		score := shiftedInnerProduct(x, template, lag, n)
		if score > 0 && (!found || score > bestScore) {
			bestScore = score
			bestLag = lag
			found = true
		}
	}

	shifted := make([]float64, len(x))
	applyShift(shifted, template, bestLag)

	denom := floats.Dot(shifted, shifted)

	alpha := 0.0
	if denom >= spectrum.FloorEpsilon {
		alpha = floats.Dot(x, shifted) / denom
	}

	out := make([]float64, len(x))
	for i := range out {
		out[i] = x[i]
		if i < n {
			out[i] -= alpha * shifted[i]
		}
	}

	return out
}

// shiftedInnerProduct computes sum_{i=0}^{n-1} x[i+lag]*c[i] over the
// region where both x[i+lag] and c[i] are in bounds, ignoring samples
// that fall outside either array (equivalent to zero-padding c by lag).
func shiftedInnerProduct(x, c []float64, lag, n int) float64 {
	var sum float64

	for i := 0; i < n; i++ {
		xi := i + lag
		if xi < 0 || xi >= len(x) || i >= len(c) {
			continue
		}

		sum += x[xi] * c[i]
	}

	return sum
}

// applyShift writes c shifted by lag into dst (dst must already be
// zeroed), i.e. dst[i+lag] = c[i] for every i where i+lag is in bounds.
func applyShift(dst, c []float64, lag int) {
	for i, v := range c {
		di := i + lag
		if di < 0 || di >= len(dst) {
			continue
		}

		dst[di] = v
	}
}
