// Package spectrum provides the pipeline's frequency-domain primitives:
// zero-padded real FFT magnitude-squared, band power, and a phase-
// preserving FFT bandpass filter. Every primitive here operates on a
// plain []float64 and allocates its own gonum FFT plan — nothing is
// shared across calls, per the pipeline's single-threaded, stateless
// design.
package spectrum

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FloorEpsilon is the noise floor used whenever a band power or dB
// conversion would otherwise divide by, or take the log of, zero.
const FloorEpsilon = 1e-20

// MagnitudeSquared zero-pads x to n samples, computes its real FFT, and
// returns |X[k]|^2/n^2 for the n/2+1 non-negative-frequency bins (gonum's
// real FFT returns the Nyquist bin too, one more than the spec's idealized
// n/2 — inert for every band query this pipeline makes).
func MagnitudeSquared(x []float64, n int) []float64 {
	padded := make([]float64, n)
	copy(padded, x)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, padded)

	out := make([]float64, len(coeffs))

	normalization := float64(n) * float64(n)
	for i, c := range coeffs {
		out[i] = (real(c)*real(c) + imag(c)*imag(c)) / normalization
	}

	return out
}

// BandPower returns the mean bin value of a magnitude-squared spectrum
// over the inclusive frequency range [fLo, fHi], or FloorEpsilon if the
// range contains no bins.
func BandPower(spec []float64, fLo, fHi float64, n, sampleRate int) float64 {
	lo := binIndex(fLo, n, sampleRate, math.Ceil)
	hi := binIndex(fHi, n, sampleRate, math.Floor)

	if lo < 0 {
		lo = 0
	}

	if hi >= len(spec) {
		hi = len(spec) - 1
	}

	if lo > hi {
		return FloorEpsilon
	}

	var sum float64

	for i := lo; i <= hi; i++ {
		sum += spec[i]
	}

	mean := sum / float64(hi-lo+1)
	if mean < FloorEpsilon {
		return FloorEpsilon
	}

	return mean
}

// Bandpass applies a brick-wall FFT bandpass: forward real FFT of x
// zero-padded to n, zero every bin outside [fLo, fHi] plus the DC and
// Nyquist bins, inverse FFT, truncate back to len(x). Phase is preserved;
// no magnitude weighting is applied at the band edges.
func Bandpass(x []float64, fLo, fHi float64, n, sampleRate int) []float64 {
	padded := make([]float64, n)
	copy(padded, x)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, padded)

	keepLo := binIndex(fLo, n, sampleRate, math.Floor)
	keepHi := binIndex(fHi, n, sampleRate, math.Ceil)

	for i := range coeffs {
		if i == 0 || i == len(coeffs)-1 {
			coeffs[i] = 0

			continue
		}

		if i < keepLo || i > keepHi {
			coeffs[i] = 0
		}
	}

	filtered := fft.Sequence(nil, coeffs)

	out := make([]float64, len(x))
	copy(out, filtered[:len(x)])

	return out
}

func binIndex(freq float64, n, sampleRate int, round func(float64) float64) int {
	return int(round(freq * float64(n) / float64(sampleRate)))
}

// ToDB converts a non-negative value to decibels, floored at FloorEpsilon
// before the logarithm to avoid -Inf.
func ToDB(x float64) float64 {
	if x < FloorEpsilon {
		x = FloorEpsilon
	}

	return 10 * math.Log10(x)
}
