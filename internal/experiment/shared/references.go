// Package shared builds the three reference chirps the experiments
// correlate against: the fundamental transmitted upchirp, the predicted
// alias downchirp, and the wrong-direction upchirp used as a negative
// control for experiment 2's direction test.
package shared

import (
	"github.com/rangefold/aliasonar/internal/chirp"
	"github.com/rangefold/aliasonar/internal/types"
)

// FundamentalReference returns the 16->20 kHz transmitted chirp itself.
func FundamentalReference(c types.ChirpParams) []float64 {
	return chirp.Generate(c)
}

// AliasReference returns the predicted second-harmonic alias: a downchirp
// sweeping from the fundamental's StartHz down to its StartHz/2, i.e.
// 16->8 kHz for the default 16->20 kHz fundamental. The fundamental's
// second harmonic sweeps 32->40 kHz; folded through the 48 kHz Nyquist
// (48000 - f_harmonic), that lands at 16->8 kHz.
func AliasReference(c types.ChirpParams) []float64 {
	down := c
	down.StartHz = c.StartHz
	down.EndHz = c.StartHz / 2

	return chirp.Generate(down)
}

// WrongDirectionReference returns the nonsense hypothesis: an 8->16 kHz
// upchirp, the mirror image of AliasReference's correct sweep direction.
func WrongDirectionReference(c types.ChirpParams) []float64 {
	up := c
	up.StartHz = c.StartHz / 2
	up.EndHz = c.StartHz

	return chirp.Generate(up)
}
