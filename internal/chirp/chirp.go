// Package chirp synthesizes the phase-continuous linear FM waveform the
// pipeline transmits, and assembles it into the full periodic playback
// buffer the audio subsystem plays through the loudspeaker.
package chirp

import (
	"math"

	"github.com/rangefold/aliasonar/internal/types"
)

// DefaultParams returns the fundamental transmitted chirp: a 16->20 kHz
// upchirp, 2400 samples at 48 kHz, unit amplitude.
func DefaultParams() types.ChirpParams {
	return types.ChirpParams{
		StartHz:    16000,
		EndHz:      20000,
		Length:     2400,
		SampleRate: 48000,
		Amplitude:  1.0,
	}
}

// DefaultPlayback returns the default playback geometry: 0.5s of lead
// silence followed by 200 cycles of (chirp, 1200-sample guard).
func DefaultPlayback() types.PlaybackParams {
	return types.PlaybackParams{
		Chirp:        DefaultParams(),
		LeadSamples:  24000,
		GuardSamples: 1200,
		Cycles:       200,
	}
}

// Generate synthesizes a phase-continuous linear FM chirp: instantaneous
// phase phi(t) = 2*pi*(f0*t + k*t^2/2), k = (f1-f0)/T, T = L/fs.
// StartHz may exceed EndHz to produce a downchirp.
func Generate(p types.ChirpParams) []float64 {
	if p.Length <= 0 || p.SampleRate <= 0 {
		return nil
	}

	samples := make([]float64, p.Length)

	duration := float64(p.Length) / float64(p.SampleRate)
	k := (p.EndHz - p.StartHz) / duration

	for i := range samples {
		t := float64(i) / float64(p.SampleRate)
		phase := 2 * math.Pi * (p.StartHz*t + 0.5*k*t*t)
		samples[i] = p.Amplitude * math.Sin(phase)
	}

	return samples
}

// Playback assembles the full transmit buffer: LeadSamples of silence,
// then Cycles repetitions of (chirp, GuardSamples of silence).
func Playback(p types.PlaybackParams) []float64 {
	chirpSamples := Generate(p.Chirp)
	cycleLen := p.CycleLength()
	total := p.LeadSamples + p.Cycles*cycleLen

	buf := make([]float64, total)

	offset := p.LeadSamples
	for cycle := 0; cycle < p.Cycles; cycle++ {
		copy(buf[offset:offset+len(chirpSamples)], chirpSamples)
		offset += cycleLen
	}

	return buf
}
