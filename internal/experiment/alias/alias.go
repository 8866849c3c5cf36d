// Package alias implements experiment 1: alias detection. If the 8-16 kHz
// band carries energy only while the fundamental chirp is transmitting,
// that energy is time-locked to the transmission and cannot be
// environmental noise.
package alias

import (
	"github.com/rangefold/aliasonar/internal/dsp/spectrum"
	"github.com/rangefold/aliasonar/internal/experiment/shared"
	"github.com/rangefold/aliasonar/internal/types"
)

// Detect runs experiment 1 over every valid onset: per cycle, it measures
// mean band power in the alias band [8000,16000] Hz during the chirp
// window and during the guard window, and in the fundamental band
// [16000,20000] Hz during the chirp window, using an fftSize-point
// magnitude-squared spectrum. The three per-cycle scalars are averaged
// across valid cycles, converted to dB, and compared: SNR =
// aliasChirpDB - aliasGuardDB. Passed iff SNR > snrThresholdDB.
func Detect(
	recording []float64,
	onsets types.Onsets,
	playback types.PlaybackParams,
	fftSize int,
	snrThresholdDB float64,
) types.AliasDetection {
	sampleRate := playback.Chirp.SampleRate
	chirpLen := playback.Chirp.Length
	cycleLen := playback.CycleLength()

	var (
		sumAliasChirp float64
		sumAliasGuard float64
		sumFund       float64
		valid         int
	)

	for _, o := range onsets {
		if o < 0 || o+cycleLen > len(recording) {
			continue
		}

		chirpWindow := recording[o : o+chirpLen]
		guardWindow := recording[o+chirpLen : o+cycleLen]

		chirpSpec := spectrum.MagnitudeSquared(chirpWindow, fftSize)
		guardSpec := spectrum.MagnitudeSquared(guardWindow, fftSize)

		sumAliasChirp += spectrum.BandPower(chirpSpec, shared.AliasLoHz, shared.AliasHiHz, fftSize, sampleRate)
		sumAliasGuard += spectrum.BandPower(guardSpec, shared.AliasLoHz, shared.AliasHiHz, fftSize, sampleRate)
		sumFund += spectrum.BandPower(chirpSpec, shared.FundLoHz, shared.FundHiHz, fftSize, sampleRate)

		valid++
	}

	if valid == 0 {
		return types.AliasDetection{
			FundamentalDB: spectrum.ToDB(0),
			AliasDB:       spectrum.ToDB(0),
			NoiseDB:       spectrum.ToDB(0),
		}
	}

	inv := 1.0 / float64(valid)

	aliasChirpDB := spectrum.ToDB(sumAliasChirp * inv)
	aliasGuardDB := spectrum.ToDB(sumAliasGuard * inv)
	fundDB := spectrum.ToDB(sumFund * inv)

	snr := aliasChirpDB - aliasGuardDB

	return types.AliasDetection{
		FundamentalDB:           fundDB,
		AliasDB:                 aliasChirpDB,
		NoiseDB:                 aliasGuardDB,
		SNRDB:                   snr,
		AliasBelowFundamentalDB: fundDB - aliasChirpDB,
		Passed:                  snr > snrThresholdDB,
	}
}
