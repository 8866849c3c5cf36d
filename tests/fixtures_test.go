package tests_test

import (
	"os"
	"path/filepath"

	"github.com/rangefold/aliasonar/internal/chirp"
	"github.com/rangefold/aliasonar/internal/experiment/shared"
	"github.com/rangefold/aliasonar/internal/wavio"
)

// writeFixture renders samples to a mono WAV file under a fresh temp
// directory and returns its path. Fixture generation failing is a test
// setup defect, not a condition under test, so it panics rather than
// threading an error back through tigron's Setup signature.
func writeFixture(samples []float64, sampleRate int) string {
	dir, err := os.MkdirTemp("", "aliasonar-fixture-")
	if err != nil {
		panic(err)
	}

	path := filepath.Join(dir, "recording.wav")

	file, err := os.Create(path) //nolint:gosec // test fixture written to its own temp dir
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := wavio.Write(file, samples, sampleRate); err != nil {
		panic(err)
	}

	return path
}

// fundamentalOnlyRecording simulates a microphone capture of the
// transmitted chirp with no harmonic alias present: no speaker
// nonlinearity, no aliased downchirp reflection.
func fundamentalOnlyRecording() string {
	playback := chirp.DefaultPlayback()

	return writeFixture(chirp.Playback(playback), playback.Chirp.SampleRate)
}

// aliasInjectedRecording simulates a capture where a scaled-down copy of
// the predicted second-harmonic alias downchirp rides along every cycle,
// starting at the same onset as the fundamental — standing in for a
// speaker nonlinearity strong enough to trip alias detection.
func aliasInjectedRecording() string {
	playback := chirp.DefaultPlayback()
	buf := chirp.Playback(playback)

	alias := shared.AliasReference(playback.Chirp)
	cycleLen := playback.CycleLength()

	const aliasGain = 0.35

	offset := playback.LeadSamples
	for cycle := 0; cycle < playback.Cycles; cycle++ {
		for i, v := range alias {
			buf[offset+i] += aliasGain * v
		}

		offset += cycleLen
	}

	return writeFixture(buf, playback.Chirp.SampleRate)
}
