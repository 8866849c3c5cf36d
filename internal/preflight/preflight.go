// Package preflight runs cheap sanity checks over a decoded recording
// before it is handed to the ranging pipeline. Clipping and DC offset
// both corrupt the physics the experiments depend on: clipping itself
// generates harmonics indistinguishable from the second-harmonic alias
// the alias-detection experiment is looking for, and a DC bias shifts
// every band-power measurement by a constant the calibration subtraction
// does not model. A silent or near-silent recording means the
// microphone never captured the chirp at all.
package preflight

import "math"

// Report is a health summary over one decoded recording, normalized to
// the [-1, 1] float64 range produced by wavio.Read.
type Report struct {
	ClippedSamples int
	ClipEvents     int
	LongestRun     int
	DCOffset       float64
	RMSdB          float64
	Silent         bool
	Clipped        bool
	DCBiased       bool
}

const (
	clipThreshold  = 0.999
	runMinSamples  = 2
	silenceFloorDB = -60.0
	dcOffsetLimit  = 0.02
)

// Run inspects samples and returns a Report. It never returns an error:
// a bad recording is not a programming failure, it is a fact about the
// input that the caller decides how to act on.
func Run(samples []float64) Report {
	var report Report

	if len(samples) == 0 {
		report.Silent = true

		return report
	}

	var (
		sum      float64
		sumSq    float64
		run      int
	)

	for _, s := range samples {
		sum += s
		sumSq += s * s

		if math.Abs(s) >= clipThreshold {
			run++
		} else {
			flushRun(&report, run)
			run = 0
		}
	}

	flushRun(&report, run)

	report.DCOffset = sum / float64(len(samples))
	report.DCBiased = math.Abs(report.DCOffset) > dcOffsetLimit

	rms := math.Sqrt(sumSq / float64(len(samples)))
	if rms <= 0 {
		report.RMSdB = math.Inf(-1)
	} else {
		report.RMSdB = 20 * math.Log10(rms)
	}

	report.Silent = report.RMSdB < silenceFloorDB
	report.Clipped = report.ClipEvents > 0

	return report
}

func flushRun(report *Report, run int) {
	if run < runMinSamples {
		return
	}

	report.ClipEvents++
	report.ClippedSamples += run

	if run > report.LongestRun {
		report.LongestRun = run
	}
}

// Warnings renders human-readable lines describing whatever Report
// flagged, for a CLI to print alongside its normal output. An empty
// slice means the recording looked clean.
func (r Report) Warnings() []string {
	var warnings []string

	if r.Silent {
		warnings = append(warnings, "recording is silent or near-silent, chirp may not have been captured")
	}

	if r.Clipped {
		warnings = append(warnings, "recording contains clipping, harmonic measurements may be unreliable")
	}

	if r.DCBiased {
		warnings = append(warnings, "recording has significant DC offset, band power measurements may be biased")
	}

	return warnings
}
