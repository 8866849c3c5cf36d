package shared

import (
	"github.com/rangefold/aliasonar/internal/dsp/calibrate"
	"github.com/rangefold/aliasonar/internal/dsp/spectrum"
	"github.com/rangefold/aliasonar/internal/types"
)

// Band edges shared by all three experiments.
const (
	AliasLoHz = 8000
	AliasHiHz = 16000
	FundLoHz  = 16000
	FundHiHz  = 20000
)

// Bands holds an averaged segment bandpass-filtered into the fundamental
// and alias bands, with calibration subtraction applied per band when a
// template is available.
type Bands struct {
	Fundamental []float64
	Alias       []float64
}

// PrepareBands bandpass-filters segment into the fundamental
// [16000,20000] Hz and alias [8000,16000] Hz bands. If cal is non-nil,
// its segment is bandpass-filtered identically and subtracted band-by-
// band (per-band, not broadband, because low-frequency content varies
// between recordings and would otherwise inflate a broadband inner
// product) with the given maxCalShift lag tolerance.
func PrepareBands(segment []float64, cal *types.CalibrationTemplate, sampleRate, fftSize, maxCalShift int) Bands {
	fund := spectrum.Bandpass(segment, FundLoHz, FundHiHz, fftSize, sampleRate)
	als := spectrum.Bandpass(segment, AliasLoHz, AliasHiHz, fftSize, sampleRate)

	if cal == nil {
		return Bands{Fundamental: fund, Alias: als}
	}

	calFund := spectrum.Bandpass(cal.Segment, FundLoHz, FundHiHz, fftSize, sampleRate)
	calAlias := spectrum.Bandpass(cal.Segment, AliasLoHz, AliasHiHz, fftSize, sampleRate)

	return Bands{
		Fundamental: calibrate.Subtract(fund, calFund, maxCalShift),
		Alias:       calibrate.Subtract(als, calAlias, maxCalShift),
	}
}
