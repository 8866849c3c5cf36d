// Package output renders a ProbeResult as the three result cards the
// user-visible surface describes (spec §6): pass/fail glyphs plus the
// numeric fields of each experiment, either as a console string or as
// the canonical map structure used for JSON serialization.
package output

import (
	"fmt"
	"strings"

	"github.com/rangefold/aliasonar"
)

// ResultToMap converts a ProbeResult into the canonical map structure
// used for JSON/JSONL serialization, mirroring the shape of every field
// in aliasonar.ProbeResult.
func ResultToMap(result *aliasonar.ProbeResult) map[string]any {
	return map[string]any{
		"all_confirmed": result.AllConfirmed,
		"alias_detection": map[string]any{
			"fundamental_db":             result.Alias.FundamentalDB,
			"alias_db":                   result.Alias.AliasDB,
			"noise_db":                   result.Alias.NoiseDB,
			"snr_db":                     result.Alias.SNRDB,
			"alias_below_fundamental_db": result.Alias.AliasBelowFundamentalDB,
			"passed":                     result.Alias.Passed,
		},
		"range_coherence": map[string]any{
			"peak_sample":         result.Coherence.PeakSample,
			"distance_mm":         result.Coherence.DistanceMM,
			"alias_peak_strength": result.Coherence.AliasPeakStrength,
			"direction_ratio":     result.Coherence.DirectionRatio,
			"passed":              result.Coherence.Passed,
		},
		"resolution": map[string]any{
			"fundamental_width": result.Resolution.FundamentalWidth,
			"stitched_width":    result.Resolution.StitchedWidth,
			"ratio":             result.Resolution.Ratio,
			"passed":            result.Resolution.Passed,
		},
	}
}

func glyph(passed bool) string {
	if passed {
		return "OK"
	}

	return "!!"
}

// Console renders the three result cards as plain text, one card per
// experiment, in the style of the teacher's "[check] severity" lines.
func Console(result *aliasonar.ProbeResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "probe result (all confirmed: %t)\n\n", result.AllConfirmed)

	fmt.Fprintf(&b, "%s [alias-detection] snr=%.2fdB (alias=%.2fdB noise=%.2fdB fundamental=%.2fdB)\n",
		glyph(result.Alias.Passed), result.Alias.SNRDB, result.Alias.AliasDB,
		result.Alias.NoiseDB, result.Alias.FundamentalDB)

	fmt.Fprintf(&b, "%s [range-coherence] peak_over_noise=%.2f direction_ratio=%.2f distance=%.1fmm (sample %d)\n",
		glyph(result.Coherence.Passed), result.Coherence.AliasPeakStrength,
		result.Coherence.DirectionRatio, result.Coherence.DistanceMM, result.Coherence.PeakSample)

	fmt.Fprintf(&b, "%s [resolution] fundamental_width=%d stitched_width=%d ratio=%.2fx\n",
		glyph(result.Resolution.Passed), result.Resolution.FundamentalWidth,
		result.Resolution.StitchedWidth, result.Resolution.Ratio)

	return b.String()
}
