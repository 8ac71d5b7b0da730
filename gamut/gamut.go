// Package gamut implements the heuristic out-of-gamut classifier. It is
// not a geometric gamut-boundary test: it flags source colors whose
// HSL-style saturation exceeds a substrate-dependent threshold, with
// three hue windows known to be problematic in four-color print pulled
// in further. The thresholds are calibrated constants, intentionally
// approximate, and are part of the behavioral contract of the engine.
package gamut

import "github.com/kovidgoyal/proofsim/substrate"

const (
	baseThreshold   = 0.82
	windowTighten   = 0.12
	darkLightness   = 0.08
	brightLightness = 0.94
)

// A hue/saturation/lightness window of print-problematic colors.
type window struct {
	hueLo, hueHi float64
	minSat       float64
	minLightness float64
}

// High-saturation green-cyan, high-saturation bright blue and
// high-saturation orange ranges. Calibrated, do not re-derive.
var windows = []window{
	{hueLo: 0.22, hueHi: 0.42, minSat: 0.7},
	{hueLo: 0.55, hueHi: 0.72, minSat: 0.75, minLightness: 0.3},
	{hueLo: 0.05, hueHi: 0.12, minSat: 0.85},
}

// OutOfGamut reports whether an 8-bit source color is likely
// unreproducible on the given substrate. Near-black and near-white pixels
// are always considered in gamut: those regions rarely clip in print.
func OutOfGamut(r, g, b uint8, p *substrate.Profile) bool {
	h, s, l := hsl(r, g, b)
	if l < darkLightness || l > brightLightness {
		return false
	}
	threshold := baseThreshold - p.GamutReductionFactor
	for _, w := range windows {
		if h > w.hueLo && h < w.hueHi && s > w.minSat && l > w.minLightness {
			threshold -= windowTighten
			break
		}
	}
	return s > threshold
}

// hsl converts 8-bit RGB into hue in [0,1), saturation and lightness in
// [0,1] using the standard formulas. Hue and saturation are 0 for
// achromatic colors.
func hsl(r8, g8, b8 uint8) (h, s, l float64) {
	r := float64(r8) / 255
	g := float64(g8) / 255
	b := float64(b8) / 255
	mx := max(r, g, b)
	mn := min(r, g, b)
	l = (mx + mn) / 2
	if mx == mn {
		return 0, 0, l
	}
	d := mx - mn
	if l > 0.5 {
		s = d / (2 - mx - mn)
	} else {
		s = d / (mx + mn)
	}
	switch mx {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6
	return h, s, l
}
