package separation

import "math"

// Shift applies the non-linear dot-gain curve to a single channel value.
// The boost term sin(π·v) is zero at both domain boundaries and maximal at
// v=0.5, which is why the effect concentrates at midtones. The positional
// weight interpolates linearly from highlight (at v=0) up to shadow (at
// v=0.5) and back down to highlight (at v=1), so shadow and highlight
// response multipliers shape the curve independently of the magnitude.
//
// Boundary identity: Shift(v, ...) is exactly 0 for v≤0 and exactly 1 for
// v≥1, for any magnitude and response values. The result is clamped to
// [0,1].
func Shift(v, magnitude, shadow, highlight float64) float64 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	boost := math.Sin(math.Pi * v)
	var weight float64
	if v < 0.5 {
		weight = highlight + (shadow-highlight)*(v*2)
	} else {
		weight = shadow - (shadow-highlight)*((v-0.5)*2)
	}
	return clamp01(v + magnitude*boost*weight)
}
