// Package separation implements the channel conversion and dot-gain math
// used by the simulation pipeline. It converts RGB colors into four ink
// channel values (Cyan, Magenta, Yellow, Key) and back, and applies a
// non-linear, midtone-peaked tone shift that emulates physical dot gain
// on a printing substrate.
//
// Notes:
//   - This is a deliberately simplified approximation, not a
//     colorimetrically accurate, profile-based conversion.
//   - All functions are pure and clamp their outputs, so every channel
//     value stays in [0,1] by construction and the summed coverage of a
//     pixel is bounded to [0,400] percent.
//   - The round trip ToCMYK followed by ToRGB is lossy only through the
//     final rounding to 8 bits.
package separation

// ToCMYK converts normalized RGB components in [0,1] into ink channel
// values in [0,1]. A pure black input returns (0,0,0,1) exactly, which
// also avoids the division by zero in the general formula.
func ToCMYK(r, g, b float64) (c, m, y, k float64) {
	k = 1 - max(r, g, b)
	if k >= 1 {
		return 0, 0, 0, 1
	}
	d := 1 - k
	c = clamp01((1 - r - k) / d)
	m = clamp01((1 - g - k) / d)
	y = clamp01((1 - b - k) / d)
	return c, m, y, clamp01(k)
}

// ToRGB converts ink channel values in [0,1] back to 8-bit RGB components.
func ToRGB(c, m, y, k float64) (r, g, b uint8) {
	d := 1 - k
	r = round8(255 * (1 - c) * d)
	g = round8(255 * (1 - m) * d)
	b = round8(255 * (1 - y) * d)
	return
}

// clamp01 clamps value to [0,1]
func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

func round8(x float64) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x + 0.5)
}
