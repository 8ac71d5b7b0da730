package proofsim

import (
	"math"

	"github.com/kovidgoyal/proofsim/separation"
	"github.com/kovidgoyal/proofsim/substrate"
)

// InkBreakdown is the reduced-form answer for a single-pixel query, used
// by hover/inspection features: channel percentages after tone shift plus
// the summed coverage.
type InkBreakdown struct {
	C             int `json:"c"`
	M             int `json:"m"`
	Y             int `json:"y"`
	K             int `json:"k"`
	TotalCoverage int `json:"totalCoverage"`
}

// Inspect converts a single 8-bit color to tone-shifted ink percentages
// on the given substrate. toneShift < 0 selects the substrate's default
// magnitude. Only the channel converter and the dot-gain curve
// participate; no gamut or aggregate state is involved.
func Inspect(r, g, b uint8, substrateName string, toneShift float64) (InkBreakdown, error) {
	p, err := substrate.Lookup(substrateName)
	if err != nil {
		return InkBreakdown{}, err
	}
	if toneShift < 0 {
		toneShift = p.ToneShiftDefault
	}
	c, m, y, k := separation.ToCMYK(float64(r)/255, float64(g)/255, float64(b)/255)
	c = separation.Shift(c, toneShift, p.ShadowResponse, p.HighlightResponse)
	m = separation.Shift(m, toneShift, p.ShadowResponse, p.HighlightResponse)
	y = separation.Shift(y, toneShift, p.ShadowResponse, p.HighlightResponse)
	k = separation.Shift(k, toneShift, p.ShadowResponse, p.HighlightResponse)
	return InkBreakdown{
		C: roundPercent(c), M: roundPercent(m), Y: roundPercent(y), K: roundPercent(k),
		TotalCoverage: int(math.Round((c + m + y + k) * 100)),
	}, nil
}
