// Package substrate defines the table of print-substrate presets used by
// the simulation pipeline. Each preset models a category of print stock
// (coated, uncoated, newsprint) via a handful of calibrated parameters:
// the default dot-gain magnitude, the maximum acceptable total ink
// coverage, a gamut reduction factor and the shadow/highlight response of
// the dot-gain curve. The table is static; profiles are never mutated
// after construction.
package substrate

import "fmt"

// Profile is one named print-substrate preset.
type Profile struct {
	Name string `json:"name"`
	// ToneShiftDefault is the default dot-gain magnitude, in [0,1].
	ToneShiftDefault float64 `json:"toneShiftDefault"`
	// InkCoverageLimit is the maximum acceptable summed channel coverage,
	// as a percentage in [0,400].
	InkCoverageLimit int `json:"inkCoverageLimit"`
	// GamutReductionFactor widens the gamut classifier's rejection region
	// and slightly inflates mid/high channel values, in [0,1).
	GamutReductionFactor float64 `json:"gamutReductionFactor"`
	// ShadowResponse and HighlightResponse shape how strongly the dot-gain
	// curve acts near black vs. near white. Positive, typically 0.4-1.3.
	ShadowResponse    float64 `json:"shadowResponse"`
	HighlightResponse float64 `json:"highlightResponse"`
}

const (
	Coated    = "coated"
	Uncoated  = "uncoated"
	Newsprint = "newsprint"
)

var profiles = []Profile{
	{Name: Coated, ToneShiftDefault: 0.15, InkCoverageLimit: 300, GamutReductionFactor: 0, ShadowResponse: 1.0, HighlightResponse: 0.7},
	{Name: Uncoated, ToneShiftDefault: 0.22, InkCoverageLimit: 280, GamutReductionFactor: 0.08, ShadowResponse: 1.15, HighlightResponse: 0.6},
	{Name: Newsprint, ToneShiftDefault: 0.30, InkCoverageLimit: 240, GamutReductionFactor: 0.18, ShadowResponse: 1.3, HighlightResponse: 0.5},
}

// Lookup returns the profile for the given substrate name.
func Lookup(name string) (*Profile, error) {
	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i], nil
		}
	}
	return nil, fmt.Errorf("unknown substrate: %q (valid: %s, %s, %s)", name, Coated, Uncoated, Newsprint)
}

// Names returns the substrate names in table order.
func Names() []string {
	ans := make([]string, len(profiles))
	for i := range profiles {
		ans[i] = profiles[i].Name
	}
	return ans
}

// All returns copies of every profile in table order.
func All() []Profile {
	ans := make([]Profile, len(profiles))
	copy(ans, profiles)
	return ans
}
