package proofsim

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/proofsim/substrate"
)

// RiskLevel is the three-tier summary verdict of a run.
type RiskLevel string

const (
	RiskSafe    RiskLevel = "safe"
	RiskCaution RiskLevel = "caution"
	RiskDanger  RiskLevel = "danger"
)

// Risk is the verdict plus its fixed label and human-readable message.
// The message is descriptive only and never used for control flow.
type Risk struct {
	Level   RiskLevel `json:"level"`
	Label   string    `json:"label"`
	Message string    `json:"message"`
}

// Stats is the aggregate record of one run. Coverage values are rounded
// percentages; OutOfGamutPercent carries one decimal.
type Stats struct {
	AverageCoverage   int             `json:"averageCoverage"`
	MaxCoverage       int             `json:"maxCoverage"`
	OutOfGamutCount   int             `json:"outOfGamutCount"`
	OutOfGamutPercent float64         `json:"outOfGamutPercent"`
	DominantColors    []DominantColor `json:"dominantColors"`
	Risk              Risk            `json:"risk"`
	InkLimit          int             `json:"inkLimit"`
}

// Margin above the ink limit at which the verdict escalates from caution
// to danger, in coverage percent.
const dangerCoverageMargin = 30

// Out-of-gamut pixel ratio thresholds for the caution and danger tiers.
const (
	cautionGamutPercent = 10
	dangerGamutPercent  = 25
)

// aggregator keeps the running coverage and gamut statistics over all
// non-transparent pixels of a run.
type aggregator struct {
	sum        float64
	max        float64
	outOfGamut int
	processed  int
}

func (a *aggregator) add(coverage float64, outOfGamut bool) {
	a.sum += coverage
	if coverage > a.max {
		a.max = coverage
	}
	if outOfGamut {
		a.outOfGamut++
	}
	a.processed++
}

func (a *aggregator) stats(p *substrate.Profile, dominant []DominantColor) Stats {
	var avg, oogPercent float64
	if a.processed > 0 {
		avg = a.sum / float64(a.processed)
		oogPercent = float64(a.outOfGamut) / float64(a.processed) * 100
	}
	maxCoverage := int(math.Round(a.max))
	oogPercent = math.Round(oogPercent*10) / 10
	return Stats{
		AverageCoverage:   int(math.Round(avg)),
		MaxCoverage:       maxCoverage,
		OutOfGamutCount:   a.outOfGamut,
		OutOfGamutPercent: oogPercent,
		DominantColors:    dominant,
		Risk:              verdict(maxCoverage, oogPercent, p.InkCoverageLimit),
		InkLimit:          p.InkCoverageLimit,
	}
}

// verdict derives the three-tier risk assessment from the rounded maximum
// coverage and the out-of-gamut pixel ratio.
func verdict(maxCoverage int, oogPercent float64, limit int) Risk {
	switch {
	case maxCoverage > limit+dangerCoverageMargin || oogPercent > dangerGamutPercent:
		return Risk{
			Level: RiskDanger,
			Label: "High risk",
			Message: fmt.Sprintf("Maximum ink coverage of %d%% is well above the %d%% limit for this substrate, or a large share of colors cannot be reproduced. Expect drying problems and visible color shifts.",
				maxCoverage, limit),
		}
	case maxCoverage > limit || oogPercent > cautionGamutPercent:
		return Risk{
			Level: RiskCaution,
			Label: "Caution",
			Message: fmt.Sprintf("Maximum ink coverage of %d%% exceeds the %d%% limit for this substrate in places, or some colors fall outside its reproducible range. Review the flagged areas before printing.",
				maxCoverage, limit),
		}
	default:
		return Risk{
			Level:   RiskSafe,
			Label:   "Safe",
			Message: "Ink coverage and color range are within the limits of this substrate.",
		}
	}
}
