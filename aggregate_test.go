package proofsim

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/proofsim/substrate"
)

func TestVerdict_TableDriven(t *testing.T) {
	const limit = 300
	testCases := []struct {
		maxCoverage int
		oogPercent  float64
		want        RiskLevel
	}{
		{0, 0, RiskSafe},
		{limit, 10, RiskSafe},
		{limit + 1, 0, RiskCaution},
		{limit + 30, 0, RiskCaution},
		{limit + 31, 0, RiskDanger},
		{400, 0, RiskDanger},
		{0, 10.1, RiskCaution},
		{0, 25, RiskCaution},
		{0, 25.1, RiskDanger},
		{0, 100, RiskDanger},
		{limit + 5, 26, RiskDanger},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("max=%d oog=%v", tc.maxCoverage, tc.oogPercent), func(t *testing.T) {
			got := verdict(tc.maxCoverage, tc.oogPercent, limit)
			require.Equal(t, tc.want, got.Level)
			assert.NotEmpty(t, got.Label)
			assert.NotEmpty(t, got.Message)
			if got.Level != RiskSafe {
				assert.Contains(t, got.Message, strconv.Itoa(tc.maxCoverage))
				assert.Contains(t, got.Message, strconv.Itoa(limit))
			}
		})
	}
}

func TestAggregatorStats(t *testing.T) {
	p, err := substrate.Lookup(substrate.Coated)
	require.NoError(t, err)

	var a aggregator
	a.add(100, false)
	a.add(200, true)
	a.add(150.4, false)

	s := a.stats(p, nil)
	assert.Equal(t, 150, s.AverageCoverage) // (100+200+150.4)/3 = 150.13
	assert.Equal(t, 200, s.MaxCoverage)
	assert.Equal(t, 1, s.OutOfGamutCount)
	assert.Equal(t, 33.3, s.OutOfGamutPercent)
	assert.Equal(t, p.InkCoverageLimit, s.InkLimit)
	assert.Equal(t, RiskDanger, s.Risk.Level)
}

// Zero processed pixels is valid: everything reports zero, the verdict is
// safe and no division by zero occurs.
func TestAggregatorEmpty(t *testing.T) {
	p, err := substrate.Lookup(substrate.Newsprint)
	require.NoError(t, err)

	var a aggregator
	s := a.stats(p, nil)
	assert.Equal(t, 0, s.AverageCoverage)
	assert.Equal(t, 0, s.MaxCoverage)
	assert.Equal(t, 0, s.OutOfGamutCount)
	assert.Equal(t, 0.0, s.OutOfGamutPercent)
	assert.Equal(t, RiskSafe, s.Risk.Level)
}
