package proofsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/proofsim/substrate"
)

func uniform(w, h int, r, g, b, a uint8) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return pix
}

func settingsFor(t *testing.T, name string) Settings {
	t.Helper()
	p, err := substrate.Lookup(name)
	require.NoError(t, err)
	return DefaultSettings(p)
}

func TestProcess_UniformBlack(t *testing.T) {
	req := Request{Pixels: uniform(4, 4, 0, 0, 0, 255), Width: 4, Height: 4, Settings: settingsFor(t, substrate.Newsprint)}
	result, err := Process(req, nil)
	require.NoError(t, err)

	// Every pixel converts to k=1, c=m=y=0 exactly, so coverage is 100%
	// everywhere regardless of tone shift or substrate inflation.
	assert.Equal(t, 100, result.Stats.AverageCoverage)
	assert.Equal(t, 100, result.Stats.MaxCoverage)
	assert.Equal(t, 0, result.Stats.OutOfGamutCount)
	assert.Equal(t, RiskSafe, result.Stats.Risk.Level)
	require.Len(t, result.Stats.DominantColors, 1)
	assert.Equal(t, DominantColor{R: 0, G: 0, B: 0, C: 0, M: 0, Y: 0, K: 100}, result.Stats.DominantColors[0])
	// Output is pure black again.
	assert.Equal(t, []byte{0, 0, 0, 255}, result.Pixels[:4])
}

func TestProcess_UniformRedOnCoated(t *testing.T) {
	req := Request{Pixels: uniform(2, 2, 255, 0, 0, 255), Width: 2, Height: 2, Settings: settingsFor(t, substrate.Coated)}
	result, err := Process(req, nil)
	require.NoError(t, err)

	// c=0, m=1, y=1, k=0; the m/y boundary values are unaffected by the
	// tone shift, so total coverage is exactly 200%.
	assert.Equal(t, 200, result.Stats.MaxCoverage)
	assert.Equal(t, 200, result.Stats.AverageCoverage)
	assert.Equal(t, 300, result.Stats.InkLimit)
	// Pure red saturates the classifier on every pixel, which escalates
	// the verdict even though coverage stays under the ink limit.
	assert.Equal(t, 4, result.Stats.OutOfGamutCount)
	assert.Equal(t, 100.0, result.Stats.OutOfGamutPercent)
	assert.Equal(t, RiskDanger, result.Stats.Risk.Level)
	// Overlay carries the warning color at the fixed alpha.
	assert.Equal(t, []byte{overlayR, overlayG, overlayB, overlayAlpha}, result.Overlay[:4])
}

func TestProcess_GamutReductionInflation(t *testing.T) {
	settings := settingsFor(t, substrate.Newsprint)
	settings.ToneShift = 0
	req := Request{Pixels: uniform(1, 1, 64, 128, 192, 255), Width: 1, Height: 1, Settings: settings}
	result, err := Process(req, nil)
	require.NoError(t, err)

	// c=2/3, m=1/3, y=0, k≈0.247; newsprint inflates c by factor
	// 1+0.18*0.5 and m by 1+0.18*0.3, k is exempt: coverage ≈ 132.5%.
	assert.Equal(t, 133, result.Stats.MaxCoverage)
	assert.Equal(t, 0, result.Stats.OutOfGamutCount)
	assert.Equal(t, RiskSafe, result.Stats.Risk.Level)
}

func TestProcess_TransparentPixelsExcluded(t *testing.T) {
	pix := uniform(2, 1, 0, 0, 0, 255)
	// second pixel fully transparent
	pix[7] = 0
	req := Request{Pixels: pix, Width: 2, Height: 1, Settings: settingsFor(t, substrate.Coated)}
	result, err := Process(req, nil)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Stats.AverageCoverage)
	assert.Equal(t, 100, result.Stats.MaxCoverage)
	// Transparent input becomes opaque white in the output and stays
	// fully transparent in the overlay.
	assert.Equal(t, []byte{255, 255, 255, 255}, result.Pixels[4:8])
	assert.Equal(t, []byte{0, 0, 0, 0}, result.Overlay[4:8])
}

func TestProcess_AllTransparentIsValid(t *testing.T) {
	req := Request{Pixels: uniform(3, 3, 99, 99, 99, 0), Width: 3, Height: 3, Settings: settingsFor(t, substrate.Uncoated)}
	result, err := Process(req, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.AverageCoverage)
	assert.Equal(t, 0, result.Stats.MaxCoverage)
	assert.Equal(t, 0.0, result.Stats.OutOfGamutPercent)
	assert.Empty(t, result.Stats.DominantColors)
	assert.Equal(t, RiskSafe, result.Stats.Risk.Level)
	for i := 0; i < len(result.Pixels); i += 4 {
		require.Equal(t, []byte{255, 255, 255, 255}, result.Pixels[i:i+4])
		require.Equal(t, []byte{0, 0, 0, 0}, result.Overlay[i:i+4])
	}
}

func TestProcess_EmptyBufferFails(t *testing.T) {
	_, err := Process(Request{Settings: settingsFor(t, substrate.Coated)}, nil)
	require.ErrorIs(t, err, ErrNoPixels)

	_, err = Process(Request{Pixels: make([]byte, 12), Width: 2, Height: 2, Settings: settingsFor(t, substrate.Coated)}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestProcess_UnknownSubstrateFails(t *testing.T) {
	settings := settingsFor(t, substrate.Coated)
	settings.Substrate = "parchment"
	_, err := Process(Request{Pixels: uniform(1, 1, 0, 0, 0, 255), Width: 1, Height: 1, Settings: settings}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown substrate")
}

// With zero tone shift, no gamut reduction (coated) and all channels
// visible, the pipeline is the bare channel round trip and must reproduce
// the source within 8-bit rounding error.
func TestProcess_IdentityRoundTrip(t *testing.T) {
	settings := settingsFor(t, substrate.Coated)
	settings.ToneShift = 0
	settings.GamutOverlay = false
	pix := make([]byte, 0, 16*4)
	for _, c := range [][3]byte{{10, 20, 30}, {200, 100, 50}, {255, 255, 255}, {1, 254, 128}} {
		for i := 0; i < 4; i++ {
			pix = append(pix, c[0], c[1], c[2], 255)
		}
	}
	req := Request{Pixels: pix, Width: 4, Height: 4, Settings: settings}
	result, err := Process(req, nil)
	require.NoError(t, err)
	for i := range pix {
		diff := int(result.Pixels[i]) - int(pix[i])
		if diff < -1 || diff > 1 {
			t.Fatalf("byte %d: got %d, want %d±1", i, result.Pixels[i], pix[i])
		}
	}
}

func TestProcess_HiddenChannels(t *testing.T) {
	settings := settingsFor(t, substrate.Coated)
	settings.ToneShift = 0
	settings.ShowM, settings.ShowY = false, false
	// Pure red is m=1, y=1; with both hidden and c=k=0 the reconstruction
	// is paper white.
	req := Request{Pixels: uniform(1, 1, 255, 0, 0, 255), Width: 1, Height: 1, Settings: settings}
	result, err := Process(req, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 255, 255, 255}, result.Pixels[:4])
	// Hiding channels affects only the display buffer, not the stats.
	assert.Equal(t, 200, result.Stats.MaxCoverage)
}

func TestProcess_ProgressMonotonic(t *testing.T) {
	var percents []int
	req := Request{Pixels: uniform(10, 10, 77, 77, 77, 255), Width: 10, Height: 10, Settings: settingsFor(t, substrate.Coated)}
	c, err := NewChunked(req, 5, func(p int) { percents = append(percents, p) })
	require.NoError(t, err)
	for !c.Step() {
	}
	require.NotEmpty(t, percents)
	last := -1
	for _, p := range percents {
		require.GreaterOrEqual(t, p, 0)
		require.LessOrEqual(t, p, 100)
		require.Greater(t, p, last)
		last = p
	}
	require.Equal(t, 100, percents[len(percents)-1])
}
