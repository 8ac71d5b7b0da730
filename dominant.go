package proofsim

import (
	"math"
	"sort"

	"github.com/kovidgoyal/proofsim/separation"
)

// DominantColor is one of the most frequent colors of the source image,
// with its ink channel percentages derived via the channel converter. The
// RGB values are the source image's colors, not the simulated output.
type DominantColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	C int   `json:"c"`
	M int   `json:"m"`
	Y int   `json:"y"`
	K int   `json:"k"`
}

const (
	// defaultSampleStride samples every Nth pixel, trading accuracy for
	// speed on large images.
	defaultSampleStride = 8
	// quantStep coalesces near-duplicate colors by rounding each channel
	// to the nearest multiple of 32. Calibrated constant.
	quantStep = 32
	// sampleAlphaThreshold excludes mostly-transparent pixels.
	sampleAlphaThreshold = 128
	// maxDominantColors is the number of buckets reported.
	maxDominantColors = 5
)

// dominantColors builds a quantized histogram over every stride-th pixel
// of an RGBA buffer and returns up to five buckets by descending count.
// Ties are broken by insertion order: the first-seen bucket wins.
func dominantColors(pixels []byte, stride int) []DominantColor {
	if stride < 1 {
		stride = 1
	}
	type bucket struct {
		r, g, b uint8
		count   int
		order   int
	}
	counts := make(map[uint32]*bucket)
	numPixels := len(pixels) / 4
	for p := 0; p < numPixels; p += stride {
		i := p * 4
		if pixels[i+3] < sampleAlphaThreshold {
			continue
		}
		r := quantize(pixels[i])
		g := quantize(pixels[i+1])
		b := quantize(pixels[i+2])
		key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		if bk := counts[key]; bk != nil {
			bk.count++
		} else {
			counts[key] = &bucket{r: r, g: g, b: b, count: 1, order: len(counts)}
		}
	}
	buckets := make([]*bucket, 0, len(counts))
	for _, bk := range counts {
		buckets = append(buckets, bk)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].order < buckets[j].order
	})
	n := min(len(buckets), maxDominantColors)
	ans := make([]DominantColor, 0, n)
	for _, bk := range buckets[:n] {
		c, m, y, k := separation.ToCMYK(float64(bk.r)/255, float64(bk.g)/255, float64(bk.b)/255)
		ans = append(ans, DominantColor{
			R: bk.r, G: bk.g, B: bk.b,
			C: roundPercent(c), M: roundPercent(m), Y: roundPercent(y), K: roundPercent(k),
		})
	}
	return ans
}

func quantize(v uint8) uint8 {
	q := (int(v) + quantStep/2) / quantStep * quantStep
	if q > 255 {
		q = 255
	}
	return uint8(q)
}

func roundPercent(v float64) int {
	return int(math.Round(v * 100))
}
