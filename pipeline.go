package proofsim

import (
	"errors"
	"fmt"

	"github.com/kovidgoyal/proofsim/gamut"
	"github.com/kovidgoyal/proofsim/separation"
	"github.com/kovidgoyal/proofsim/substrate"
)

var _ = fmt.Print

// ErrNoPixels is returned when a request carries an empty or missing
// pixel buffer.
var ErrNoPixels = errors.New("no pixel data to process")

// Settings controls a single simulation run. It is supplied by the caller
// and never mutated by the engine.
type Settings struct {
	// Substrate is one of the names in the substrate package table.
	Substrate string `json:"substrate"`
	// ToneShift is the dot-gain magnitude for this run, in [0,1]. It
	// overrides the substrate's default.
	ToneShift float64 `json:"toneShift"`
	// Channel visibility. A hidden channel is zeroed before the output
	// pixel is reconstructed.
	ShowC bool `json:"showC"`
	ShowM bool `json:"showM"`
	ShowY bool `json:"showY"`
	ShowK bool `json:"showK"`
	// GamutOverlay enables writing warning pixels into the overlay buffer.
	GamutOverlay bool `json:"gamutOverlay"`
}

// DefaultSettings returns settings with all channels visible, the overlay
// enabled and the substrate's default tone shift.
func DefaultSettings(p *substrate.Profile) Settings {
	return Settings{
		Substrate: p.Name, ToneShift: p.ToneShiftDefault,
		ShowC: true, ShowM: true, ShowY: true, ShowK: true,
		GamutOverlay: true,
	}
}

// Request is one unit of work for the pipeline: a tightly packed RGBA
// byte buffer plus the settings to simulate with. The buffer is owned by
// the run until it completes or fails.
type Request struct {
	Pixels        []byte
	Width, Height int
	Settings      Settings
}

// Result is produced once per successful run. Pixels and Overlay have the
// same length as the request buffer. Overlay is fully transparent except
// at flagged pixels, which carry a fixed warning color.
type Result struct {
	Pixels  []byte `json:"-"`
	Overlay []byte `json:"-"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Stats   Stats  `json:"stats"`
}

// Warning color and alpha written into the overlay buffer at out-of-gamut
// pixels.
const (
	overlayR     = 220
	overlayG     = 38
	overlayB     = 38
	overlayAlpha = 150
)

// Gamut-reduction inflation multipliers. Only C/M/Y are inflated; the K
// channel is exempt. Calibrated constants.
const (
	inflateC  = 0.5
	inflateMY = 0.3
)

// progressStep is the reporting granularity, in percent of total pixels.
const progressStep = 5

// run holds the state of one in-flight simulation. All pixel processing
// is strictly sequential in row-major order; the scheduling adapters
// differ only in how the loop is driven.
type run struct {
	req     Request
	profile *substrate.Profile

	out, overlay []byte
	agg          aggregator

	pos         int // next pixel index
	total       int
	lastPercent int
	onProgress  func(percent int)
}

func newRun(req Request, onProgress func(percent int)) (*run, error) {
	if len(req.Pixels) == 0 {
		return nil, ErrNoPixels
	}
	if expected := req.Width * req.Height * 4; expected != len(req.Pixels) {
		return nil, fmt.Errorf("pixel buffer size %d does not match %dx%d RGBA (expected %d)", len(req.Pixels), req.Width, req.Height, expected)
	}
	profile, err := substrate.Lookup(req.Settings.Substrate)
	if err != nil {
		return nil, err
	}
	return &run{
		req:        req,
		profile:    profile,
		out:        make([]byte, len(req.Pixels)),
		overlay:    make([]byte, len(req.Pixels)),
		total:      req.Width * req.Height,
		onProgress: onProgress,
	}, nil
}

// step processes up to n pixels and reports whether the pixel loop has
// finished. Progress is reported at progressStep boundaries, monotonically
// non-decreasing.
func (r *run) step(n int) (done bool) {
	s := &r.req.Settings
	p := r.profile
	limit := min(r.pos+n, r.total)
	for ; r.pos < limit; r.pos++ {
		i := r.pos * 4
		px := r.req.Pixels[i : i+4 : i+4]
		o := r.out[i : i+4 : i+4]
		if px[3] == 0 {
			// Fully transparent input: opaque white out, transparent
			// overlay, excluded from all statistics.
			o[0], o[1], o[2], o[3] = 255, 255, 255, 255
			continue
		}
		c, m, y, k := separation.ToCMYK(float64(px[0])/255, float64(px[1])/255, float64(px[2])/255)
		c = separation.Shift(c, s.ToneShift, p.ShadowResponse, p.HighlightResponse)
		m = separation.Shift(m, s.ToneShift, p.ShadowResponse, p.HighlightResponse)
		y = separation.Shift(y, s.ToneShift, p.ShadowResponse, p.HighlightResponse)
		k = separation.Shift(k, s.ToneShift, p.ShadowResponse, p.HighlightResponse)
		// Emulate the smaller reproducible range of the substrate. K is
		// exempt from inflation.
		if f := p.GamutReductionFactor; f > 0 {
			c = min(1, c+c*f*inflateC)
			m = min(1, m+m*f*inflateMY)
			y = min(1, y+y*f*inflateMY)
		}
		outOfGamut := gamut.OutOfGamut(px[0], px[1], px[2], p)
		r.agg.add((c+m+y+k)*100, outOfGamut)
		if !s.ShowC {
			c = 0
		}
		if !s.ShowM {
			m = 0
		}
		if !s.ShowY {
			y = 0
		}
		if !s.ShowK {
			k = 0
		}
		o[0], o[1], o[2] = separation.ToRGB(c, m, y, k)
		o[3] = px[3]
		if s.GamutOverlay && outOfGamut {
			ov := r.overlay[i : i+4 : i+4]
			ov[0], ov[1], ov[2], ov[3] = overlayR, overlayG, overlayB, overlayAlpha
		}
	}
	r.reportProgress()
	return r.pos >= r.total
}

func (r *run) reportProgress() {
	if r.onProgress == nil {
		return
	}
	percent := r.pos * 100 / r.total
	if percent >= r.lastPercent+progressStep || (percent == 100 && r.lastPercent < 100) {
		r.lastPercent = percent
		r.onProgress(percent)
	}
}

// finish samples dominant colors from the original source buffer and
// assembles the result. Must only be called after step reports done.
func (r *run) finish() *Result {
	dominant := dominantColors(r.req.Pixels, defaultSampleStride)
	return &Result{
		Pixels:  r.out,
		Overlay: r.overlay,
		Width:   r.req.Width,
		Height:  r.req.Height,
		Stats:   r.agg.stats(r.profile, dominant),
	}
}

// Process runs the whole pipeline synchronously. onProgress may be nil;
// when set it receives a monotonically non-decreasing percentage in
// [0,100]. Any panic inside the pixel loop is recovered and converted to
// an error: the engine never propagates a raw fault to its caller.
func Process(req Request, onProgress func(percent int)) (result *Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			result, err = nil, fmt.Errorf("internal error during processing: %v", p)
		}
	}()
	r, err := newRun(req, onProgress)
	if err != nil {
		return nil, err
	}
	for !r.step(r.total) {
	}
	return r.finish(), nil
}
