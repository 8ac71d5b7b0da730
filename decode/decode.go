// Package decode is the input-acquisition side of the simulation engine.
// It validates a source file, decodes it into pixels, applies the EXIF
// orientation, downscales to a processing bound and hands the core a
// tightly packed, non-premultiplied RGBA byte buffer. The core never sees
// an oversized or un-oriented image.
package decode

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/kettek/apng"
	"github.com/nfnt/resize"
	"github.com/rwcarlsen/goexif/exif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var _ = fmt.Print

// Config bounds what the decoder accepts and what it hands to the core.
type Config struct {
	// MaxFileSize is the largest accepted source file, in bytes.
	MaxFileSize int64
	// MaxDimension is the processing bound: images larger than this on
	// either side are downscaled before the core sees them.
	MaxDimension int
	// AutoOrientation applies the EXIF orientation tag when present.
	AutoOrientation bool
}

var defaultConfig = Config{
	MaxFileSize:     5 * 1024 * 1024,
	MaxDimension:    1500,
	AutoOrientation: true,
}

// Option sets an optional parameter for Open and Decode.
type Option func(*Config)

// MaxFileSize returns an Option overriding the accepted source file size.
func MaxFileSize(n int64) Option {
	return func(c *Config) { c.MaxFileSize = n }
}

// MaxDimension returns an Option overriding the downscale bound.
func MaxDimension(n int) Option {
	return func(c *Config) { c.MaxDimension = n }
}

// AutoOrientation returns an Option that sets the auto-orientation mode.
// By default it's enabled.
func AutoOrientation(enabled bool) Option {
	return func(c *Config) { c.AutoOrientation = enabled }
}

// Buffer is a decoded image as the pipeline consumes it: tightly packed
// RGBA bytes, four per pixel, non-premultiplied.
type Buffer struct {
	Pix           []byte
	Width, Height int
}

// Open reads, validates and decodes a source image file.
func Open(path string, opts ...Option) (*Buffer, error) {
	cfg := defaultConfig
	for _, o := range opts {
		o(&cfg)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.Size() > cfg.MaxFileSize {
		return nil, fmt.Errorf("%s is too large: %s (maximum %s)", path, humanize.Bytes(uint64(fi.Size())), humanize.Bytes(uint64(cfg.MaxFileSize)))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ans, err := Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ans, nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Decode decodes raw image bytes into a pipeline buffer. PNG is decoded
// via the APNG-aware decoder so that an animated PNG yields its default
// (or first) frame rather than an error; all other formats go through the
// registered stdlib and x/image decoders.
func Decode(data []byte, opts ...Option) (*Buffer, error) {
	cfg := defaultConfig
	for _, o := range opts {
		o(&cfg)
	}
	if int64(len(data)) > cfg.MaxFileSize {
		return nil, fmt.Errorf("source is too large: %s (maximum %s)", humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(cfg.MaxFileSize)))
	}
	var img image.Image
	var err error
	if bytes.HasPrefix(data, pngSignature) {
		img, err = decodePNG(bytes.NewReader(data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	nrgba := toNRGBA(img)
	if cfg.AutoOrientation {
		nrgba = applyOrientation(nrgba, readOrientation(data))
	}
	if b := nrgba.Bounds(); b.Dx() > cfg.MaxDimension || b.Dy() > cfg.MaxDimension {
		scaled := resize.Thumbnail(uint(cfg.MaxDimension), uint(cfg.MaxDimension), nrgba, resize.Lanczos3)
		nrgba = toNRGBA(scaled)
	}
	b := nrgba.Bounds()
	return &Buffer{Pix: nrgba.Pix, Width: b.Dx(), Height: b.Dy()}, nil
}

func decodePNG(r io.Reader) (image.Image, error) {
	p, err := apng.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(p.Frames) == 0 {
		return nil, fmt.Errorf("PNG stream contains no frames")
	}
	for _, f := range p.Frames {
		if f.IsDefault {
			return f.Image, nil
		}
	}
	return p.Frames[0].Image, nil
}

// readOrientation extracts the EXIF orientation value in [1,8], or 0 when
// absent or unusable.
func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil || x == nil {
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil || tag == nil {
		return 0
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 0
	}
	return o
}

// toNRGBA converts any decoded image into a tightly packed *image.NRGBA
// with bounds anchored at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
