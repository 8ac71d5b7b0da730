package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/kovidgoyal/go-parallel"
	"github.com/spf13/cobra"

	"github.com/kovidgoyal/proofsim"
	"github.com/kovidgoyal/proofsim/decode"
	"github.com/kovidgoyal/proofsim/substrate"
)

var (
	substrateName string
	toneShift     float64
	hideChannels  string
	withOverlay   bool
	outputDir     string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [files...]",
	Short: "Run the print simulation over one or more images",
	Long: `Simulate decodes each input image, runs the CMYK separation and
dot-gain pipeline for the chosen substrate and writes the simulated image
next to the input (or into --output-dir) as <name>.sim.png, plus
<name>.overlay.png when --overlay is set. The coverage statistics and risk
verdict are printed as JSON, one record per input.

Examples:
  proofsim simulate photo.jpg
  proofsim simulate --substrate newsprint --overlay poster.png
  proofsim simulate --hide mk --tone-shift 0.2 *.png`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVarP(&substrateName, "substrate", "s", substrate.Coated, "Substrate preset (coated, uncoated, newsprint)")
	simulateCmd.Flags().Float64VarP(&toneShift, "tone-shift", "t", -1, "Dot-gain magnitude in [0,1], -1 uses the substrate default")
	simulateCmd.Flags().StringVar(&hideChannels, "hide", "", "Ink channels to hide, e.g. \"my\" or \"cmy\"")
	simulateCmd.Flags().BoolVar(&withOverlay, "overlay", false, "Also write the out-of-gamut warning overlay")
	simulateCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for output files (default: next to each input)")
}

type fileReport struct {
	File  string         `json:"file"`
	Stats proofsim.Stats `json:"stats"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	settings, err := buildSettings()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return simulateOne(args[0], settings, true)
	}
	// Independent files are processed concurrently; each individual run
	// stays strictly sequential internally.
	errs := make([]error, len(args))
	werr := parallel.Run_in_parallel_over_range(0, func(start, limit int) {
		for i := start; i < limit; i++ {
			errs[i] = simulateOne(args[i], settings, false)
		}
	}, 0, len(args))
	if werr != nil {
		return werr
	}
	var failed int
	for i, err := range errs {
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", args[i], err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func buildSettings() (proofsim.Settings, error) {
	p, err := substrate.Lookup(substrateName)
	if err != nil {
		return proofsim.Settings{}, err
	}
	settings := proofsim.DefaultSettings(p)
	settings.GamutOverlay = withOverlay
	if toneShift >= 0 {
		if toneShift > 1 {
			return proofsim.Settings{}, fmt.Errorf("tone-shift must be in [0,1], got %g", toneShift)
		}
		settings.ToneShift = toneShift
	}
	for _, ch := range strings.ToLower(hideChannels) {
		switch ch {
		case 'c':
			settings.ShowC = false
		case 'm':
			settings.ShowM = false
		case 'y':
			settings.ShowY = false
		case 'k':
			settings.ShowK = false
		default:
			return proofsim.Settings{}, fmt.Errorf("unknown channel %q in --hide (valid: c, m, y, k)", string(ch))
		}
	}
	return settings, nil
}

func simulateOne(path string, settings proofsim.Settings, showProgress bool) error {
	buf, err := decode.Open(path)
	if err != nil {
		return err
	}
	req := proofsim.Request{Pixels: buf.Pix, Width: buf.Width, Height: buf.Height, Settings: settings}

	var result *proofsim.Result
	if showProgress {
		for ev := range proofsim.RunAsync(req) {
			switch ev := ev.(type) {
			case *proofsim.Progress:
				fmt.Fprintf(os.Stderr, "\r%s: %d%%", path, ev.Percent)
			case *proofsim.Completed:
				fmt.Fprintf(os.Stderr, "\r%s: done\n", path)
				result = ev.Result
			case *proofsim.Failed:
				fmt.Fprintln(os.Stderr)
				return ev.Err
			}
		}
	} else {
		if result, err = proofsim.Process(req, nil); err != nil {
			return err
		}
	}

	if err = writePNG(outputPath(path, ".sim.png"), result.Pixels, result.Width, result.Height); err != nil {
		return err
	}
	if settings.GamutOverlay {
		if err = writePNG(outputPath(path, ".overlay.png"), result.Overlay, result.Width, result.Height); err != nil {
			return err
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(fileReport{File: path, Stats: result.Stats})
}

func outputPath(input, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+suffix)
}

func writePNG(path string, pix []byte, width, height int) error {
	img := &image.NRGBA{Pix: pix, Stride: 4 * width, Rect: image.Rect(0, 0, width, height)}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return err
	}
	if err = png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
