package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kovidgoyal/proofsim"
	"github.com/kovidgoyal/proofsim/substrate"
)

var (
	inspectSubstrate string
	inspectToneShift float64
)

var inspectCmd = &cobra.Command{
	Use:   "inspect R G B",
	Short: "Show the ink breakdown of a single color",
	Long: `Inspect converts one 8-bit RGB color into tone-shifted ink channel
percentages for the chosen substrate, the same computation the pipeline
performs per pixel before gamut classification.

Example:
  proofsim inspect 220 30 60 --substrate uncoated`,
	Args: cobra.ExactArgs(3),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectSubstrate, "substrate", "s", substrate.Coated, "Substrate preset (coated, uncoated, newsprint)")
	inspectCmd.Flags().Float64VarP(&inspectToneShift, "tone-shift", "t", -1, "Dot-gain magnitude in [0,1], -1 uses the substrate default")
}

func runInspect(cmd *cobra.Command, args []string) error {
	var rgb [3]uint8
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return fmt.Errorf("channel value %q is not an integer in [0,255]", arg)
		}
		rgb[i] = uint8(v)
	}
	ink, err := proofsim.Inspect(rgb[0], rgb[1], rgb[2], inspectSubstrate, inspectToneShift)
	if err != nil {
		return err
	}
	fmt.Printf("C %d%%  M %d%%  Y %d%%  K %d%%  total coverage %d%%\n", ink.C, ink.M, ink.Y, ink.K, ink.TotalCoverage)
	return nil
}
