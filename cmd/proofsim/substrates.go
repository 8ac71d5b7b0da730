package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kovidgoyal/proofsim/substrate"
)

var substratesCmd = &cobra.Command{
	Use:   "substrates",
	Short: "List the available substrate presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%-10s  %-10s  %-9s  %-15s  %-6s  %s\n", "name", "tone shift", "ink limit", "gamut reduction", "shadow", "highlight")
		for _, p := range substrate.All() {
			fmt.Printf("%-10s  %-10.2f  %8d%%  %-15.2f  %-6.2f  %.2f\n",
				p.Name, p.ToneShiftDefault, p.InkCoverageLimit, p.GamutReductionFactor, p.ShadowResponse, p.HighlightResponse)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(substratesCmd)
}
