package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kovidgoyal/proofsim"
)

var rootCmd = &cobra.Command{
	Use:   "proofsim",
	Short: "Simulate how images render in four-color print",
	Long: `proofsim separates RGB images into CMYK ink channels, applies a
dot-gain model for a chosen print substrate, flags colors that are likely
unreproducible and reports ink coverage statistics with a risk verdict.

The simulation is a deliberately simplified approximation for previewing,
not a profile-based color management pipeline.`,
	Version:       proofsim.Version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
