package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for utep.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "utep",
		Short: "Simulated analyses for the unified theory experimental program",
		Long: `utep simulates and analyzes the three experiments that test the unified
theory predictions: an LHC dijet resonance search, a femtosecond
pump-probe correlation measurement, and a high-resolution infrared
absorption search.

Each run generates a synthetic measurement containing the predicted
features, fits the published search model to it, and reports whether the
predictions are recovered. Completed runs are recorded in a local history
database so consecutive runs can be compared.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-file", "", "Append a JSON copy of the log to this file")

	// Add subcommands
	cmd.AddCommand(NewDijetCmd())
	cmd.AddCommand(NewPumpProbeCmd())
	cmd.AddCommand(NewInfraredCmd())
	cmd.AddCommand(NewAllCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
