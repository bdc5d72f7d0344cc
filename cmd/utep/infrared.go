package main

import (
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/spf13/cobra"
)

// NewInfraredCmd creates the infrared command.
func NewInfraredCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infrared",
		Short: "Run the high-resolution IR absorption search",
		Long: `Infrared simulates an absorption spectrum between 0.1 and 0.8 eV with
the three predicted transition lines as pseudo-Voigt profiles over a
quadratic baseline, fits the fifteen-parameter spectrum model, and
matches every detected line against the predictions.

Examples:
  # Run the search with protocol defaults
  utep infrared

  # Write figure and data files into a campaign directory
  utep infrared -o campaign/

  # Output a JSON report
  utep infrared --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExperimentCmd(cmd, model.ExperimentInfrared)
		},
	}
	addRunFlags(cmd)
	return cmd
}
