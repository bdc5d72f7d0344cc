package main

import (
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/spf13/cobra"
)

// NewPumpProbeCmd creates the pumpprobe command.
func NewPumpProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pumpprobe",
		Short: "Run the femtosecond pump-probe measurement",
		Long: `Pumpprobe simulates a pump-probe delay scan across -50 to +50 fs with
the predicted correlation feature at 20.4 fs convolved with the laser
response, recovers the correlation time with a bounded Gaussian fit, and
compares the measured peak position against the prediction.

Examples:
  # Run the measurement with protocol defaults
  utep pumpprobe

  # Run with overrides from a configuration file
  utep pumpprobe -c quiet.yaml

  # Output a Markdown report
  utep pumpprobe --markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExperimentCmd(cmd, model.ExperimentPumpProbe)
		},
	}
	addRunFlags(cmd)
	return cmd
}
