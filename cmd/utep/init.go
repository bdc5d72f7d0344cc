package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/utep.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
// This command generates a template configuration file for utep.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a template configuration file",
		Long: `Generate a template YAML configuration file with all available options.

The generated file contains the default seeds, sample counts, instrument
constants, and theory predictions for every experiment, with comments
explaining each option. Edit the file to customize analysis behavior.

By default, the file is created as utep.yaml in the current directory.
Use the --output flag to specify a different location.

Examples:
  # Create utep.yaml in the current directory
  utep init

  # Create configuration file at a specific path
  utep init --output /path/to/my-config.yaml

  # Overwrite existing file
  utep init --force`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output path for the configuration file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template content
	templateContent, err := configTemplate.ReadFile("templates/utep.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Write the template file
	if err := os.WriteFile(outputPath, templateContent, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Created configuration file: %s\n", outputPath)
	fmt.Println("\nEdit this file to customize analysis behavior:")
	fmt.Println("  - Random seeds and sample counts per experiment")
	fmt.Println("  - Noise levels and instrument constants")
	fmt.Println("  - The predicted features each search looks for")

	return nil
}
