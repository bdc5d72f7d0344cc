package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/database"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/log"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/pipeline"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/report"
	"github.com/spf13/cobra"
)

// addRunFlags registers the flags shared by every pipeline command.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: utep.yaml in current or home directory)")
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory for figure, data, and analysis files (created if needed)")
	cmd.Flags().Uint64("seed", 0,
		"Override the random seed of every experiment for this run")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().Bool("no-save", false,
		"Do not record this run in the history database")
}

// runExperimentCmd executes a single-experiment pipeline command.
func runExperimentCmd(cmd *cobra.Command, exp model.Experiment) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, cleanup := log.Setup(cfg.LogFile, cfg.Verbose)
	defer func() { _ = cleanup() }()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runExperiment(ctx, cmd.OutOrStdout(), exp, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getLogFileFlag retrieves the log-file flag from the command or its parent.
func getLogFileFlag(cmd *cobra.Command) string {
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		logFile, err = cmd.Root().PersistentFlags().GetString("log-file")
		if err != nil {
			return ""
		}
	}
	return logFile
}

// buildConfig creates a Config from cobra command flags.
//
// Precedence is defaults, then the YAML file, then explicit flags, so a
// flag always wins over the file it would otherwise be read from.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Merge overrides from the configuration file. If the user explicitly
	// specified a path, a missing file is an error; the default search
	// locations are optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
	if err != nil {
		return nil, err
	}

	// An explicit --seed pins all three generators to one value. The flag
	// is checked for presence rather than non-zero because zero is a valid
	// seed.
	if cmd.Flags().Changed("seed") {
		seed, err := cmd.Flags().GetUint64("seed")
		if err != nil {
			return nil, err
		}
		cfg.SetSeed(seed)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.NoSave, err = cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.LogFile = getLogFileFlag(cmd)

	return cfg, nil
}

// runExperiment runs one analysis pipeline and reports the outcome.
//
// A fit that did not converge is not an error: the report records the
// failure and the exit code stays zero. Only configuration, IO, and
// cancellation errors propagate.
func runExperiment(ctx context.Context, out io.Writer, exp model.Experiment, cfg *config.Config, logger *slog.Logger) error {
	seed := pipeline.SeedFor(cfg, exp)

	logger.Info("starting analysis",
		"experiment", exp.String(),
		"seed", seed,
		"outputDir", cfg.OutputDir,
	)

	fmt.Fprintf(out, "Running %s...\n", exp.Title())
	startTime := time.Now()

	rep := model.NewExperimentReport(exp, seed)
	p := pipeline.NewExperimentPipeline(exp, cfg, pipeline.WithLogger(logger))

	if err := p.Execute(ctx, rep); err != nil {
		return fmt.Errorf("analysis of %s failed: %w", exp.String(), err)
	}

	fmt.Fprintf(out, "Analysis completed in %s\n\n", time.Since(startTime).Round(time.Millisecond))

	if err := outputReport(out, cfg, rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	db := openRunDB(cfg, logger)
	if db != nil {
		defer func() { _ = db.Close() }()
	}
	if err := saveRunReport(ctx, db, rep, logger); err != nil {
		logger.Warn("failed to save run to history", "experiment", exp.String(), "error", err)
	}

	return nil
}

// openRunDB opens the run history database unless saving is disabled.
// Open failures degrade to a nil database rather than failing the run;
// the analysis result has already been produced at that point.
func openRunDB(cfg *config.Config, logger *slog.Logger) *database.RunDB {
	if cfg.NoSave {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open run history database", "dir", cfg.DBDir, "error", err)
		return nil
	}
	return db
}

// saveRunReport saves the analysis run to the history database.
// If db is nil, this function is a no-op.
func saveRunReport(ctx context.Context, db *database.RunDB, rep *model.ExperimentReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveReport(ctx, rep)
	if err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}

	logger.Info("run saved to history", "experiment", rep.Experiment.String(), "run_id", id)
	return nil
}

// outputReport writes the analysis report to out in the requested format.
func outputReport(out io.Writer, cfg *config.Config, rep *model.ExperimentReport) error {
	// JSON output (full report with version and summary wrapper)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(out, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(rep)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(out)
		_, err := writer.Write(rep)
		return err
	}

	// Human-readable report (default)
	writer := report.NewTextWriter(out, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(rep)
	return err
}
