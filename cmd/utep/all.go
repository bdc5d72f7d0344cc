package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/log"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewAllCmd creates the all command.
func NewAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Run all three experiment pipelines",
		Long: `All runs the dijet, pumpprobe, and infrared pipelines concurrently and
prints one report per experiment once every pipeline has finished.

An individual pipeline failure does not stop the others; it is recorded
in that experiment's report.

Examples:
  # Run the full experimental program
  utep all

  # Pin every generator to one seed
  utep all --seed 7

  # Run the pipelines one at a time
  utep all --concurrency 1`,
		Args: cobra.NoArgs,
		RunE: runAllCmd,
	}

	addRunFlags(cmd)
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of pipelines run in parallel")

	return cmd
}

// runAllCmd executes the all command.
func runAllCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
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

	return runAll(ctx, cmd.OutOrStdout(), cfg, logger)
}

// runAll runs every experiment pipeline through the batch processor.
//
// Progress lines stream as pipelines finish; the full reports print in
// canonical experiment order afterwards so concurrent completion cannot
// interleave them.
func runAll(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	experiments := model.Experiments()

	fmt.Fprintf(out, "Running %d experiment pipelines (concurrency: %d)...\n\n",
		len(experiments), cfg.Concurrency)
	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(cfg,
		func(exp model.Experiment) *pipeline.Pipeline {
			return pipeline.NewExperimentPipeline(exp, cfg, pipeline.WithLogger(logger))
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	var mu sync.Mutex
	completed := 0
	reports := make([]*model.ExperimentReport, len(experiments))

	err := bp.ProcessBatchWithCallback(ctx, experiments, func(rep *model.ExperimentReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		completed++
		fmt.Fprintf(out, "[%d/%d] %s completed (%s)\n",
			completed, len(experiments), rep.Experiment.Title(), runStatus(rep))
		reports[index] = rep
	})
	if err != nil {
		return fmt.Errorf("batch analysis failed: %w", err)
	}

	fmt.Fprintf(out, "\nAll pipelines completed in %s\n",
		time.Since(startTime).Round(time.Millisecond))

	db := openRunDB(cfg, logger)
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	for _, rep := range reports {
		if rep == nil {
			continue
		}

		fmt.Fprintln(out)
		if err := outputReport(out, cfg, rep); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		if err := saveRunReport(ctx, db, rep, logger); err != nil {
			logger.Warn("failed to save run to history",
				"experiment", rep.Experiment.String(), "error", err)
		}
	}

	return nil
}

// runStatus summarizes a finished pipeline run in one word for the
// progress line.
func runStatus(rep *model.ExperimentReport) string {
	switch {
	case rep.Error != nil:
		return "failed"
	case !rep.FitSucceeded():
		return "fit diverged"
	default:
		return "ok"
	}
}
