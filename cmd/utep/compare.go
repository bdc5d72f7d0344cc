package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/database"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/spf13/cobra"
)

// Constants for signal direction and the float comparison cutoff.
const (
	signalStrengthened = "strengthened"
	signalWeakened     = "weakened"
	signalUnchanged    = "unchanged"

	// significanceEpsilon separates genuine significance drift from float
	// noise when two runs used the same seed.
	significanceEpsilon = 1e-9
)

// NewCompareCmd creates the compare command.
// This command compares analysis runs recorded in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [experiment]",
		Short: "Compare analysis runs recorded in the history database",
		Long: `Compare displays how the analysis outcome drifted between two recorded
runs of an experiment.

This command retrieves run history from the database and shows:
- The drift in local signal significance per prediction
- Predictions newly matched or no longer matched
- Changes in peak count and fit convergence

The comparison requires at least two recorded runs for the specified
experiment. Runs are recorded automatically unless --no-save is used.

Examples:
  # Compare the latest two dijet runs
  utep compare dijet

  # List run history for an experiment
  utep compare --list infrared

  # Compare with a specific historical run by ID
  utep compare --with-run-id 5 dijet

  # Compare runs since a specific date
  utep compare --since "2026-01-01" pumpprobe

  # Output comparison in JSON format
  utep compare --json dijet

  # List all experiments recorded in the database
  utep compare --list-experiments`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List run history for the specified experiment")
	cmd.Flags().BoolP("list-experiments", "L", false,
		"List all experiments recorded in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific run by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first run after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Handle --list-experiments flag first (requires database but no name)
	listExperiments, err := cmd.Flags().GetBool("list-experiments")
	if err != nil {
		return err
	}

	// Validate arguments before opening database (unless --list-experiments)
	var exp model.Experiment
	if !listExperiments {
		if len(args) == 0 {
			return errors.New("experiment name is required (use --list-experiments to see recorded experiments)")
		}

		exp, err = model.ParseExperiment(args[0])
		if err != nil {
			return fmt.Errorf("invalid experiment: %w", err)
		}
	}

	// Use XDG data directory for database
	dbDir := config.XDGDataDir()

	// Open database
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	// Handle --list-experiments flag
	if listExperiments {
		return listRecordedExperiments(ctx, out, db)
	}

	// Handle --list flag
	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listRunHistory(ctx, out, db, exp)
	}

	// Get output format flags
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	// Get comparison target flags
	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	// Perform comparison
	return runComparison(ctx, out, db, exp, withRunID, sinceDate, jsonOutput, markdownOutput)
}

// listRecordedExperiments lists all experiments that have runs in the database.
func listRecordedExperiments(ctx context.Context, out io.Writer, db *database.RunDB) error {
	experiments, err := db.ListExperiments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list experiments: %w", err)
	}

	if len(experiments) == 0 {
		fmt.Fprintln(out, "No runs found in the history database.")
		fmt.Fprintln(out, "\nUse 'utep dijet', 'utep pumpprobe', 'utep infrared', or 'utep all' to run an analysis.")
		return nil
	}

	fmt.Fprintf(out, "Recorded experiments (%d):\n\n", len(experiments))
	for _, name := range experiments {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	fmt.Fprintln(out, "\nUse 'utep compare --list <experiment>' to see run history for an experiment.")

	return nil
}

// listRunHistory lists all recorded runs for a specific experiment.
func listRunHistory(ctx context.Context, out io.Writer, db *database.RunDB, exp model.Experiment) error {
	runs, err := db.RunHistoryMetadata(ctx, exp.String(), time.Time{})
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintf(out, "No run history found for %s\n", exp.String())
		fmt.Fprintf(out, "\nUse 'utep %s' to run this analysis.\n", exp.String())
		return nil
	}

	fmt.Fprintf(out, "Run history for %s (%d runs):\n\n", exp.String(), len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-12s  %-10s  %s\n", "ID", "Date", "Seed", "Fit", "Summary")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 76))

	for _, meta := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-12d  %-10s  %s\n",
			meta.ID,
			meta.StartedAt.Format("2006-01-02 15:04:05"),
			meta.Seed,
			formatFitStatus(meta.Success),
			formatRunSummary(meta.Summary),
		)
	}

	fmt.Fprintf(out, "\nUse 'utep compare %s' to compare the latest two runs.\n", exp.String())
	fmt.Fprintf(out, "Use 'utep compare --with-run-id <id> %s' to compare with a specific run.\n", exp.String())

	return nil
}

// formatFitStatus formats the fit convergence flag for display.
func formatFitStatus(success bool) string {
	if success {
		return "converged"
	}
	return "diverged"
}

// formatRunSummary formats the stored run summary into a one-line string.
func formatRunSummary(summary *model.SummaryReport) string {
	if summary == nil {
		return "N/A"
	}

	var parts []string
	if summary.PeakCount > 0 {
		parts = append(parts, fmt.Sprintf("%d peaks", summary.PeakCount))
	}
	if summary.MatchCount > 0 {
		parts = append(parts, fmt.Sprintf("%d matches", summary.MatchCount))
	}
	if summary.MaxSignificance > 0 {
		parts = append(parts, fmt.Sprintf("max sig %.2f", summary.MaxSignificance))
	}

	if len(parts) == 0 {
		return "no features detected"
	}
	return strings.Join(parts, ", ")
}

// runComparison performs the actual comparison between analysis runs.
func runComparison(ctx context.Context, out io.Writer, db *database.RunDB, exp model.Experiment, withRunID int64, sinceDate string, jsonOutput, markdownOutput bool) error {
	// Get the run history
	reports, err := db.RunHistory(ctx, exp.String(), time.Time{})
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no run history found for %s", exp.String())
	}

	if len(reports) < 2 && withRunID == 0 && sinceDate == "" {
		return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(reports))
	}

	// Determine which runs to compare
	var currentReport, previousReport *model.ExperimentReport

	// Latest run is always the current one
	currentReport = reports[0]

	if withRunID > 0 {
		// Find the run with the specified ID
		previousReport, err = db.ReportByID(ctx, withRunID)
		if err != nil {
			return fmt.Errorf("failed to get run with ID %d: %w", withRunID, err)
		}
		if previousReport == nil {
			return fmt.Errorf("run with ID %d not found", withRunID)
		}
		// Validate that the run ID belongs to the same experiment
		if previousReport.Experiment != exp {
			return fmt.Errorf("run ID %d belongs to %s, not %s", withRunID, previousReport.Experiment.String(), exp.String())
		}
	} else if sinceDate != "" {
		// Parse the date and find the first (oldest) run at or after the specified date
		parsedDate, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		// Runs are sorted newest first, so iterate in reverse to find the
		// oldest run at or after the date
		for i := len(reports) - 1; i >= 0; i-- {
			r := reports[i]
			if r.StartedAt.After(parsedDate) || r.StartedAt.Equal(parsedDate) {
				previousReport = r
				break
			}
		}
		if previousReport == nil {
			return fmt.Errorf("no runs found since %s", sinceDate)
		}
		// If only one run matches and it's the current run, we can't compare
		if previousReport == currentReport {
			return fmt.Errorf("only one run found since %s; at least 2 runs are required for comparison", sinceDate)
		}
	} else {
		// Default: compare with the previous run
		previousReport = reports[1]
	}

	// Generate comparison result
	comparison := compareRuns(previousReport, currentReport)

	// Output the result
	if jsonOutput {
		return outputComparisonJSON(out, comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(out, comparison)
	}
	return outputComparisonText(out, comparison)
}

// RunComparison holds the result of comparing two analysis runs.
type RunComparison struct {
	// Experiment is the canonical experiment name.
	Experiment string `json:"experiment"`

	// PreviousRun contains metadata about the previous run.
	PreviousRun RunInfo `json:"previous_run"`

	// CurrentRun contains metadata about the current run.
	CurrentRun RunInfo `json:"current_run"`

	// Signal describes the overall drift of the measured signal.
	Signal SignalChange `json:"signal_change"`

	// SignificanceDrifts lists the per-prediction local significance
	// changes, sorted by prediction name.
	SignificanceDrifts []SignificanceDrift `json:"significance_drifts,omitempty"`

	// NewMatches are predictions matched in the current run but not the
	// previous one.
	NewMatches []string `json:"new_matches,omitempty"`

	// LostMatches are predictions matched in the previous run but not the
	// current one.
	LostMatches []string `json:"lost_matches,omitempty"`

	// UnchangedMatches is the number of predictions matched in both runs.
	UnchangedMatches int `json:"unchanged_matches"`
}

// RunInfo contains metadata about one run for comparison display.
type RunInfo struct {
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Seed is the random seed the generator was primed with.
	Seed uint64 `json:"seed"`

	// FitSuccess reports whether the fit converged.
	FitSuccess bool `json:"fit_success"`

	// ReducedChiSquare is the goodness of fit, valid when FitSuccess is true.
	ReducedChiSquare float64 `json:"reduced_chi_square,omitempty"`

	// PeakCount is the number of peaks that passed the detection filters.
	PeakCount int `json:"peak_count"`

	// MatchCount is the number of predictions matched to a detected peak.
	MatchCount int `json:"match_count"`

	// MaxSignificance is the largest per-prediction local significance.
	MaxSignificance float64 `json:"max_significance"`
}

// SignalChange describes the drift of the measured signal between runs.
type SignalChange struct {
	// Direction is "strengthened", "weakened", or "unchanged".
	Direction string `json:"direction"`

	// MaxSignificanceDelta is the change in the maximum local significance.
	MaxSignificanceDelta float64 `json:"max_significance_delta"`

	// MatchCountDelta is the change in matched prediction count.
	MatchCountDelta int `json:"match_count_delta"`

	// PeakCountDelta is the change in detected peak count.
	PeakCountDelta int `json:"peak_count_delta"`

	// FitStatusChanged reports whether fit convergence flipped between runs.
	FitStatusChanged bool `json:"fit_status_changed"`
}

// SignificanceDrift is the change in local significance for one prediction.
type SignificanceDrift struct {
	// Prediction is the prediction name.
	Prediction string `json:"prediction"`

	// Previous and Current are the local significance values of the runs.
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`

	// Delta is Current minus Previous.
	Delta float64 `json:"delta"`
}

// compareRuns compares two analysis runs and generates a comparison result.
func compareRuns(previous, current *model.ExperimentReport) *RunComparison {
	previousSummary := model.NewSummaryReport(previous)
	currentSummary := model.NewSummaryReport(current)

	result := &RunComparison{
		Experiment:  current.Experiment.String(),
		PreviousRun: runInfo(previousSummary),
		CurrentRun:  runInfo(currentSummary),
	}

	result.Signal = signalChange(result.PreviousRun, result.CurrentRun)
	result.SignificanceDrifts = significanceDrifts(previousSummary, currentSummary)
	result.NewMatches, result.LostMatches, result.UnchangedMatches =
		matchChanges(previousSummary.MatchedPredictions, currentSummary.MatchedPredictions)

	return result
}

// runInfo extracts the comparison metadata from a run summary.
func runInfo(summary *model.SummaryReport) RunInfo {
	return RunInfo{
		StartedAt:        summary.StartedAt,
		Seed:             summary.Seed,
		FitSuccess:       summary.FitSuccess,
		ReducedChiSquare: summary.ReducedChiSquare,
		PeakCount:        summary.PeakCount,
		MatchCount:       summary.MatchCount,
		MaxSignificance:  summary.MaxSignificance,
	}
}

// signalChange calculates the overall signal drift between two runs.
//
// A fit convergence flip dominates the direction; then the matched
// prediction count; then the maximum local significance. Seed-identical
// runs land on "unchanged" because every delta is exactly zero.
func signalChange(previous, current RunInfo) SignalChange {
	change := SignalChange{
		MaxSignificanceDelta: current.MaxSignificance - previous.MaxSignificance,
		MatchCountDelta:      current.MatchCount - previous.MatchCount,
		PeakCountDelta:       current.PeakCount - previous.PeakCount,
		FitStatusChanged:     current.FitSuccess != previous.FitSuccess,
	}

	switch {
	case change.FitStatusChanged && current.FitSuccess:
		change.Direction = signalStrengthened
	case change.FitStatusChanged:
		change.Direction = signalWeakened
	case change.MatchCountDelta > 0:
		change.Direction = signalStrengthened
	case change.MatchCountDelta < 0:
		change.Direction = signalWeakened
	case change.MaxSignificanceDelta > significanceEpsilon:
		change.Direction = signalStrengthened
	case change.MaxSignificanceDelta < -significanceEpsilon:
		change.Direction = signalWeakened
	default:
		change.Direction = signalUnchanged
	}

	return change
}

// significanceDrifts builds the per-prediction significance drift list from
// two run summaries. Predictions present in either run appear, sorted by
// name so the output is deterministic.
func significanceDrifts(previous, current *model.SummaryReport) []SignificanceDrift {
	names := make(map[string]struct{})
	for name := range previous.Significances {
		names[name] = struct{}{}
	}
	for name := range current.Significances {
		names[name] = struct{}{}
	}
	if len(names) == 0 {
		return nil
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	drifts := make([]SignificanceDrift, 0, len(sorted))
	for _, name := range sorted {
		prev := previous.Significances[name]
		cur := current.Significances[name]
		drifts = append(drifts, SignificanceDrift{
			Prediction: name,
			Previous:   prev,
			Current:    cur,
			Delta:      cur - prev,
		})
	}

	return drifts
}

// matchChanges diffs the matched prediction names of two runs.
func matchChanges(previous, current []string) (newMatches, lostMatches []string, unchanged int) {
	previousSet := make(map[string]struct{}, len(previous))
	for _, name := range previous {
		previousSet[name] = struct{}{}
	}
	currentSet := make(map[string]struct{}, len(current))
	for _, name := range current {
		currentSet[name] = struct{}{}
	}

	for _, name := range current {
		if _, exists := previousSet[name]; !exists {
			newMatches = append(newMatches, name)
		}
	}
	for _, name := range previous {
		if _, exists := currentSet[name]; exists {
			unchanged++
		} else {
			lostMatches = append(lostMatches, name)
		}
	}

	sort.Strings(newMatches)
	sort.Strings(lostMatches)
	return newMatches, lostMatches, unchanged
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(out io.Writer, result *RunComparison) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(out io.Writer, result *RunComparison) error {
	fmt.Fprintf(out, "# Run Comparison: %s\n\n", result.Experiment)

	// Signal drift summary
	fmt.Fprintln(out, "## Summary")
	fmt.Fprintf(out, "\n**Signal Status:** %s\n\n", formatSignalDirection(result.Signal.Direction))

	// Run metadata table
	fmt.Fprintln(out, "| Metric | Previous | Current | Change |")
	fmt.Fprintln(out, "|--------|----------|---------|--------|")
	fmt.Fprintf(out, "| Date | %s | %s | - |\n",
		result.PreviousRun.StartedAt.Format("2006-01-02 15:04"),
		result.CurrentRun.StartedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "| Seed | %d | %d | - |\n",
		result.PreviousRun.Seed,
		result.CurrentRun.Seed)
	fmt.Fprintf(out, "| Fit converged | %s | %s | - |\n",
		formatYesNo(result.PreviousRun.FitSuccess),
		formatYesNo(result.CurrentRun.FitSuccess))
	fmt.Fprintf(out, "| Reduced chi2 | %s | %s | - |\n",
		formatChiSquare(result.PreviousRun),
		formatChiSquare(result.CurrentRun))
	fmt.Fprintf(out, "| Peaks | %d | %d | %s |\n",
		result.PreviousRun.PeakCount,
		result.CurrentRun.PeakCount,
		formatDelta(result.Signal.PeakCountDelta))
	fmt.Fprintf(out, "| Matches | %d | %d | %s |\n",
		result.PreviousRun.MatchCount,
		result.CurrentRun.MatchCount,
		formatDelta(result.Signal.MatchCountDelta))
	fmt.Fprintf(out, "| Max significance | %.2f | %.2f | %s |\n",
		result.PreviousRun.MaxSignificance,
		result.CurrentRun.MaxSignificance,
		formatFloatDelta(result.Signal.MaxSignificanceDelta))

	// Significance drift per prediction
	if len(result.SignificanceDrifts) > 0 {
		fmt.Fprintf(out, "\n## Significance Drift\n\n")
		fmt.Fprintln(out, "| Prediction | Previous | Current | Delta |")
		fmt.Fprintln(out, "|------------|----------|---------|-------|")
		for _, drift := range result.SignificanceDrifts {
			fmt.Fprintf(out, "| %s | %.2f | %.2f | %s |\n",
				drift.Prediction, drift.Previous, drift.Current, formatFloatDelta(drift.Delta))
		}
	}

	// New matches
	if len(result.NewMatches) > 0 {
		fmt.Fprintf(out, "\n## New Matches (%d)\n\n", len(result.NewMatches))
		for _, name := range result.NewMatches {
			fmt.Fprintf(out, "- **%s**\n", name)
		}
	}

	// Lost matches
	if len(result.LostMatches) > 0 {
		fmt.Fprintf(out, "\n## Lost Matches (%d)\n\n", len(result.LostMatches))
		for _, name := range result.LostMatches {
			fmt.Fprintf(out, "- ~~%s~~\n", name)
		}
	}

	// Unchanged count
	if result.UnchangedMatches > 0 {
		fmt.Fprintf(out, "\n---\n\n*%d matches unchanged*\n", result.UnchangedMatches)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(out io.Writer, result *RunComparison) error {
	fmt.Fprintf(out, "Run Comparison: %s\n", result.Experiment)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	// Signal drift summary
	fmt.Fprintf(out, "\nSignal Status: %s\n", formatSignalDirection(result.Signal.Direction))

	// Run dates
	fmt.Fprintf(out, "\nPrevious run: %s (seed %d)\n",
		result.PreviousRun.StartedAt.Format("2006-01-02 15:04:05"), result.PreviousRun.Seed)
	fmt.Fprintf(out, "Current run:  %s (seed %d)\n",
		result.CurrentRun.StartedAt.Format("2006-01-02 15:04:05"), result.CurrentRun.Seed)

	// Summary table
	fmt.Fprintln(out, "\nAnalysis Summary:")
	fmt.Fprintf(out, "  %-18s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 54))
	fmt.Fprintf(out, "  %-18s  %-10s  %-10s  %-10s\n", "Fit converged",
		formatYesNo(result.PreviousRun.FitSuccess),
		formatYesNo(result.CurrentRun.FitSuccess), "-")
	fmt.Fprintf(out, "  %-18s  %-10s  %-10s  %-10s\n", "Reduced chi2",
		formatChiSquare(result.PreviousRun),
		formatChiSquare(result.CurrentRun), "-")
	fmt.Fprintf(out, "  %-18s  %-10d  %-10d  %-10s\n", "Peaks",
		result.PreviousRun.PeakCount, result.CurrentRun.PeakCount,
		formatDelta(result.Signal.PeakCountDelta))
	fmt.Fprintf(out, "  %-18s  %-10d  %-10d  %-10s\n", "Matches",
		result.PreviousRun.MatchCount, result.CurrentRun.MatchCount,
		formatDelta(result.Signal.MatchCountDelta))
	fmt.Fprintf(out, "  %-18s  %-10.2f  %-10.2f  %-10s\n", "Max significance",
		result.PreviousRun.MaxSignificance, result.CurrentRun.MaxSignificance,
		formatFloatDelta(result.Signal.MaxSignificanceDelta))

	// Significance drift per prediction
	if len(result.SignificanceDrifts) > 0 {
		fmt.Fprintln(out, "\nSignificance Drift:")
		for _, drift := range result.SignificanceDrifts {
			fmt.Fprintf(out, "  %-10s  %.2f -> %.2f (%s)\n",
				drift.Prediction, drift.Previous, drift.Current, formatFloatDelta(drift.Delta))
		}
	}

	// New matches
	if len(result.NewMatches) > 0 {
		fmt.Fprintf(out, "\nNew Matches (%d):\n", len(result.NewMatches))
		for _, name := range result.NewMatches {
			fmt.Fprintf(out, "  [+] %s\n", name)
		}
	}

	// Lost matches
	if len(result.LostMatches) > 0 {
		fmt.Fprintf(out, "\nLost Matches (%d):\n", len(result.LostMatches))
		for _, name := range result.LostMatches {
			fmt.Fprintf(out, "  [-] %s\n", name)
		}
	}

	// Unchanged count
	if result.UnchangedMatches > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d matches\n", result.UnchangedMatches)
	}

	return nil
}

// formatSignalDirection formats the signal drift direction for display.
func formatSignalDirection(direction string) string {
	switch direction {
	case signalStrengthened:
		return "STRENGTHENED (evidence increased)"
	case signalWeakened:
		return "WEAKENED (evidence decreased)"
	default:
		return "UNCHANGED"
	}
}

// formatYesNo formats a boolean for table display.
func formatYesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// formatChiSquare formats the reduced chi-square of a run, or "-" when the
// fit did not converge.
func formatChiSquare(info RunInfo) string {
	if !info.FitSuccess {
		return "-"
	}
	return strconv.FormatFloat(info.ReducedChiSquare, 'f', 3, 64)
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}

// formatFloatDelta formats a float delta with sign for display.
func formatFloatDelta(delta float64) string {
	if delta > 0 {
		return fmt.Sprintf("+%.2f", delta)
	}
	return fmt.Sprintf("%.2f", delta)
}
