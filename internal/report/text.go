package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/physics"
)

// bannerWidth is the width of the "=" and "-" section dividers.
const bannerWidth = 70

// secondsToFemto converts the stored time axis to displayed femtoseconds.
const secondsToFemto = 1e15

// TextWriter outputs human-readable text reports.
// The format follows the console register of the analysis protocols:
// banner, numbered pipeline sections with bullet values, completion footer.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool

	// printer renders large event counts with digit grouping.
	printer *message.Printer
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
		printer:    message.NewPrinter(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *TextWriter) Write(report *model.ExperimentReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)

	switch report.Experiment {
	case model.ExperimentDijet:
		w.writeDijetBody(&sb, report)
	case model.ExperimentPumpProbe:
		w.writePumpProbeBody(&sb, report)
	case model.ExperimentInfrared:
		w.writeInfraredBody(&sb, report)
	}

	w.writeOutputFiles(&sb, report)
	w.writeFooter(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs the summary report in human-readable format.
func (w *TextWriter) WriteSummary(summary *model.SummaryReport) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("-", bannerWidth))
	sb.WriteString("\n")
	sb.WriteString("RUN SUMMARY\n")
	sb.WriteString(strings.Repeat("-", bannerWidth))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Experiment:  %s\n", summary.Experiment))
	sb.WriteString(fmt.Sprintf("  Date:        %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("  Elapsed:     %s\n", summary.Elapsed))
	sb.WriteString(fmt.Sprintf("  Seed:        %d\n", summary.Seed))
	sb.WriteString(fmt.Sprintf("  Points:      %d\n", summary.Points))
	sb.WriteString("\n")

	if summary.FitSuccess {
		sb.WriteString("  Fit:         converged\n")
		sb.WriteString(fmt.Sprintf("  Chi2/dof:    %.2f\n", summary.ReducedChiSquare))
	} else if summary.FitMessage != "" {
		sb.WriteString(fmt.Sprintf("  Fit:         FAILED - %s\n", summary.FitMessage))
	} else {
		sb.WriteString("  Fit:         not performed\n")
	}

	sb.WriteString(fmt.Sprintf("  Peaks:       %d\n", summary.PeakCount))
	if len(summary.MatchedPredictions) > 0 {
		sb.WriteString(fmt.Sprintf("  Matches:     %d (%s)\n",
			summary.MatchCount, strings.Join(summary.MatchedPredictions, ", ")))
	} else {
		sb.WriteString(fmt.Sprintf("  Matches:     %d\n", summary.MatchCount))
	}
	if summary.MaxSignificance > 0 {
		sb.WriteString(fmt.Sprintf("  Max local significance: %.1fσ\n", summary.MaxSignificance))
	}
	sb.WriteString("\n")

	switch {
	case summary.TimedOut:
		sb.WriteString("  Status:      TIMED OUT (partial results)\n")
	case summary.Error != "":
		sb.WriteString(fmt.Sprintf("  Status:      ERROR - %s\n", summary.Error))
	default:
		sb.WriteString("  Status:      Complete\n")
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the banner with the experiment title.
func (w *TextWriter) writeHeader(sb *strings.Builder, report *model.ExperimentReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
	sb.WriteString(strings.ToUpper(report.Experiment.Title()))
	sb.WriteString("\n")
	sb.WriteString("Simulated search for predicted features\n")
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")

	if w.verbose {
		sb.WriteString(fmt.Sprintf("\nSeed: %d\n", report.Seed))
		if report.Elapsed > 0 {
			sb.WriteString(fmt.Sprintf("Elapsed: %s\n", report.Elapsed))
		}
	}
}

// writeDijetBody writes the numbered sections for the dijet search.
func (w *TextWriter) writeDijetBody(sb *strings.Builder, report *model.ExperimentReport) {
	sb.WriteString("\n1. Simulating LHC dijet data...\n")
	if ds := report.Dataset; ds != nil && ds.Len() > 0 {
		sb.WriteString(fmt.Sprintf("   • Mass range: %.0f - %.0f GeV\n", ds.X[0], ds.X[ds.Len()-1]))
		total := 0.0
		for _, y := range ds.Y {
			total += y
		}
		sb.WriteString(w.printer.Sprintf("   • Total events: %.0f\n", total))
	} else {
		sb.WriteString("   • No data simulated\n")
	}

	sb.WriteString("\n2. Calculating local significances...\n")
	if len(report.LocalSignificances) == 0 {
		sb.WriteString("   • No significances computed\n")
	}
	for _, ls := range report.LocalSignificances {
		sb.WriteString(fmt.Sprintf("   • %s (%.1f TeV): %.1fσ\n", ls.Prediction, ls.Center/1000, ls.Value))
	}

	sb.WriteString("\n3. Fitting for resonances...\n")
	w.writeFitStatus(sb, report)
	if report.FitSucceeded() {
		for i, ls := range report.LocalSignificances {
			if sig, ok := report.Fit.Significance("amp" + strconv.Itoa(i+1)); ok {
				sb.WriteString(fmt.Sprintf("   • %s: %.1fσ\n", ls.Prediction, sig))
			}
		}
		w.writeFitDetail(sb, report)
	}
}

// writePumpProbeBody writes the numbered sections for the pump-probe run.
func (w *TextWriter) writePumpProbeBody(sb *strings.Builder, report *model.ExperimentReport) {
	sb.WriteString("\n1. Generating simulated correlation data...\n")
	if ds := report.Dataset; ds != nil && ds.Len() > 1 {
		sb.WriteString(fmt.Sprintf("   • Time range: %.0f to %.0f fs\n",
			ds.X[0]*secondsToFemto, ds.X[ds.Len()-1]*secondsToFemto))
		sb.WriteString(fmt.Sprintf("   • Time resolution: %.2f fs/point\n",
			(ds.X[1]-ds.X[0])*secondsToFemto))
		sb.WriteString(fmt.Sprintf("   • Average noise: %.2e\n", stat.Mean(ds.Noise, nil)))
	} else {
		sb.WriteString("   • No data simulated\n")
	}

	sb.WriteString("\n2. Finding correlation peak...\n")
	if peak := report.MainPeak; peak != nil {
		sb.WriteString(fmt.Sprintf("   • Peak detected at: %.1f fs\n", peak.X*secondsToFemto))
		sb.WriteString(fmt.Sprintf("   • Amplitude: %.3f\n", peak.Height))
		sb.WriteString(fmt.Sprintf("   • FWHM: %.1f fs\n", peak.FWHM*secondsToFemto))
		if len(report.Matches) > 0 {
			sb.WriteString(fmt.Sprintf("   • Diff from pred: %.1f fs\n",
				report.Matches[0].Difference*secondsToFemto))
		}
	} else {
		sb.WriteString("   • No peak detected!\n")
	}

	sb.WriteString("\n3. Fitting correlation function...\n")
	w.writeFitStatus(sb, report)
	if report.FitSucceeded() {
		if t0, t0err, ok := report.Fit.Param("t0"); ok {
			sb.WriteString(fmt.Sprintf("   • t = %.1f ± %.1f fs\n",
				t0*secondsToFemto, t0err*secondsToFemto))
		}
		if sigma, _, ok := report.Fit.Param("sigma"); ok {
			sb.WriteString(fmt.Sprintf("   • FWHM = %.1f fs\n",
				physics.SigmaToFWHM(sigma)*secondsToFemto))
		}
		if amp, _, ok := report.Fit.Param("amplitude"); ok {
			sb.WriteString(fmt.Sprintf("   • Amplitude = %.3f\n", amp))
		}
		w.writeFitDetail(sb, report)
	}
}

// writeInfraredBody writes the numbered sections for the infrared search.
func (w *TextWriter) writeInfraredBody(sb *strings.Builder, report *model.ExperimentReport) {
	sb.WriteString("\n1. Generating simulated absorption spectrum...\n")
	if ds := report.Dataset; ds != nil && ds.Len() > 1 {
		sb.WriteString(fmt.Sprintf("   • Energy range: %.3f - %.3f eV\n", ds.X[0], ds.X[ds.Len()-1]))
		sb.WriteString(fmt.Sprintf("   • Resolution: %.1e eV/point\n", ds.X[1]-ds.X[0]))
		sb.WriteString(fmt.Sprintf("   • Average noise: %.2e\n", stat.Mean(ds.Noise, nil)))
	} else {
		sb.WriteString("   • No data simulated\n")
	}

	sb.WriteString("\n2. Detecting peaks...\n")
	sb.WriteString(fmt.Sprintf("   • Detected %d peaks\n", len(report.Peaks)))
	for _, m := range report.Matches {
		sb.WriteString(fmt.Sprintf("   • %s: %.3f eV (diff = %.1f meV from prediction)\n",
			m.Prediction, m.Measured, m.Difference*1000))
	}

	sb.WriteString("\n3. Fitting spectrum...\n")
	w.writeFitStatus(sb, report)
	if report.FitSucceeded() {
		for i := 1; ; i++ {
			center, cerr, ok := report.Fit.Param("cen" + strconv.Itoa(i))
			if !ok {
				break
			}
			sb.WriteString(fmt.Sprintf("   • Peak %d: %.3f ± %.3f eV\n", i, center, cerr))
		}
		w.writeFitDetail(sb, report)
	}
}

// writeFitStatus writes the shared success or failure line of section 3.
func (w *TextWriter) writeFitStatus(sb *strings.Builder, report *model.ExperimentReport) {
	switch {
	case report.Fit == nil:
		sb.WriteString("   • Fit not performed\n")
	case report.Fit.Success:
		sb.WriteString("   • Fit successful!\n")
	case report.Fit.Message != "":
		sb.WriteString(fmt.Sprintf("   • Fit failed: %s\n", report.Fit.Message))
	default:
		sb.WriteString("   • Fit failed\n")
	}
}

// writeFitDetail writes verbose-only convergence diagnostics.
func (w *TextWriter) writeFitDetail(sb *strings.Builder, report *model.ExperimentReport) {
	if !w.verbose {
		return
	}
	sb.WriteString(fmt.Sprintf("   • Reduced chi-square: %.2f\n", report.Fit.ReducedChiSquare))
	sb.WriteString(fmt.Sprintf("   • Residual evaluations: %d\n", report.Fit.Evaluations))
}

// writeOutputFiles writes the file list section.
func (w *TextWriter) writeOutputFiles(sb *strings.Builder, report *model.ExperimentReport) {
	sb.WriteString("\n4. Writing output files...\n")
	if len(report.OutputFiles) == 0 {
		sb.WriteString("   • No files written\n")
		return
	}
	for _, f := range report.OutputFiles {
		sb.WriteString(fmt.Sprintf("   • Saved: %s\n", f))
	}
}

// writeFooter writes the completion banner.
func (w *TextWriter) writeFooter(sb *strings.Builder, report *model.ExperimentReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")

	switch {
	case report.TimedOut:
		sb.WriteString("ANALYSIS INCOMPLETE - TIMED OUT\n")
	case report.ErrorMessage != "":
		sb.WriteString(fmt.Sprintf("ANALYSIS INCOMPLETE - %s\n", report.ErrorMessage))
	default:
		sb.WriteString("ANALYSIS COMPLETE\n")
	}

	if len(report.OutputFiles) > 0 {
		sb.WriteString(fmt.Sprintf("Generated files: %s\n", strings.Join(report.OutputFiles, ", ")))
	}
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
}
