package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ExperimentReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAlert(md, report)
	w.writeDetection(md, report)
	w.writeFit(md, report)
	w.writeOutputFiles(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs the summary report in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.SummaryReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Run Summary")
	md.PlainText("")

	fitStatus := "not performed"
	switch {
	case summary.FitSuccess:
		fitStatus = fmt.Sprintf("converged (chi2/dof = %.2f)", summary.ReducedChiSquare)
	case summary.FitMessage != "":
		fitStatus = "failed - " + summary.FitMessage
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Experiment", summary.Experiment},
			{"Date", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Seed", strconv.FormatUint(summary.Seed, 10)},
			{"Points", strconv.Itoa(summary.Points)},
			{"Fit", fitStatus},
			{"Peaks", strconv.Itoa(summary.PeakCount)},
			{"Matches", strconv.Itoa(summary.MatchCount)},
			{"Max local significance", fmt.Sprintf("%.1fσ", summary.MaxSignificance)},
		},
	})
	md.PlainText("")

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ExperimentReport) {
	md.H1(report.Experiment.Title())
	md.PlainText("")

	points := 0
	if report.Dataset != nil {
		points = report.Dataset.Len()
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Experiment", "`" + report.ExperimentName + "`"},
			{"Date", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Seed", strconv.FormatUint(report.Seed, 10)},
			{"Data points", strconv.Itoa(points)},
			{"Elapsed", report.Elapsed.String()},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.ExperimentReport) string {
	if report.TimedOut {
		return "⚠️ Timed Out (partial results)"
	}
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	return "✅ Complete"
}

// writeAlert writes an alert reflecting the headline outcome of the run.
// Significance thresholds follow the usual conventions: 5σ for discovery,
// 3σ for evidence.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.ExperimentReport) {
	if report.Fit != nil && !report.Fit.Success {
		md.Warningf(
			"The fit did not converge (%s). Fitted parameters are unavailable for this run.",
			report.Fit.Message,
		)
		md.PlainText("")
		return
	}

	maxSig := report.MaxSignificance()
	switch {
	case maxSig >= 5:
		md.Importantf(
			"Maximum local significance is %.1fσ, above the 5σ discovery convention.",
			maxSig,
		)
	case maxSig >= 3:
		md.Note(fmt.Sprintf(
			"Maximum local significance is %.1fσ: evidence level, below the discovery convention.",
			maxSig,
		))
	case len(report.Matches) > 0:
		md.Tip(fmt.Sprintf(
			"%d prediction(s) matched a detected peak within tolerance.",
			len(report.Matches),
		))
	case w.peakCount(report) == 0:
		md.Note("No peaks passed the detection filters in this run.")
	default:
		md.Tip(fmt.Sprintf("%d feature(s) detected.", w.peakCount(report)))
	}
	md.PlainText("")
}

// peakCount counts detected features across the two detection shapes.
func (w *MarkdownWriter) peakCount(report *model.ExperimentReport) int {
	if len(report.Peaks) > 0 {
		return len(report.Peaks)
	}
	if report.MainPeak != nil {
		return 1
	}
	return 0
}

// writeDetection writes the significance and match tables.
func (w *MarkdownWriter) writeDetection(md *markdown.Markdown, report *model.ExperimentReport) {
	md.H2("Detection")
	md.PlainText("")

	if len(report.LocalSignificances) > 0 {
		rows := make([][]string, len(report.LocalSignificances))
		for i, ls := range report.LocalSignificances {
			rows[i] = []string{
				ls.Prediction,
				fmt.Sprintf("%.6g", ls.Center),
				fmt.Sprintf("%.1fσ", ls.Value),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Prediction", "Center", "Local Significance"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if report.MainPeak != nil {
		md.PlainTextf("Principal feature at `%.6g` with amplitude `%.3f` and FWHM `%.6g`.",
			report.MainPeak.X, report.MainPeak.Height, report.MainPeak.FWHM)
		md.PlainText("")
	}

	if len(report.Matches) == 0 {
		md.PlainText("No predictions were matched to a detected peak.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Matches))
	for i, m := range report.Matches {
		rows[i] = []string{
			m.Prediction,
			fmt.Sprintf("%.6g", m.Predicted),
			fmt.Sprintf("%.6g", m.Measured),
			fmt.Sprintf("%.3g", m.Difference),
			fmt.Sprintf("%.2f%%", m.RelativeError*100),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Prediction", "Predicted", "Measured", "Difference", "Relative Error"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFit writes the fitted parameter table.
func (w *MarkdownWriter) writeFit(md *markdown.Markdown, report *model.ExperimentReport) {
	md.H2("Fit")
	md.PlainText("")

	switch {
	case report.Fit == nil:
		md.PlainText("The fit step did not run.")
		md.PlainText("")
		return
	case !report.Fit.Success:
		md.PlainText("The fit did not converge; no parameters are available.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Fit.ParamNames))
	for i, name := range report.Fit.ParamNames {
		if i >= len(report.Fit.Params) || i >= len(report.Fit.Errors) {
			break
		}
		rows = append(rows, []string{
			"`" + name + "`",
			fmt.Sprintf("%.6g", report.Fit.Params[i]),
			fmt.Sprintf("%.3g", report.Fit.Errors[i]),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Parameter", "Value", "Uncertainty"},
		Rows:   rows,
	})
	md.PlainText("")

	md.PlainTextf("Reduced chi-square: `%.3f` over %d degrees of freedom.",
		report.Fit.ReducedChiSquare, report.Fit.DegreesOfFreedom)
	md.PlainText("")
}

// writeOutputFiles writes the generated file list.
func (w *MarkdownWriter) writeOutputFiles(md *markdown.Markdown, report *model.ExperimentReport) {
	md.H2("Output Files")
	md.PlainText("")

	if len(report.OutputFiles) == 0 {
		md.PlainText("No files were written.")
		md.PlainText("")
		return
	}

	md.BulletList(report.OutputFiles...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [utep](https://github.com/UnifiedTheoryPredictions/unified-theory-experimental)*")
}
