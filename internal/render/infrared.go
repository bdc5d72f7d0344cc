package render

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/detect"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/physics"
)

// Predicted-line display window in eV.
const (
	irZoomMin = 0.15
	irZoomMax = 0.65
)

// predictionColors cycles across the per-line markers in the infrared
// panels.
var predictionColors = []color.NRGBA{colorRed, colorGreen, colorPurple}

// Infrared writes the four-panel spectrum figure to path.
//
// Panels: the full spectrum with its noise band and the predicted lines,
// the background-subtracted spectrum with the detected peaks, the
// predicted-region zoom with the theoretical line shapes, and the
// analysis summary.
func Infrared(cfg *config.InfraredConfig, rep *model.ExperimentReport, path string) error {
	if rep == nil || rep.Dataset == nil || rep.Dataset.Len() == 0 {
		return ErrNoDataset
	}

	spectrum, err := infraredSpectrumPanel(cfg, rep.Dataset)
	if err != nil {
		return fmt.Errorf("infrared spectrum panel: %w", err)
	}
	detection, err := infraredDetectionPanel(rep)
	if err != nil {
		return fmt.Errorf("infrared detection panel: %w", err)
	}
	zoom, err := infraredZoomPanel(cfg, rep.Dataset)
	if err != nil {
		return fmt.Errorf("infrared zoom panel: %w", err)
	}
	summary, err := infraredSummaryPanel(cfg, rep)
	if err != nil {
		return fmt.Errorf("infrared summary panel: %w", err)
	}
	return writeGrid(path, [4]*plot.Plot{spectrum, detection, zoom, summary})
}

func infraredSpectrumPanel(cfg *config.InfraredConfig, ds *model.Dataset) (*plot.Plot, error) {
	p := newPanel("Simulated FTIR Spectrum with Predicted Peaks", "Energy (eV)", "Intensity (arb. units)")

	noiseBand, err := band(ds.X, ds.Y, ds.Noise, 1, withAlpha(colorBlue, 70))
	if err != nil {
		return nil, err
	}
	p.Add(noiseBand)
	p.Legend.Add("Noise level", noiseBand)

	trace, err := curveLine(ds.X, ds.Y, 1, colorBlue, vg.Points(1.5), nil)
	if err != nil {
		return nil, err
	}
	p.Add(trace)
	p.Legend.Add("Simulated Spectrum", trace)

	lo, hi := seriesRange(ds.Y, ds.Noise)
	for i, pred := range cfg.Predictions {
		c := predictionColors[i%len(predictionColors)]

		line, err := verticalLine(pred.Center, lo, hi, c, dashPattern)
		if err != nil {
			return nil, err
		}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("Pred %s: %.3g eV", pred.Name, pred.Center), line)

		span, err := verticalSpan(pred.Center-pred.Uncertainty, pred.Center+pred.Uncertainty, lo, hi, withAlpha(c, 25))
		if err != nil {
			return nil, err
		}
		p.Add(span)
	}
	return p, nil
}

func infraredDetectionPanel(rep *model.ExperimentReport) (*plot.Plot, error) {
	p := newPanel("Peak Detection", "Energy (eV)", "Intensity (arb. units)")

	ds := rep.Dataset
	sub, label := quadraticSubtracted(rep)
	trace, err := curveLine(ds.X, sub, 1, colorGreen, vg.Points(1.5), nil)
	if err != nil {
		return nil, err
	}
	p.Add(trace)
	p.Legend.Add(label, trace)

	for _, peak := range rep.Peaks {
		marker, err := peakMarker(peak.X, sub[peak.Index])
		if err != nil {
			return nil, err
		}
		p.Add(marker)
	}
	return p, nil
}

func infraredZoomPanel(cfg *config.InfraredConfig, ds *model.Dataset) (*plot.Plot, error) {
	p := newPanel(fmt.Sprintf("Zoom: %.2f - %.2f eV Region", irZoomMin, irZoomMax),
		"Energy (eV)", "Intensity (arb. units)")

	var x, y []float64
	for i := range ds.X {
		if ds.X[i] > irZoomMin && ds.X[i] < irZoomMax {
			x = append(x, ds.X[i])
			y = append(y, ds.Y[i])
		}
	}
	if len(x) == 0 {
		// The configured axis does not reach the display window.
		return p, nil
	}

	trace, err := curveLine(x, y, 1, colorBlue, vg.Points(2), nil)
	if err != nil {
		return nil, err
	}
	p.Add(trace)

	for i, pred := range cfg.Predictions {
		sigma := physics.FWHMToSigma(pred.Width)
		shape := make([]float64, len(x))
		for j, e := range x {
			shape[j] = physics.PseudoVoigt(e, pred.Amplitude, pred.Center, sigma, pred.Width/2)
		}
		line, err := curveLine(x, shape, 1, predictionColors[i%len(predictionColors)], vg.Points(1.5), dashPattern)
		if err != nil {
			return nil, err
		}
		p.Add(line)
		p.Legend.Add("Theory "+pred.Name, line)
	}
	return p, nil
}

func infraredSummaryPanel(cfg *config.InfraredConfig, rep *model.ExperimentReport) (*plot.Plot, error) {
	lines := []string{"ANALYSIS RESULTS", "================", "", "Theory Predictions:"}
	for _, pred := range cfg.Predictions {
		lines = append(lines, fmt.Sprintf("  %s: %.3f ± %.3f eV", pred.Name, pred.Center, pred.Uncertainty))
	}

	if len(rep.Matches) > 0 {
		lines = append(lines, "", "Detected Peaks:")
		for _, m := range rep.Matches {
			lines = append(lines,
				fmt.Sprintf("  %s: %.3f eV (diff = %.1f meV)", m.Prediction, m.Measured, m.Difference*1000))
		}
	}

	if rep.FitSucceeded() {
		lines = append(lines, "", "Fitted Parameters:")
		for i := 1; ; i++ {
			center, centerErr, ok := rep.Fit.Param("cen" + strconv.Itoa(i))
			if !ok {
				break
			}
			lines = append(lines, fmt.Sprintf("  Peak %d: %.3f ± %.3f eV", i, center, centerErr))
		}
	}

	lines = append(lines, "",
		fmt.Sprintf("Temperature: %.3f K", cfg.Temperature),
		fmt.Sprintf("Scans: %.0f", cfg.Scans),
		fmt.Sprintf("Resolution: %.1e eV", cfg.Resolution),
	)
	return textPanel("", lines)
}

// quadraticSubtracted removes the fitted quadratic baseline, or the
// 10th-percentile level when no successful fit exists, with the matching
// legend label.
func quadraticSubtracted(rep *model.ExperimentReport) ([]float64, string) {
	ds := rep.Dataset
	sub := make([]float64, len(ds.Y))

	if rep.FitSucceeded() && len(rep.Fit.Params) >= 3 {
		pp := rep.Fit.Params
		for i := range sub {
			sub[i] = ds.Y[i] - physics.QuadraticBackground(ds.X[i], pp[0], pp[1], pp[2])
		}
		return sub, "BG subtracted"
	}

	baseline := detect.Baseline(ds.Y)
	for i := range sub {
		sub[i] = ds.Y[i] - baseline
	}
	return sub, "Baseline subtracted"
}
