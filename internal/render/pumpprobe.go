package render

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/detect"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/physics"
)

// secondsToFemto converts the delay axis to femtoseconds for display.
const secondsToFemto = 1e15

// PumpProbe writes the four-panel correlation figure to path.
//
// Panels: the measured correlation trace with the predicted delay, the
// background-subtracted trace with the detected peak, the data with the
// fitted curve, and the analysis summary. Peak and fit overlays appear
// only when the corresponding stage produced them.
func PumpProbe(cfg *config.PumpProbeConfig, rep *model.ExperimentReport, path string) error {
	if rep == nil || rep.Dataset == nil || rep.Dataset.Len() == 0 {
		return ErrNoDataset
	}

	measurement, err := pumpProbeMeasurementPanel(cfg, rep.Dataset)
	if err != nil {
		return fmt.Errorf("pump-probe measurement panel: %w", err)
	}
	detection, err := pumpProbeDetectionPanel(cfg, rep)
	if err != nil {
		return fmt.Errorf("pump-probe detection panel: %w", err)
	}
	fitted, err := pumpProbeFitPanel(rep)
	if err != nil {
		return fmt.Errorf("pump-probe fit panel: %w", err)
	}
	summary, err := pumpProbeSummaryPanel(cfg, rep)
	if err != nil {
		return fmt.Errorf("pump-probe summary panel: %w", err)
	}
	return writeGrid(path, [4]*plot.Plot{measurement, detection, fitted, summary})
}

func pumpProbeMeasurementPanel(cfg *config.PumpProbeConfig, ds *model.Dataset) (*plot.Plot, error) {
	p := newPanel("Femtosecond Correlation Measurement", "Time Delay (fs)", "Correlation")

	scatter, bars, err := dataWithErrors(newErrorPoints(ds.X, ds.Y, ds.Noise, secondsToFemto), withAlpha(colorBlue, 140))
	if err != nil {
		return nil, err
	}
	p.Add(bars, scatter)
	p.Legend.Add("Simulated Data", scatter)

	lo, hi := seriesRange(ds.Y, ds.Noise)
	predFS := cfg.Prediction.Center * secondsToFemto
	uncFS := cfg.Prediction.Uncertainty * secondsToFemto

	line, err := verticalLine(predFS, lo, hi, colorRed, dashPattern)
	if err != nil {
		return nil, err
	}
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("Pred t = %.1f fs", predFS), line)

	span, err := verticalSpan(predFS-uncFS, predFS+uncFS, lo, hi, withAlpha(colorRed, 50))
	if err != nil {
		return nil, err
	}
	p.Add(span)
	p.Legend.Add("Uncertainty", span)
	return p, nil
}

func pumpProbeDetectionPanel(cfg *config.PumpProbeConfig, rep *model.ExperimentReport) (*plot.Plot, error) {
	p := newPanel("Peak Detection", "Time Delay (fs)", "BG-Subtracted")

	ds := rep.Dataset
	level, label := flatBackground(rep)
	sub := make([]float64, len(ds.Y))
	for i := range sub {
		sub[i] = ds.Y[i] - level
	}

	trace, err := curveLine(ds.X, sub, secondsToFemto, colorGreen, vg.Points(1.5), nil)
	if err != nil {
		return nil, err
	}
	p.Add(trace)
	p.Legend.Add(label, trace)

	if rep.MainPeak != nil {
		peakFS := rep.MainPeak.X * secondsToFemto
		marker, err := peakMarker(peakFS, sub[rep.MainPeak.Index])
		if err != nil {
			return nil, err
		}
		p.Add(marker)
		p.Legend.Add(fmt.Sprintf("Detected: %.1f fs", peakFS), marker)
	}

	line, err := verticalLine(cfg.Prediction.Center*secondsToFemto, floats.Min(sub), floats.Max(sub), colorRed, dashPattern)
	if err != nil {
		return nil, err
	}
	p.Add(line)
	return p, nil
}

func pumpProbeFitPanel(rep *model.ExperimentReport) (*plot.Plot, error) {
	p := newPanel("Fit Results", "Time Delay (fs)", "Correlation")

	ds := rep.Dataset
	scatter, bars, err := dataWithErrors(newErrorPoints(ds.X, ds.Y, ds.Noise, secondsToFemto), withAlpha(colorBlue, 90))
	if err != nil {
		return nil, err
	}
	p.Add(bars, scatter)
	p.Legend.Add("Data", scatter)

	if !rep.FitSucceeded() {
		return p, nil
	}

	curve := make([]float64, len(ds.X))
	for i, t := range ds.X {
		curve[i] = physics.CorrelationModel(t, rep.Fit.Params)
	}
	fitLine, err := curveLine(ds.X, curve, secondsToFemto, colorRed, vg.Points(2), nil)
	if err != nil {
		return nil, err
	}
	p.Add(fitLine)
	p.Legend.Add("Fit", fitLine)

	if t0, _, ok := rep.Fit.Param("t0"); ok {
		lo, hi := seriesRange(ds.Y, ds.Noise)
		line, err := verticalLine(t0*secondsToFemto, lo, hi, colorGreen, dotPattern)
		if err != nil {
			return nil, err
		}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("Fitted t = %.1f fs", t0*secondsToFemto), line)
	}
	return p, nil
}

func pumpProbeSummaryPanel(cfg *config.PumpProbeConfig, rep *model.ExperimentReport) (*plot.Plot, error) {
	predFS := cfg.Prediction.Center * secondsToFemto
	lines := []string{
		"FEMTOSECOND CORRELATION ANALYSIS",
		"================================",
		"",
		"Theory Prediction:",
		fmt.Sprintf("  t = %.1f ± %.1f fs", predFS, cfg.Prediction.Uncertainty*secondsToFemto),
		fmt.Sprintf("  FWHM ≈ %.1f fs", cfg.Prediction.Width*secondsToFemto),
	}

	if rep.MainPeak != nil {
		lines = append(lines, "",
			"Detected Peak:",
			fmt.Sprintf("  Time = %.1f fs", rep.MainPeak.X*secondsToFemto),
			fmt.Sprintf("  Amplitude = %.3f", rep.MainPeak.Height),
			fmt.Sprintf("  FWHM = %.1f fs", rep.MainPeak.FWHM*secondsToFemto),
			"",
			fmt.Sprintf("Diff from pred = %.1f fs", (rep.MainPeak.X-cfg.Prediction.Center)*secondsToFemto),
		)
	}

	if rep.FitSucceeded() {
		t0, t0Err, _ := rep.Fit.Param("t0")
		amp, ampErr, _ := rep.Fit.Param("amplitude")
		sigma, _, _ := rep.Fit.Param("sigma")
		lines = append(lines, "",
			"Fit Results:",
			fmt.Sprintf("  t = %.1f ± %.1f fs", t0*secondsToFemto, t0Err*secondsToFemto),
			fmt.Sprintf("  FWHM = %.1f fs", physics.SigmaToFWHM(sigma)*secondsToFemto),
			fmt.Sprintf("  Amplitude = %.3f ± %.3f", amp, ampErr),
		)
	}

	lines = append(lines, "",
		"Experimental Parameters:",
		fmt.Sprintf("  Laser width: %.0f fs", cfg.LaserWidth*secondsToFemto),
		fmt.Sprintf("  Pulses: %.1e", cfg.Pulses),
		fmt.Sprintf("  Noise level: %.3f", cfg.NoiseLevel),
	)
	return textPanel("", lines)
}

// flatBackground returns the fitted constant background, or the
// 10th-percentile baseline when no successful fit exists, with the
// matching legend label.
func flatBackground(rep *model.ExperimentReport) (float64, string) {
	if rep.FitSucceeded() {
		if bg, _, ok := rep.Fit.Param("background"); ok {
			return bg, "BG subtracted"
		}
	}
	return detect.Baseline(rep.Dataset.Y), "Baseline subtracted"
}
