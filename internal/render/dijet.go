package render

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
)

// Signal-region display window in GeV, spanning both predicted
// resonances.
const (
	dijetZoomMin = 2200.0
	dijetZoomMax = 3400.0
)

// logDisplayFloor replaces empty bins on the log-scale panel.
const logDisplayFloor = 0.1

// Dijet writes the four-panel dijet search figure to path.
//
// Panels: the event spectrum on a log scale with the background model,
// the background-subtracted spectrum with the predicted masses, the
// signal-region zoom with the prediction uncertainty bands, and the
// analysis summary. A failed fit downgrades the summary panel only.
func Dijet(cfg *config.DijetConfig, rep *model.ExperimentReport, path string) error {
	if rep == nil || rep.Dataset == nil || rep.Dataset.Len() == 0 {
		return ErrNoDataset
	}
	if rep.Truth == nil {
		return ErrNoTruth
	}

	spectrum, err := dijetSpectrumPanel(rep.Dataset, rep.Truth)
	if err != nil {
		return fmt.Errorf("dijet spectrum panel: %w", err)
	}
	subtracted, err := dijetSubtractedPanel(cfg, rep.Dataset, rep.Truth)
	if err != nil {
		return fmt.Errorf("dijet subtracted panel: %w", err)
	}
	zoom, err := dijetZoomPanel(cfg, rep.Dataset, rep.Truth)
	if err != nil {
		return fmt.Errorf("dijet zoom panel: %w", err)
	}
	summary, err := dijetSummaryPanel(cfg, rep)
	if err != nil {
		return fmt.Errorf("dijet summary panel: %w", err)
	}
	return writeGrid(path, [4]*plot.Plot{spectrum, subtracted, zoom, summary})
}

func dijetSpectrumPanel(ds *model.Dataset, truth *model.Truth) (*plot.Plot, error) {
	p := newPanel("LHC Dijet Spectrum with Background", "Dijet Mass (GeV)", "Events")
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	counts := clampPositive(ds.Y, logDisplayFloor)
	pts := newErrorPoints(ds.X, counts, ds.Noise, 1)
	for i := range pts.YErrors {
		// Keep the lower bar end positive on the log scale.
		if counts[i]-pts.YErrors[i].Low < logDisplayFloor {
			pts.YErrors[i].Low = counts[i] - logDisplayFloor
		}
	}
	scatter, bars, err := dataWithErrors(pts, colorData)
	if err != nil {
		return nil, err
	}
	p.Add(bars, scatter)
	p.Legend.Add("Simulated Data", scatter)

	bg, err := curveLine(ds.X, clampPositive(truth.Background, logDisplayFloor), 1, colorRed, vg.Points(2), nil)
	if err != nil {
		return nil, err
	}
	p.Add(bg)
	p.Legend.Add("Background", bg)
	return p, nil
}

func dijetSubtractedPanel(cfg *config.DijetConfig, ds *model.Dataset, truth *model.Truth) (*plot.Plot, error) {
	p := newPanel("Background-Subtracted Spectrum", "Dijet Mass (GeV)", "Events - Background")

	sub, subErr := subtractBackground(ds, truth)
	scatter, bars, err := dataWithErrors(newErrorPoints(ds.X, sub, subErr, 1), colorBlue)
	if err != nil {
		return nil, err
	}
	p.Add(bars, scatter)

	zero, err := segment(ds.X[0], 0, ds.X[len(ds.X)-1], 0, colorRed, dashPattern)
	if err != nil {
		return nil, err
	}
	p.Add(zero)

	lo, hi := seriesRange(sub, subErr)
	for _, pred := range cfg.Predictions {
		line, err := verticalLine(pred.Center, lo, hi, colorGreen, dotPattern)
		if err != nil {
			return nil, err
		}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("Predicted %s: %.1f TeV", pred.Name, pred.Center/1000), line)
	}
	return p, nil
}

func dijetZoomPanel(cfg *config.DijetConfig, ds *model.Dataset, truth *model.Truth) (*plot.Plot, error) {
	p := newPanel("Signal Region (2.2-3.4 TeV)", "Dijet Mass (GeV)", "Events - Background")

	sub, subErr := subtractBackground(ds, truth)
	var x, y, yerr []float64
	for i := range ds.X {
		if ds.X[i] > dijetZoomMin && ds.X[i] < dijetZoomMax {
			x = append(x, ds.X[i])
			y = append(y, sub[i])
			yerr = append(yerr, subErr[i])
		}
	}
	if len(x) == 0 {
		// The configured axis does not reach the display window.
		return p, nil
	}

	scatter, bars, err := dataWithErrors(newErrorPoints(x, y, yerr, 1), colorBlue)
	if err != nil {
		return nil, err
	}
	p.Add(bars, scatter)

	zero, err := segment(x[0], 0, x[len(x)-1], 0, colorRed, dashPattern)
	if err != nil {
		return nil, err
	}
	p.Add(zero)

	lo, hi := seriesRange(y, yerr)
	for _, pred := range cfg.Predictions {
		span, err := verticalSpan(pred.Center-pred.Uncertainty, pred.Center+pred.Uncertainty, lo, hi, withAlpha(colorGreen, 50))
		if err != nil {
			return nil, err
		}
		p.Add(span)
		p.Legend.Add(pred.Name+" ± uncertainty", span)
	}
	return p, nil
}

func dijetSummaryPanel(cfg *config.DijetConfig, rep *model.ExperimentReport) (*plot.Plot, error) {
	if !rep.FitSucceeded() {
		return centeredTextPanel([]string{"Fit not available", "or unsuccessful"})
	}

	lines := []string{"Fit Results:", ""}
	maxSig, haveSig := 0.0, false
	for i, pred := range cfg.Predictions {
		sig, ok := rep.Fit.Significance("amp" + strconv.Itoa(i+1))
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %.1fσ", pred.Name, sig))
		if !haveSig || sig > maxSig {
			maxSig, haveSig = sig, true
		}
	}
	if haveSig {
		lines = append(lines, "", fmt.Sprintf("Maximum significance: %.1fσ", maxSig))
	}

	lines = append(lines, "", "Theory Predictions:")
	for _, pred := range cfg.Predictions {
		lines = append(lines,
			fmt.Sprintf("%s: %.1f ± %.1f TeV", pred.Name, pred.Center/1000, pred.Uncertainty/1000))
	}
	return textPanel("Analysis Summary", lines)
}

// subtractBackground returns the event counts minus the known background,
// with the approximate per-bin error sqrt(data + background).
func subtractBackground(ds *model.Dataset, truth *model.Truth) (sub, subErr []float64) {
	sub = make([]float64, len(ds.Y))
	subErr = make([]float64, len(ds.Y))
	for i := range ds.Y {
		sub[i] = ds.Y[i] - truth.Background[i]
		subErr[i] = math.Sqrt(ds.Y[i] + truth.Background[i])
	}
	return sub, subErr
}
