package render

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Panel geometry. Four panels tile into a 14x10 inch canvas.
const (
	panelWidth  = 7 * vg.Inch
	panelHeight = 5 * vg.Inch
)

// Figure palette.
var (
	colorData   = color.NRGBA{R: 40, G: 40, B: 40, A: 180}
	colorBlue   = color.NRGBA{R: 31, G: 119, B: 180, A: 255}
	colorRed    = color.NRGBA{R: 214, G: 39, B: 40, A: 255}
	colorGreen  = color.NRGBA{R: 44, G: 160, B: 44, A: 255}
	colorPurple = color.NRGBA{R: 148, G: 103, B: 189, A: 255}
)

// Line dash patterns shared across panels.
var (
	dashPattern = []vg.Length{vg.Points(6), vg.Points(4)}
	dotPattern  = []vg.Length{vg.Points(1.5), vg.Points(3)}
)

// withAlpha returns the color with its opacity replaced. Shaded spans and
// bands reuse the line palette at low alpha.
func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// writeGrid tiles four panels row-major into a 2x2 grid and writes the
// composite PNG.
func writeGrid(path string, panels [4]*plot.Plot) error {
	img := vgimg.New(2*panelWidth, 2*panelHeight)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: vg.Millimeter * 5, PadY: vg.Millimeter * 5,
		PadTop: vg.Millimeter * 5, PadBottom: vg.Millimeter * 5,
		PadLeft: vg.Millimeter * 5, PadRight: vg.Millimeter * 5,
	}

	rows := [][]*plot.Plot{{panels[0], panels[1]}, {panels[2], panels[3]}}
	canvases := plot.Align(rows, tiles, draw.New(img))
	for i := range rows {
		for j := range rows[i] {
			rows[i][j].Draw(canvases[i][j])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create figure file: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode figure: %w", err)
	}
	return f.Close()
}

// newPanel returns a plot with the shared panel styling.
func newPanel(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

// xyPoints pairs two equal-length slices into plot coordinates, scaling
// the axis by xscale. The femtosecond panels pass 1e15 to plot seconds as
// femtoseconds; everything else passes 1.
func xyPoints(x, y []float64, xscale float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X = x[i] * xscale
		pts[i].Y = y[i]
	}
	return pts
}

// errorPoints feeds plotter.NewYErrorBars: data points plus symmetric
// 1-sigma bars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func newErrorPoints(x, y, yerr []float64, xscale float64) errorPoints {
	errs := make(plotter.YErrors, len(yerr))
	for i := range errs {
		errs[i].Low = yerr[i]
		errs[i].High = yerr[i]
	}
	return errorPoints{XYs: xyPoints(x, y, xscale), YErrors: errs}
}

// dataWithErrors builds the scatter plus error bars pair used by the
// measurement panels.
func dataWithErrors(pts errorPoints, c color.Color) (*plotter.Scatter, *plotter.YErrorBars, error) {
	scatter, err := plotter.NewScatter(pts.XYs)
	if err != nil {
		return nil, nil, err
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	scatter.Shape = draw.CircleGlyph{}

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return nil, nil, err
	}
	bars.LineStyle.Color = c
	return scatter, bars, nil
}

// curveLine builds a styled line plotter from a series.
func curveLine(x, y []float64, xscale float64, c color.Color, width vg.Length, dashes []vg.Length) (*plotter.Line, error) {
	line, err := plotter.NewLine(xyPoints(x, y, xscale))
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = width
	line.LineStyle.Dashes = dashes
	return line, nil
}

// segment draws a single line segment, used for zero lines and vertical
// markers.
func segment(x0, y0, x1, y1 float64, c color.Color, dashes []vg.Length) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Dashes = dashes
	return line, nil
}

// verticalLine marks position x across [ymin, ymax].
func verticalLine(x, ymin, ymax float64, c color.Color, dashes []vg.Length) (*plotter.Line, error) {
	return segment(x, ymin, x, ymax, c, dashes)
}

// verticalSpan shades the interval [x0, x1] across [ymin, ymax].
func verticalSpan(x0, x1, ymin, ymax float64, c color.Color) (*plotter.Polygon, error) {
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: x0, Y: ymin}, {X: x1, Y: ymin}, {X: x1, Y: ymax}, {X: x0, Y: ymax},
	})
	if err != nil {
		return nil, err
	}
	poly.Color = c
	poly.LineStyle.Width = 0
	return poly, nil
}

// band shades y±delta along a curve.
func band(x, y, delta []float64, xscale float64, c color.Color) (*plotter.Polygon, error) {
	pts := make(plotter.XYs, 0, 2*len(x))
	for i := range x {
		pts = append(pts, plotter.XY{X: x[i] * xscale, Y: y[i] + delta[i]})
	}
	for i := len(x) - 1; i >= 0; i-- {
		pts = append(pts, plotter.XY{X: x[i] * xscale, Y: y[i] - delta[i]})
	}
	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return nil, err
	}
	poly.Color = c
	poly.LineStyle.Width = 0
	return poly, nil
}

// peakMarker draws a filled circle at a detected feature.
func peakMarker(x, y float64) (*plotter.Scatter, error) {
	marker, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
	if err != nil {
		return nil, err
	}
	marker.GlyphStyle.Color = colorRed
	marker.GlyphStyle.Radius = vg.Points(4)
	marker.Shape = draw.CircleGlyph{}
	return marker, nil
}

// seriesRange returns the extent of y±delta, used to size vertical
// markers before the axis autoscale has run.
func seriesRange(y, delta []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := range y {
		lo = math.Min(lo, y[i]-delta[i])
		hi = math.Max(hi, y[i]+delta[i])
	}
	return lo, hi
}

// clampPositive floors values for log-scale display. The analysis keeps
// the raw values; only the drawn copy is clamped.
func clampPositive(y []float64, floor float64) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		if v < floor {
			v = floor
		}
		out[i] = v
	}
	return out
}

// textPanel renders lines of text on a hidden-axes panel, top-down from
// the upper-left corner. The line step shrinks when the text would
// overflow the panel.
func textPanel(title string, lines []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	step := 0.05
	if n := float64(len(lines)); n*step > 0.9 {
		step = 0.9 / n
	}
	pts := make(plotter.XYs, len(lines))
	for i := range lines {
		pts[i].X = 0.02
		pts[i].Y = 0.95 - float64(i)*step
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: lines})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(10)
	}
	p.Add(labels)
	return p, nil
}

// centeredTextPanel renders lines centered in the panel, used for the
// fit-unavailable fallback.
func centeredTextPanel(lines []string) (*plot.Plot, error) {
	p := plot.New()
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	const step = 0.06
	top := 0.5 + step*float64(len(lines)-1)/2
	pts := make(plotter.XYs, len(lines))
	for i := range lines {
		pts[i].X = 0.5
		pts[i].Y = top - step*float64(i)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: lines})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(12)
		labels.TextStyle[i].XAlign = draw.XCenter
	}
	p.Add(labels)
	return p, nil
}
