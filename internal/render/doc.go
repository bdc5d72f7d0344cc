// Package render draws the four-panel diagnostic figure for each
// experiment and writes it as a single PNG.
//
// Every figure follows the same layout: the measured data top-left, a
// background-subtracted view top-right, the fit or zoom panel bottom-left,
// and a text summary bottom-right. Rendering degrades with the analysis:
// a failed fit swaps overlays and summary numbers for fallbacks, it never
// aborts the figure.
package render
