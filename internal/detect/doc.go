// Package detect finds and characterizes peaks in measured spectra and
// correlation traces. It provides local-maximum detection with height,
// separation, prominence, and width criteria, half-maximum width
// measurement with a theoretical fallback, window-based local excess
// significance, and the matching of detected peaks to predicted features.
//
// Detection works on raw sample arrays and makes no assumption about the
// underlying line shape; only the width fallback ever consults a
// prediction.
package detect
