package model

// Peak is a detected local maximum in a measured spectrum or trace.
type Peak struct {
	// Index is the position of the maximum in the dataset arrays.
	Index int `json:"index"`

	// X is the axis value at the maximum.
	X float64 `json:"x"`

	// Height is the measured value at the maximum.
	Height float64 `json:"height"`
}

// PeakMeasurement is a peak together with its measured width.
type PeakMeasurement struct {
	Peak

	// FWHM is the full width at half maximum.
	FWHM float64 `json:"fwhm"`

	// FWHMFromData reports whether FWHM was walked out of the data.
	// False means the half-maximum crossing was never reached on at
	// least one side and the theoretical width was used instead.
	FWHMFromData bool `json:"fwhm_from_data"`
}

// PeakMatch pairs a predicted feature with the closest detected peak.
// A match only exists when the absolute difference is strictly below the
// matching tolerance.
type PeakMatch struct {
	// Prediction is the name of the matched prediction.
	Prediction string `json:"prediction"`

	// Predicted is the predicted center position.
	Predicted float64 `json:"predicted"`

	// Measured is the axis position of the matched peak.
	Measured float64 `json:"measured"`

	// Difference is Measured - Predicted, signed.
	Difference float64 `json:"difference"`

	// RelativeError is |Difference| / Predicted.
	RelativeError float64 `json:"relative_error"`

	// Amplitude is the measured height of the matched peak.
	Amplitude float64 `json:"amplitude"`
}

// LocalSignificance is the excess significance of a window centered on one
// predicted feature: the background-subtracted data sum divided by the
// square root of the background sum.
type LocalSignificance struct {
	// Prediction is the name of the prediction the window is centered on.
	Prediction string `json:"prediction"`

	// Center is the window center on the axis.
	Center float64 `json:"center"`

	// Window is the half-width of the window.
	Window float64 `json:"window"`

	// SignalSum is the sum of (data - background) inside the window.
	SignalSum float64 `json:"signal_sum"`

	// BackgroundSum is the sum of the background inside the window.
	BackgroundSum float64 `json:"background_sum"`

	// Value is SignalSum / sqrt(BackgroundSum), or 0 when BackgroundSum
	// is not positive.
	Value float64 `json:"value"`
}
