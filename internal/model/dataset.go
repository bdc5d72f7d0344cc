package model

// Dataset holds one simulated measurement: the independent axis, the
// measured values, and the per-point noise estimate.
//
// Invariant: X, Y, and Noise always have the same length, and every Noise
// entry is strictly positive so it can serve directly as the weight in a
// chi-square fit. Generators are the only constructors; downstream stages
// treat a Dataset as read-only.
type Dataset struct {
	// X is the independent axis. Its unit depends on the experiment:
	// mass in GeV, delay time in seconds, or photon energy in eV.
	X []float64 `json:"x"`

	// Y is the measured dependent value at each X.
	Y []float64 `json:"y"`

	// Noise is the 1-sigma measurement uncertainty at each point.
	Noise []float64 `json:"noise"`
}

// Len returns the number of points in the dataset.
func (d *Dataset) Len() int { return len(d.X) }

// Truth records the noiseless components of a simulated dataset at
// generation time. It feeds the background-subtracted panels, the local
// significance denominators, and test assertions.
type Truth struct {
	// Expected is the full noiseless model: background plus signal.
	Expected []float64 `json:"expected"`

	// Background is the noiseless background component alone.
	Background []float64 `json:"background"`

	// Signal is the noiseless signal component alone.
	Signal []float64 `json:"signal"`
}
