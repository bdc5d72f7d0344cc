package render

import "errors"

// Rendering preconditions.
// A figure needs at least the simulated dataset; the dijet figure also
// needs the truth components recorded at generation time for its
// background panels.
var (
	// ErrNoDataset is returned when the report carries no dataset.
	ErrNoDataset = errors.New("render: report has no dataset")

	// ErrNoTruth is returned when the report carries no truth components.
	ErrNoTruth = errors.New("render: report has no truth components")
)
