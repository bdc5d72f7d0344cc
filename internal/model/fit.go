package model

// FitResult is the outcome of a bounded least-squares fit.
//
// Either the fit converged and every numeric field is populated (Success
// true), or it failed and only Message describes why (Success false).
// Callers must branch on Success before reading the numeric fields; a
// failed fit leaves them zero-valued.
//
// Design decision: Fit failure is data, not control flow. A diverging fit
// must not abort the run; later stages downgrade gracefully instead, so the
// result type carries its own success discriminant rather than relying on
// an error return alone.
type FitResult struct {
	// Success reports whether the fit converged to usable parameters.
	Success bool `json:"success"`

	// Message describes the failure when Success is false.
	Message string `json:"message,omitempty"`

	// ParamNames labels each entry of Params, in order.
	ParamNames []string `json:"param_names,omitempty"`

	// Params holds the best-fit parameter values.
	Params []float64 `json:"params,omitempty"`

	// Errors holds the 1-sigma parameter uncertainties, the square
	// roots of the Covariance diagonal.
	Errors []float64 `json:"errors,omitempty"`

	// Covariance is the parameter covariance matrix, [i][j] ordering
	// matching Params.
	Covariance [][]float64 `json:"covariance,omitempty"`

	// ChiSquare is the weighted sum of squared residuals at the optimum.
	ChiSquare float64 `json:"chi_square,omitempty"`

	// ReducedChiSquare is ChiSquare divided by DegreesOfFreedom.
	ReducedChiSquare float64 `json:"reduced_chi_square,omitempty"`

	// DegreesOfFreedom is the number of data points minus the number
	// of fitted parameters.
	DegreesOfFreedom int `json:"degrees_of_freedom,omitempty"`

	// Evaluations is the number of residual evaluations the solver
	// performed, including those spent on numerical Jacobians.
	Evaluations int `json:"evaluations,omitempty"`
}

// Param returns the fitted value and uncertainty for the named parameter.
// The boolean reports whether the name exists in ParamNames.
func (f *FitResult) Param(name string) (value, uncertainty float64, ok bool) {
	for i, n := range f.ParamNames {
		if n == name && i < len(f.Params) && i < len(f.Errors) {
			return f.Params[i], f.Errors[i], true
		}
	}
	return 0, 0, false
}

// Significance returns the ratio of the named fitted parameter to its
// uncertainty. Reports quote this for amplitude parameters as the detection
// significance of the corresponding resonance. The boolean is false when
// the parameter is unknown or its uncertainty is not positive.
func (f *FitResult) Significance(name string) (float64, bool) {
	value, uncertainty, ok := f.Param(name)
	if !ok || uncertainty <= 0 {
		return 0, false
	}
	return value / uncertainty, true
}
