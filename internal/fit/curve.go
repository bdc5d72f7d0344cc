package fit

import (
	"fmt"
	"math"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	"github.com/maorshutman/lm"
)

// Model evaluates a parametric curve at a single point.
type Model func(x float64, params []float64) float64

// Problem describes one bounded weighted least-squares fit.
type Problem struct {
	// X, Y, and Noise are the data points and their one-sigma
	// uncertainties. All three must share one length.
	X     []float64
	Y     []float64
	Noise []float64

	// Model is the curve being fitted to the data.
	Model Model

	// ParamNames labels the parameter vector for reports. Optional, but
	// when present it must label every parameter.
	ParamNames []string

	// Initial is the starting guess, inside the bounds.
	Initial []float64

	// Lower and Upper are finite box bounds with Lower[i] < Upper[i].
	Lower []float64
	Upper []float64

	// MaxEvaluations budgets the solver's residual evaluations.
	MaxEvaluations int
}

func (p *Problem) validate() error {
	if p.Model == nil {
		return ErrNilModel
	}
	n := len(p.X)
	if n == 0 || len(p.Y) != n || len(p.Noise) != n {
		return ErrMismatchedData
	}
	for _, s := range p.Noise {
		if s <= 0 || math.IsNaN(s) {
			return ErrNonPositiveNoise
		}
	}
	dim := len(p.Initial)
	if dim == 0 || len(p.Lower) != dim || len(p.Upper) != dim {
		return ErrMismatchedBounds
	}
	if len(p.ParamNames) != 0 && len(p.ParamNames) != dim {
		return ErrMismatchedNames
	}
	for i := range p.Lower {
		lo, hi := p.Lower[i], p.Upper[i]
		if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo >= hi {
			return ErrInvalidBounds
		}
		if p.Initial[i] < lo || p.Initial[i] > hi {
			return ErrInitialOutOfBounds
		}
	}
	if n <= dim {
		return ErrInsufficientData
	}
	return nil
}

// Curve fits the problem's model to its data with bounded
// Levenberg-Marquardt and returns the best-fit parameters, their
// uncertainties, and the covariance matrix.
//
// A malformed problem returns a nil result and a sentinel error. A fit
// that ran but diverged or produced a degenerate optimum returns a
// FitResult with Success false and no error.
func Curve(p Problem) (*model.FitResult, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	dim := len(p.Initial)
	size := len(p.X)

	transform := &boundsTransform{lower: p.Lower, upper: p.Upper}

	evaluations := 0
	external := make([]float64, dim)
	residual := func(dst, q []float64) {
		evaluations++
		transform.externalInto(external, q)
		for i := range dst {
			dst[i] = (p.Model(p.X[i], external) - p.Y[i]) / p.Noise[i]
		}
	}

	numJac := lm.NumJac{Func: residual}
	problem := lm.LMProblem{
		Dim:        dim,
		Size:       size,
		Func:       residual,
		Jac:        numJac.Jac,
		InitParams: transform.internal(p.Initial),
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	// One iteration costs roughly a Jacobian, so the evaluation budget
	// translates into an iteration cap.
	iterations := p.MaxEvaluations / (dim + 1)
	if iterations < 1 {
		iterations = 1
	}

	results, err := lm.LM(problem, &lm.Settings{Iterations: iterations, ObjectiveTol: 1e-16})
	if err != nil {
		return failure("solver failed after %d evaluations: %v", evaluations, err), nil
	}

	params := make([]float64, dim)
	transform.externalInto(params, results.X)
	for _, v := range params {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return failure("non-finite parameters after %d evaluations", evaluations), nil
		}
	}

	var chiSquare float64
	for i := range p.X {
		r := (p.Model(p.X[i], params) - p.Y[i]) / p.Noise[i]
		chiSquare += r * r
	}
	if math.IsNaN(chiSquare) || math.IsInf(chiSquare, 0) {
		return failure("non-finite chi-square at the optimum"), nil
	}

	dof := size - dim
	reduced := chiSquare / float64(dof)

	cov, covErr := covariance(&p, params, reduced)
	if covErr != nil {
		return failure("covariance not defined: %v", covErr), nil
	}

	uncertainties := make([]float64, dim)
	for i := range uncertainties {
		d := cov[i][i]
		if d < 0 {
			d = 0
		}
		uncertainties[i] = math.Sqrt(d)
	}

	names := make([]string, len(p.ParamNames))
	copy(names, p.ParamNames)

	return &model.FitResult{
		Success:          true,
		ParamNames:       names,
		Params:           params,
		Errors:           uncertainties,
		Covariance:       cov,
		ChiSquare:        chiSquare,
		ReducedChiSquare: reduced,
		DegreesOfFreedom: dof,
		Evaluations:      evaluations,
	}, nil
}

func failure(format string, args ...any) *model.FitResult {
	return &model.FitResult{Success: false, Message: fmt.Sprintf(format, args...)}
}
