package fit

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// machEps is the double-precision machine epsilon.
const machEps = 2.220446049250313e-16

// diffStep is the relative step of the central differences below, the cube
// root of the machine epsilon.
var diffStep = math.Cbrt(machEps)

var errFactorization = errors.New("normal matrix factorization failed")

// weightedJacobian returns the Size x Dim matrix of central-difference
// derivatives of the weighted residuals with respect to the external
// parameters.
func weightedJacobian(p *Problem, params []float64) *mat.Dense {
	n, dim := len(p.X), len(params)
	jac := mat.NewDense(n, dim, nil)

	shifted := make([]float64, dim)
	copy(shifted, params)
	for j := 0; j < dim; j++ {
		h := diffStep * math.Abs(params[j])
		if h == 0 {
			h = diffStep
		}
		up, down := params[j]+h, params[j]-h
		span := up - down
		for i := 0; i < n; i++ {
			shifted[j] = up
			plus := (p.Model(p.X[i], shifted) - p.Y[i]) / p.Noise[i]
			shifted[j] = down
			minus := (p.Model(p.X[i], shifted) - p.Y[i]) / p.Noise[i]
			jac.Set(i, j, (plus-minus)/span)
		}
		shifted[j] = params[j]
	}
	return jac
}

// covariance estimates the parameter covariance as the pseudo-inverse of
// J^T J scaled by the reduced chi-square. The pseudo-inverse drops
// singular values below the conventional cutoff relative to the largest,
// which keeps parameters pinned at a bound from blowing up the matrix.
func covariance(p *Problem, params []float64, scale float64) ([][]float64, error) {
	jac := weightedJacobian(p, params)
	dim := len(params)

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)

	var svd mat.SVD
	if ok := svd.Factorize(&jtj, mat.SVDThin); !ok {
		return nil, errFactorization
	}
	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	cutoff := float64(dim) * machEps * values[0]
	cov := make([][]float64, dim)
	for i := range cov {
		cov[i] = make([]float64, dim)
		for j := range cov[i] {
			var sum float64
			for k, s := range values {
				if s > cutoff && s > 0 {
					sum += v.At(i, k) * u.At(j, k) / s
				}
			}
			cov[i][j] = sum * scale
		}
	}
	return cov, nil
}
