package fit

import "math"

// boundMargin keeps transformed parameters strictly inside their box so a
// guess sitting exactly on a bound does not start the solver at a point of
// zero gradient.
const boundMargin = 1e-8

// boundsTransform maps between the solver's unbounded parameter space and
// the bounded external space via p = lo + (hi-lo)*(sin(q)+1)/2. The sine
// keeps every external value inside its box for any internal value the
// solver tries.
type boundsTransform struct {
	lower []float64
	upper []float64
}

// internal maps bounded external parameters into the solver space.
// Values on or outside a bound are first pulled strictly inside it.
func (t *boundsTransform) internal(external []float64) []float64 {
	q := make([]float64, len(external))
	for i, p := range external {
		lo, hi := t.lower[i], t.upper[i]
		u := 2*(p-lo)/(hi-lo) - 1
		if u < -1+boundMargin {
			u = -1 + boundMargin
		}
		if u > 1-boundMargin {
			u = 1 - boundMargin
		}
		q[i] = math.Asin(u)
	}
	return q
}

// externalInto maps solver parameters back into the bounded space.
func (t *boundsTransform) externalInto(dst, q []float64) {
	for i, v := range q {
		lo, hi := t.lower[i], t.upper[i]
		dst[i] = lo + (hi-lo)*(math.Sin(v)+1)/2
	}
}
