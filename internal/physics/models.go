package physics

import "strconv"

// The composite models below share one calling convention: a scalar axis
// value plus a parameter vector whose layout matches what the fitter
// optimizes and the reports print. The *ParamNames functions return that
// layout.

// DijetParams is the parameter count of DijetModel.
const DijetParams = 9

// DijetModel evaluates the dijet background plus two Breit-Wigner
// resonances. Parameter layout:
//
//	[a, b, c, amp1, center1, width1, amp2, center2, width2]
func DijetModel(m float64, p []float64) float64 {
	bg := DijetBackground(m, p[0], p[1], p[2])
	r1 := BreitWigner(m, p[3], p[4], p[5])
	r2 := BreitWigner(m, p[6], p[7], p[8])
	return bg + r1 + r2
}

// DijetParamNames returns the parameter layout of DijetModel.
func DijetParamNames() []string {
	return []string{"a", "b", "c", "amp1", "center1", "width1", "amp2", "center2", "width2"}
}

// CorrelationParams is the parameter count of CorrelationModel.
const CorrelationParams = 4

// CorrelationModel evaluates a Gaussian correlation feature over a flat
// background. Parameter layout:
//
//	[amplitude, t0, sigma, background]
func CorrelationModel(t float64, p []float64) float64 {
	return Gaussian(t, p[0], p[1], p[2]) + p[3]
}

// CorrelationParamNames returns the parameter layout of CorrelationModel.
func CorrelationParamNames() []string {
	return []string{"amplitude", "t0", "sigma", "background"}
}

// InfraredModel evaluates a quadratic baseline plus pseudo-Voigt
// absorption peaks, one per four-parameter group. Parameter layout:
//
//	[a, b, c, amp1, cen1, sig1, gam1, amp2, cen2, sig2, gam2, ...]
func InfraredModel(e float64, p []float64) float64 {
	y := QuadraticBackground(e, p[0], p[1], p[2])
	for i := 3; i+3 < len(p); i += 4 {
		y += PseudoVoigt(e, p[i], p[i+1], p[i+2], p[i+3])
	}
	return y
}

// InfraredParamNames returns the parameter layout of InfraredModel for
// the given number of peaks.
func InfraredParamNames(peaks int) []string {
	names := []string{"a", "b", "c"}
	for i := 1; i <= peaks; i++ {
		n := strconv.Itoa(i)
		names = append(names, "amp"+n, "cen"+n, "sig"+n, "gam"+n)
	}
	return names
}
