package physics

import "math"

// DijetBackground evaluates the smooth falling dijet mass spectrum,
// an exponential decay plus a power-law tail:
//
//	a*exp(-b*m) + c*m^(-3.5)
func DijetBackground(m, a, b, c float64) float64 {
	return a*math.Exp(-b*m) + c*math.Pow(m, -3.5)
}

// QuadraticBackground evaluates the slowly varying spectrometer baseline
// a + b*x + c*x^2.
func QuadraticBackground(x, a, b, c float64) float64 {
	return a + b*x + c*x*x
}
