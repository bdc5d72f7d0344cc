package physics

import "math"

// FWHMFactor converts a Gaussian standard deviation to full width at half
// maximum. The exact value is 2*sqrt(2*ln 2) = 2.3548...; spectroscopy
// practice rounds it to 2.355 and the analysis protocols here do the same.
const FWHMFactor = 2.355

// BoltzmannEV is the Boltzmann constant in eV/K (CODATA exact value).
// Thermal occupation factors divide transition energies by kT in these
// units.
const BoltzmannEV = 8.617333262e-5

// BreitWigner evaluates a relativistic Breit-Wigner resonance:
//
//	amplitude * width^2 / ((m^2 - center^2)^2 + (center*width)^2)
//
// The shape peaks at m = center with value amplitude/center^2. It is
// symmetric in the m^2 variable, not in m itself; the skew in m is second
// order in width/center.
func BreitWigner(m, amplitude, center, width float64) float64 {
	d := m*m - center*center
	cw := center * width
	return amplitude * width * width / (d*d + cw*cw)
}

// Gaussian evaluates a Gaussian peak with the given amplitude, center,
// and standard deviation.
func Gaussian(x, amplitude, center, sigma float64) float64 {
	d := x - center
	return amplitude * math.Exp(-d*d/(2*sigma*sigma))
}

// GaussianNorm evaluates a unit-amplitude Gaussian. Kernel construction
// and profile mixing use this form.
func GaussianNorm(x, center, sigma float64) float64 {
	d := x - center
	return math.Exp(-d * d / (2 * sigma * sigma))
}

// Lorentzian evaluates a Lorentzian peak with half-width gamma.
func Lorentzian(x, amplitude, center, gamma float64) float64 {
	d := x - center
	return amplitude * gamma * gamma / (d*d + gamma*gamma)
}

// PseudoVoigt evaluates the equal-mix Gaussian/Lorentzian approximation
// to a Voigt profile used for molecular absorption lines:
//
//	amplitude * (G(x) + L(x)) / 2
//
// with unit-amplitude G and L sharing the same center.
func PseudoVoigt(x, amplitude, center, sigma, gamma float64) float64 {
	d := x - center
	g := math.Exp(-d * d / (2 * sigma * sigma))
	l := gamma * gamma / (d*d + gamma*gamma)
	return amplitude * (g + l) / 2
}

// SigmaToFWHM converts a Gaussian standard deviation to full width at
// half maximum.
func SigmaToFWHM(sigma float64) float64 { return FWHMFactor * sigma }

// FWHMToSigma converts a full width at half maximum to the standard
// deviation of the equivalent Gaussian.
func FWHMToSigma(fwhm float64) float64 { return fwhm / FWHMFactor }
