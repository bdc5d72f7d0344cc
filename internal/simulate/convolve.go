package simulate

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// GaussianKernel returns a unit-sum Gaussian kernel of length 2*radius+1
// sampled at integer pixel offsets. The kernel is symmetric around its
// center tap.
func GaussianKernel(sigmaPixels float64, radius int) []float64 {
	kernel := make([]float64, 2*radius+1)
	for i := range kernel {
		offset := float64(i - radius)
		kernel[i] = math.Exp(-offset * offset / (2 * sigmaPixels * sigmaPixels))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)
	return kernel
}

// SmoothGaussian convolves y with a Gaussian of the given width in pixels,
// reflecting y at both edges so the output length matches the input. The
// kernel is truncated at four standard deviations. A width too narrow to
// span a single pixel returns an unmodified copy, which is the normal case
// for a spectrometer resolution finer than the energy grid.
func SmoothGaussian(y []float64, sigmaPixels float64) []float64 {
	out := make([]float64, len(y))
	radius := int(4*sigmaPixels + 0.5)
	if radius < 1 {
		copy(out, y)
		return out
	}

	kernel := GaussianKernel(sigmaPixels, radius)
	n := len(y)
	for i := range out {
		var acc float64
		for j, w := range kernel {
			idx := i + j - radius
			if idx < 0 {
				idx = -idx - 1
			}
			if idx >= n {
				idx = 2*n - idx - 1
			}
			acc += w * y[idx]
		}
		out[i] = acc
	}
	return out
}

// nearestIndex returns the index of the axis value closest to target.
func nearestIndex(x []float64, target float64) int {
	best := 0
	bestDiff := math.Abs(x[0] - target)
	for i, v := range x[1:] {
		if d := math.Abs(v - target); d < bestDiff {
			bestDiff = d
			best = i + 1
		}
	}
	return best
}
