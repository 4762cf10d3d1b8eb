package tensor

import "github.com/arloliu/chromacore/layout"

// GradRGB holds per-channel gradient components.
type GradRGB struct {
	DR float64
	DG float64
	DB float64
}

// gradEpsilon is the central-difference step used by GradHSLLoss.
const gradEpsilon = 1e-3

// GradMix returns the gradients of out = alpha*a + (1-alpha)*b with respect
// to a, b and alpha, given the upstream gradient dOut. alpha is clamped to
// [0, 1] as in MixRGB.
func GradMix(a, b RGB, alpha float64, dOut RGB) (gradA, gradB GradRGB, dAlpha float64) {
	alpha = layout.ClampUnit(alpha)
	inv := 1 - alpha

	gradA = GradRGB{DR: alpha * dOut[0], DG: alpha * dOut[1], DB: alpha * dOut[2]}
	gradB = GradRGB{DR: inv * dOut[0], DG: inv * dOut[1], DB: inv * dOut[2]}
	dAlpha = dOut[0]*(a[0]-b[0]) + dOut[1]*(a[1]-b[1]) + dOut[2]*(a[2]-b[2])

	return gradA, gradB, dAlpha
}

// HSLLoss is half the squared seam-aware HSL distance between c and target.
func HSLLoss(c RGB, target HSL) float64 {
	d := DeltaHSL(RGBToHSL(c[0], c[1], c[2]), target)

	return 0.5 * (d.H*d.H + d.S*d.S + d.L*d.L)
}

// GradHSLLoss estimates the gradient of HSLLoss with respect to the RGB input
// by central differences. Perturbed channels are clamped to [0, 1]; at a
// bound the difference becomes one-sided and is divided by the step actually
// taken.
func GradHSLLoss(c RGB, target HSL) GradRGB {
	var grad [layout.Channels]float64
	for ch := range grad {
		plus, minus := c, c
		plus[ch] = layout.ClampUnit(plus[ch] + gradEpsilon)
		minus[ch] = layout.ClampUnit(minus[ch] - gradEpsilon)
		step := plus[ch] - minus[ch]
		if step == 0 {
			continue
		}
		grad[ch] = (HSLLoss(plus, target) - HSLLoss(minus, target)) / step
	}

	return GradRGB{DR: grad[0], DG: grad[1], DB: grad[2]}
}
