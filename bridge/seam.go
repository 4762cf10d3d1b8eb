package bridge

import (
	"math"

	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

// RecordSeamWeights returns the weights of the two bins HueToBinWeights
// assigns to hue, (WeightA, WeightB), smoothed inside a window of eps radians
// on either side of the 0/2π seam.
//
// Bin 0's share is a triangle peaking at the seam. Inside the window its
// corner is rounded off by a cubic that equals 1 on the seam and meets the
// linear weight, and its slope, at the window edge; the neighboring bin takes
// the remainder. Every bin's share is therefore continuous in hue, across the
// seam and at ±eps. The window is capped at one bin width. Outside it the
// ordinary interpolation weights are returned unchanged. The two weights
// always sum to 1.
//
// Panics if eps is not positive.
func RecordSeamWeights(hue, eps float64) (float64, float64) {
	if !(eps > 0) {
		panic("bridge: seam epsilon must be positive")
	}

	h := tensor.NormalizeHue(hue)
	w := HueToBinWeights(h)

	width := tensor.TwoPi / HueCategories
	win := math.Min(eps, width)

	var d float64 // distance from the seam
	switch {
	case h < win:
		d = h
	case tensor.TwoPi-h < win:
		d = tensor.TwoPi - h
	default:
		return w.WeightA, w.WeightB
	}

	u := d / win
	first := layout.ClampUnit(1 - win/width*(2*u*u-u*u*u))
	if w.A == 0 {
		return first, 1 - first
	}

	return 1 - first, first
}
