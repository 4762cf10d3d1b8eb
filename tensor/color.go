package tensor

import (
	"math"

	"github.com/arloliu/chromacore/layout"
)

// TwoPi is the length of the circular hue domain.
const TwoPi = 2 * math.Pi

// achromaticEpsilon is the channel spread below which a color is treated as
// gray (hue 0, saturation 0).
const achromaticEpsilon = 1e-9

// HSL is a hue/saturation/lightness triple. H is in radians in [0, 2π);
// S and L are in [0, 1].
type HSL struct {
	H float64
	S float64
	L float64
}

// NormalizeHue reduces any angle into [0, 2π).
//
// The result is never negative and never exactly 2π, including for inputs
// where the floating-point correction would otherwise round up to 2π.
// NaN and infinities map to 0.
func NormalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}

	v := math.Mod(h, TwoPi)
	if v < 0 {
		v += TwoPi
	}
	if v >= TwoPi {
		v = 0
	}

	return v
}

// RGBToHSL converts an RGB triple in [0, 1] to HSL.
func RGBToHSL(r, g, b float64) HSL {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	d := maxC - minC
	if d < achromaticEpsilon {
		return HSL{H: 0, S: 0, L: l}
	}

	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}

	return HSL{H: NormalizeHue(h / 6 * TwoPi), S: s, L: l}
}

// HSLToRGB converts an HSL triple to RGB. Hue is normalized first, so any
// angle is accepted.
func HSLToRGB(c HSL) RGB {
	s := layout.ClampUnit(c.S)
	l := layout.ClampUnit(c.L)
	if s <= achromaticEpsilon {
		return RGB{l, l, l}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	h := NormalizeHue(c.H) / TwoPi

	return RGB{
		hueToChannel(p, q, h+1.0/3.0),
		hueToChannel(p, q, h),
		hueToChannel(p, q, h-1.0/3.0),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}

	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// DeltaHSL returns b - a component-wise. The hue component is the shortest
// signed angular distance, in (-π, π], so it stays continuous across the
// 0/2π seam.
func DeltaHSL(a, b HSL) HSL {
	d := b.H - a.H

	return HSL{
		H: math.Atan2(math.Sin(d), math.Cos(d)),
		S: b.S - a.S,
		L: b.L - a.L,
	}
}

// Distance returns the Euclidean norm of the seam-aware delta.
func (c HSL) Distance(other HSL) float64 {
	d := DeltaHSL(c, other)

	return math.Sqrt(d.H*d.H + d.S*d.S + d.L*d.L)
}

// MeanHSL returns the circular-mean hue, mean saturation and mean lightness
// over every cell of t.
//
// The hue mean is taken on the unit circle (atan2 of summed sines and
// cosines) so that colors straddling the seam average correctly.
func MeanHSL(t *Chromatic) HSL {
	var sumCos, sumSin, sumS, sumL float64
	for i := 0; i < len(t.RGB); i += layout.Channels {
		c := RGBToHSL(t.RGB[i], t.RGB[i+1], t.RGB[i+2])
		sumCos += math.Cos(c.H)
		sumSin += math.Sin(c.H)
		sumS += c.S
		sumL += c.L
	}

	n := float64(t.Shape.CellCount())
	if n <= 0 {
		return HSL{H: 0, S: 0, L: 0.5}
	}

	return HSL{
		H: NormalizeHue(math.Atan2(sumSin, sumCos)),
		S: sumS / n,
		L: sumL / n,
	}
}
