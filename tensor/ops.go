package tensor

import (
	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/quant"
)

func mustSameShape(a, b *Chromatic) {
	if a.Shape != b.Shape {
		panic("tensor: shape mismatch")
	}
}

// MixRGB writes the linear blend alpha*a + (1-alpha)*b into out.
//
// alpha is clamped to [0, 1] and every output channel is clamped to [0, 1].
// out may alias a or b.
//
// Panics if the shapes of out, a and b differ.
func MixRGB(out, a, b *Chromatic, alpha float64) {
	mustSameShape(out, a)
	mustSameShape(out, b)

	alpha = layout.ClampUnit(alpha)
	inv := 1 - alpha
	for i := range out.RGB {
		out.RGB[i] = layout.ClampUnit(alpha*a.RGB[i] + inv*b.RGB[i])
	}
}

// AddRGB writes the clamped sum a + b into out.
//
// Panics if the shapes of out, a and b differ.
func AddRGB(out, a, b *Chromatic) {
	mustSameShape(out, a)
	mustSameShape(out, b)

	for i := range out.RGB {
		out.RGB[i] = layout.ClampUnit(a.RGB[i] + b.RGB[i])
	}
}

// MaskInject blends inj into base with a per-cell mask:
// out = base*(1-m) + inj*m, where m is the clamped mask value of the cell.
//
// Panics if the shapes differ or len(mask) != CellCount().
func MaskInject(out, base, inj *Chromatic, mask []float64) {
	mustSameShape(out, base)
	mustSameShape(out, inj)
	if len(mask) != out.Shape.CellCount() {
		panic("tensor: mask length mismatch")
	}

	for cell, mv := range mask {
		m := layout.ClampUnit(mv)
		i := cell * layout.Channels
		for ch := 0; ch < layout.Channels; ch++ {
			out.RGB[i+ch] = layout.ClampUnit(base.RGB[i+ch]*(1-m) + inj.RGB[i+ch]*m)
		}
	}
}

// MapRGB applies fn to every channel of t in place, clamping each result.
func MapRGB(t *Chromatic, fn func(float64) float64) {
	for i, v := range t.RGB {
		t.RGB[i] = layout.ClampUnit(fn(v))
	}
}

// MeanRGB returns the per-channel arithmetic mean of t.
func MeanRGB(t *Chromatic) RGB {
	var sum RGB
	for i := 0; i < len(t.RGB); i += layout.Channels {
		sum[0] += t.RGB[i]
		sum[1] += t.RGB[i+1]
		sum[2] += t.RGB[i+2]
	}

	n := float64(t.Shape.CellCount())

	return RGB{
		layout.ClampUnit(sum[0] / n),
		layout.ClampUnit(sum[1] / n),
		layout.ClampUnit(sum[2] / n),
	}
}

// SumFixedRGB returns the per-channel sum of t on the fixed-point grid
// defined by scale. The result does not depend on cell traversal order.
//
// Panics if scale is not positive.
func SumFixedRGB(t *Chromatic, scale int32) [layout.Channels]int32 {
	accs := [layout.Channels]quant.FixedAccumulator{
		quant.NewFixedAccumulator(scale),
		quant.NewFixedAccumulator(scale),
		quant.NewFixedAccumulator(scale),
	}
	for i := 0; i < len(t.RGB); i += layout.Channels {
		for ch := range accs {
			accs[ch].Accumulate(t.RGB[i+ch])
		}
	}

	var out [layout.Channels]int32
	for ch := range accs {
		out[ch] = accs[ch].FinishQuantized()
	}

	return out
}

// MeanFixedRGB is the order-independent counterpart of MeanRGB: channel sums
// are reduced on the fixed-point grid before dividing by the cell count.
func MeanFixedRGB(t *Chromatic, scale int32) RGB {
	accs := [layout.Channels]quant.FixedAccumulator{
		quant.NewFixedAccumulator(scale),
		quant.NewFixedAccumulator(scale),
		quant.NewFixedAccumulator(scale),
	}
	for i := 0; i < len(t.RGB); i += layout.Channels {
		for ch := range accs {
			accs[ch].Accumulate(t.RGB[i+ch])
		}
	}

	n := float64(t.Shape.CellCount())

	var out RGB
	for ch := range accs {
		out[ch] = layout.ClampUnit(accs[ch].Finish() / n)
	}

	return out
}
