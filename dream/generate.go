package dream

import (
	"math"

	"github.com/arloliu/chromacore/internal/pool"
	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

const (
	// modulationFrequency scales the cell-coordinate product fed to the
	// modulation sine.
	modulationFrequency = 0.173205

	// modulationDepth is the amplitude of the modulation around the seed's
	// mean color.
	modulationDepth = 0.1

	hslWeight     = 0.6
	profileWeight = 0.4

	// normFloor is the squared norm below which a profile counts as empty.
	normFloor = 1e-6
)

// Generate blends every channel of seed toward a modulated copy of the
// seed's mean color.
//
// For cell (row, col) and channel ch the modulated value is
// mean[ch] + 0.1·sin((row+1)(col+1)(ch+1)·0.173205), clamped to [0, 1], and
// the output is seed·(1-n) + modulated·n with n = clamp(noise, 0, 1). The
// result carries a coherence map derived from its own colors.
func Generate(seed *tensor.Chromatic, noise float64) *tensor.Chromatic {
	n := layout.ClampUnit(noise)
	mean := tensor.MeanRGB(seed)

	shape := seed.Shape
	rgb := make([]float64, shape.RGBLen())
	for row := 0; row < shape.H; row++ {
		for col := 0; col < shape.W; col++ {
			off := seed.Stride.Offset(row, col, 0)
			for ch := 0; ch < layout.Channels; ch++ {
				phase := float64(row+1) * float64(col+1) * float64(ch+1) * modulationFrequency
				target := layout.ClampUnit(mean[ch] + math.Sin(phase)*modulationDepth)
				rgb[off+ch] = layout.ClampUnit(seed.RGB[off+ch]*(1-n) + target*n)
			}
		}
	}

	return tensor.NewChromatic(shape, rgb, tensor.CoherenceMap(shape, rgb))
}

// Evaluate scores candidate against target in [0, 1]: 60% HSL similarity
// (one minus the clamped mean per-cell HSL distance) and 40% cosine
// similarity of the column energy profiles.
//
// Panics if the shapes differ.
func Evaluate(candidate, target *tensor.Chromatic) float64 {
	hslScore := layout.ClampUnit(1 - HSLDistance(candidate, target))

	w := candidate.Shape.W
	a, releaseA := pool.GetFloat64Slice(w)
	defer releaseA()
	b, releaseB := pool.GetFloat64Slice(w)
	defer releaseB()

	columnProfile(candidate, a)
	columnProfile(target, b)

	return hslWeight*hslScore + profileWeight*cosine(a, b)
}

// HSLDistance returns the mean over all cells of the Euclidean norm of the
// seam-aware HSL delta between a and b.
//
// Panics if the shapes differ.
func HSLDistance(a, b *tensor.Chromatic) float64 {
	if a.Shape != b.Shape {
		panic("dream: shape mismatch")
	}

	sum := 0.0
	for i := 0; i < len(a.RGB); i += layout.Channels {
		ha := tensor.RGBToHSL(a.RGB[i], a.RGB[i+1], a.RGB[i+2])
		hb := tensor.RGBToHSL(b.RGB[i], b.RGB[i+1], b.RGB[i+2])
		sum += ha.Distance(hb)
	}

	return sum / float64(a.Shape.CellCount())
}

// columnProfile writes the per-column sum of mean channel energy into out,
// normalized by the total. out must have length t.Shape.W.
func columnProfile(t *tensor.Chromatic, out []float64) {
	clear(out)
	for row := 0; row < t.Shape.H; row++ {
		for col := 0; col < t.Shape.W; col++ {
			off := t.Stride.Offset(row, col, 0)
			out[col] += (t.RGB[off] + t.RGB[off+1] + t.RGB[off+2]) / 3
		}
	}

	total := 0.0
	for _, v := range out {
		total += v
	}
	total = math.Max(total, normFloor)
	for i := range out {
		out[i] /= total
	}
}

// cosine returns the cosine similarity of a and b clamped to [0, 1], or 0
// when either vector is empty.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na <= normFloor || nb <= normFloor {
		return 0
	}

	return layout.ClampUnit(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
