package diagnostics

import (
	"math"

	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

const epsilon = 1e-6

// ChromaticDelta is the mean absolute HSL difference between two tensors.
type ChromaticDelta struct {
	DeltaH    float64
	DeltaS    float64
	DeltaL    float64
	Magnitude float64 // Euclidean norm of (DeltaH, DeltaS, DeltaL)
}

// SpectralStats summarizes a spectral tensor.
type SpectralStats struct {
	EnergyTotal float64
	EnergyDrift float64 // 10·log10(high-half energy / low-half energy), in dB
	Centroid    float64
	Coherence   float64 // PhaseCoherenceIndex
}

// ComputeDeltaHSL averages the per-cell absolute HSL difference between a and
// b. Hue differences are taken the short way around the circle.
//
// Panics if the shapes differ.
func ComputeDeltaHSL(a, b *tensor.Chromatic) ChromaticDelta {
	if a.Shape != b.Shape {
		panic("diagnostics: shape mismatch")
	}

	var sumH, sumS, sumL float64
	for i := 0; i < len(a.RGB); i += layout.Channels {
		ha := tensor.RGBToHSL(a.RGB[i], a.RGB[i+1], a.RGB[i+2])
		hb := tensor.RGBToHSL(b.RGB[i], b.RGB[i+1], b.RGB[i+2])
		d := tensor.DeltaHSL(ha, hb)
		sumH += math.Abs(d.H)
		sumS += math.Abs(d.S)
		sumL += math.Abs(d.L)
	}

	cells := float64(max(a.Shape.CellCount(), 1))
	out := ChromaticDelta{
		DeltaH: sumH / cells,
		DeltaS: sumS / cells,
		DeltaL: sumL / cells,
	}
	out.Magnitude = math.Sqrt(out.DeltaH*out.DeltaH + out.DeltaS*out.DeltaS + out.DeltaL*out.DeltaL)

	return out
}

// SpectralEnergyBalance computes energy, low/high drift, centroid and phase
// coherence of s.
//
// The bins are split at len/2; each half's energy is floored at a small
// epsilon before the ratio is taken so silent halves produce a finite drift.
// A single-bin spectrum has zero drift.
func SpectralEnergyBalance(s *tensor.Spectral) SpectralStats {
	total := s.Energy()

	low, high := total, total
	if half := len(s.Bins) / 2; half > 0 {
		low, high = 0, 0
		for i, amp := range s.Bins {
			if i < half {
				low += math.Abs(amp)
			} else {
				high += math.Abs(amp)
			}
		}
		low = math.Max(low, epsilon)
		high = math.Max(high, epsilon)
	}
	ratio := math.Max(high/low, epsilon)

	return SpectralStats{
		EnergyTotal: total,
		EnergyDrift: 10 * math.Log10(ratio),
		Centroid:    s.Centroid(),
		Coherence:   PhaseCoherenceIndex(s),
	}
}

// PhaseCoherenceIndex measures the similarity of adjacent bins:
// Σ a·b / Σ (a²+b²)/2 over neighboring pairs, clamped to [-1, 1].
//
// Spectra with fewer than two bins, or whose pairs carry no energy, are
// fully coherent (1).
func PhaseCoherenceIndex(s *tensor.Spectral) float64 {
	if len(s.Bins) < 2 {
		return 1
	}

	var num, den float64
	for i := 1; i < len(s.Bins); i++ {
		a, b := s.Bins[i-1], s.Bins[i]
		num += a * b
		den += 0.5 * (a*a + b*b)
	}
	if math.Abs(den) <= epsilon {
		return 1
	}

	return layout.Clamp(num/den, -1, 1)
}
