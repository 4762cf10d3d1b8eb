// Package bridge transcodes between chromatic and spectral tensors and builds
// the Unified Modality Space (UMS) embedding from both.
//
// # Hue and frequency
//
// Hue maps logarithmically onto frequency:
//
//	frequency = BaseFrequency * 2^(hue/2π * OctaveSpan)
//
// so the hue circle covers OctaveSpan octaves starting at BaseFrequency.
// The circle is partitioned into HueCategories bins; a hue contributes to
// the two nearest bins with linear interpolation weights, wrapping from the
// last bin to the first so energy is continuous across the 0/2π seam.
//
// # Lightness and bandwidth
//
// Lightness maps to a per-bin Gaussian bandwidth with an affine, decreasing
// map: lighter colors produce narrower bands.
//
//	sigma = MinSigma + (1-L) * (MaxSigma-MinSigma)
//
// # Round trip
//
// For a spatially uniform tensor, Decode(Encode(t)) reproduces the hue,
// saturation and lightness of t within RoundTripTolerance per component.
package bridge

import (
	"math"

	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

const (
	// BaseFrequency is the frequency of hue 0 in Hz (A0).
	BaseFrequency = 27.5
	// OctaveSpan is the number of octaves covered by the hue circle.
	OctaveSpan = 5.0
	// HueCategories is the number of hue bins produced by Encode.
	HueCategories = 12
	// MinSigma is the bandwidth of a fully light color in Hz.
	MinSigma = 4.0
	// MaxSigma is the bandwidth of a fully dark color in Hz.
	MaxSigma = 48.0
	// RoundTripTolerance is the per-component acceptance bound of the round trip.
	RoundTripTolerance = 1e-3
	// DefaultSeamEpsilon is the default seam blending window in radians.
	DefaultSeamEpsilon = 0.05

	epsilon = 1e-6
	// silence is the total amplitude below which a spectrum is treated as empty.
	silence = 1e-12
)

// RatioPerBin returns the frequency ratio between adjacent bins produced by
// Encode.
func RatioPerBin() float64 {
	steps := math.Max(HueCategories-1, 1)

	return math.Pow(2, OctaveSpan/steps)
}

// HueToFrequency maps a hue angle to its frequency in Hz.
func HueToFrequency(hue float64) float64 {
	frac := tensor.NormalizeHue(hue) / tensor.TwoPi

	return BaseFrequency * math.Pow(2, frac*OctaveSpan)
}

// FrequencyToHue inverts HueToFrequency. Frequencies outside the covered
// octaves wrap around the hue circle.
func FrequencyToHue(freq float64) float64 {
	ratio := math.Max(freq/BaseFrequency, epsilon)

	return tensor.NormalizeHue(tensor.TwoPi * math.Log2(ratio) / OctaveSpan)
}

// MapLuminanceToSigma maps lightness in [0, 1] to a bandwidth in
// [MinSigma, MaxSigma]. Lightness is clamped first.
func MapLuminanceToSigma(l float64) float64 {
	return MinSigma + (1-layout.ClampUnit(l))*(MaxSigma-MinSigma)
}

// SigmaToLuminance inverts MapLuminanceToSigma. Bandwidth is clamped to
// [MinSigma, MaxSigma] first.
func SigmaToLuminance(sigma float64) float64 {
	s := layout.Clamp(sigma, MinSigma, MaxSigma)

	return 1 - (s-MinSigma)/(MaxSigma-MinSigma)
}

// NeutralSigma is the bandwidth of lightness 0.5.
func NeutralSigma() float64 {
	return MapLuminanceToSigma(0.5)
}

// BinWeights is the two-bin interpolation of a hue: bin A receives WeightA,
// bin B (the next bin, wrapping) receives WeightB, and the weights sum to 1.
type BinWeights struct {
	A       int
	WeightA float64
	B       int
	WeightB float64
}

// HueToBinWeights splits hue between the two nearest of HueCategories bins.
func HueToBinWeights(hue float64) BinWeights {
	return hueToBinWeights(hue, HueCategories)
}

func hueToBinWeights(hue float64, n int) BinWeights {
	scaled := tensor.NormalizeHue(hue) / tensor.TwoPi * float64(n)
	base := math.Floor(scaled)
	frac := scaled - base

	// A hue just below 2π can round up to exactly n, which is bin 0.
	a := int(base)
	if a >= n {
		a = 0
	}

	return BinWeights{A: a, WeightA: 1 - frac, B: (a + 1) % n, WeightB: frac}
}
