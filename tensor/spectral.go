package tensor

import "math"

// Spectral holds frequency-bin amplitudes with optional per-bin bandwidths.
//
// Bin i is centered at FMin*FRes^i when LogScale is set, otherwise at
// FMin + i*FRes.
type Spectral struct {
	Bins     []float64
	Sigma    []float64 // nil or len(Bins)
	FMin     float64
	FRes     float64
	LogScale bool
}

// NewSpectral creates a spectral tensor over the given buffers without
// copying them.
//
// Panics if bins is empty, sigma is non-nil with a different length, or
// fMin/fRes are not positive.
func NewSpectral(bins, sigma []float64, fMin, fRes float64, logScale bool) *Spectral {
	if len(bins) == 0 {
		panic("tensor: spectral tensor requires at least one bin")
	}
	if sigma != nil && len(sigma) != len(bins) {
		panic("tensor: sigma buffer length mismatch")
	}
	if !(fMin > 0) || !(fRes > 0) {
		panic("tensor: spectral frequency parameters must be positive")
	}

	return &Spectral{Bins: bins, Sigma: sigma, FMin: fMin, FRes: fRes, LogScale: logScale}
}

// Clone returns a deep copy of s.
func (s *Spectral) Clone() *Spectral {
	out := *s
	out.Bins = append([]float64(nil), s.Bins...)
	if s.Sigma != nil {
		out.Sigma = append([]float64(nil), s.Sigma...)
	}

	return &out
}

// Energy returns the L1 norm of the amplitudes.
func (s *Spectral) Energy() float64 {
	e := 0.0
	for _, v := range s.Bins {
		e += math.Abs(v)
	}

	return e
}

// BinFrequency returns the center frequency of bin i.
//
// Panics if i is out of range.
func (s *Spectral) BinFrequency(i int) float64 {
	if i < 0 || i >= len(s.Bins) {
		panic("tensor: bin index out of range")
	}
	if s.LogScale {
		return s.FMin * math.Pow(s.FRes, float64(i))
	}

	return s.FMin + float64(i)*s.FRes
}

// Centroid returns the amplitude-weighted mean frequency, using |amplitude|
// as weight. A silent spectrum reports FMin.
func (s *Spectral) Centroid() float64 {
	var num, den float64
	for i, v := range s.Bins {
		w := math.Abs(v)
		num += w * s.BinFrequency(i)
		den += w
	}
	if den <= 0 {
		return s.FMin
	}

	return num / den
}

// AddGaussianKernel adds a Gaussian bump of the given amplitude, centered at
// frequency center with standard deviation width (both in Hz), to every bin.
//
// Panics if width is not positive.
func (s *Spectral) AddGaussianKernel(center, width, amplitude float64) {
	if !(width > 0) {
		panic("tensor: gaussian width must be positive")
	}

	for i := range s.Bins {
		z := (s.BinFrequency(i) - center) / width
		s.Bins[i] += amplitude * math.Exp(-0.5*z*z)
	}
}
