// Package tensor provides the two tensor kinds of chromacore and the color
// math shared by every higher layer.
//
// A Chromatic tensor is an RGB grid laid out as described by package layout,
// optionally carrying a per-cell coherence map. A Spectral tensor is a vector
// of frequency-bin amplitudes with optional per-bin bandwidths.
//
// All channel values live in [0, 1]. Whole-tensor operations (MixRGB, AddRGB,
// MaskInject, MapRGB) clamp every output channel and panic when operand shapes
// differ: a shape mismatch is a programmer error and continuing would corrupt
// deterministic output.
package tensor

import (
	"github.com/arloliu/chromacore/layout"
)

// RGB is a single red/green/blue triple.
type RGB [layout.Channels]float64

// Chromatic is an RGB grid with optional per-cell coherence.
//
// RGB is row-major and channel-interleaved with length Shape.RGBLen(). Coh is
// either nil or has length Shape.CellCount().
type Chromatic struct {
	Shape  layout.Shape2D
	Stride layout.Stride2D
	RGB    []float64
	Coh    []float64
}

// NewChromatic creates a chromatic tensor over the given buffers without
// copying them.
//
// Parameters:
//   - shape: grid dimensions
//   - rgb: interleaved RGB buffer of length shape.RGBLen()
//   - coh: per-cell coherence of length shape.CellCount(), or nil
//
// Panics if a buffer length does not match the shape.
func NewChromatic(shape layout.Shape2D, rgb []float64, coh []float64) *Chromatic {
	if shape.H <= 0 || shape.W <= 0 {
		panic("tensor: shape dimensions must be positive")
	}
	if len(rgb) != shape.RGBLen() {
		panic("tensor: rgb buffer length mismatch")
	}
	if coh != nil && len(coh) != shape.CellCount() {
		panic("tensor: coherence buffer length mismatch")
	}

	return &Chromatic{
		Shape:  shape,
		Stride: layout.NewStride2D(shape),
		RGB:    rgb,
		Coh:    coh,
	}
}

// NewZeroChromatic creates a black tensor without a coherence map.
func NewZeroChromatic(shape layout.Shape2D) *Chromatic {
	return NewChromatic(shape, make([]float64, shape.RGBLen()), nil)
}

// NewUniform creates a tensor where every cell holds the same clamped color.
func NewUniform(shape layout.Shape2D, c RGB) *Chromatic {
	t := NewZeroChromatic(shape)
	for i := 0; i < len(t.RGB); i += layout.Channels {
		for ch := 0; ch < layout.Channels; ch++ {
			t.RGB[i+ch] = layout.ClampUnit(c[ch])
		}
	}

	return t
}

// RGBAt returns the color at (row, col).
//
// Panics if the coordinates are out of bounds.
func (t *Chromatic) RGBAt(row, col int) RGB {
	if !t.Shape.Contains(row, col) {
		panic("tensor: index out of bounds")
	}
	off := t.Stride.Offset(row, col, 0)

	return RGB{t.RGB[off], t.RGB[off+1], t.RGB[off+2]}
}

// SetRGB writes the color at (row, col) as given, without clamping.
//
// Panics if the coordinates are out of bounds.
func (t *Chromatic) SetRGB(row, col int, c RGB) {
	if !t.Shape.Contains(row, col) {
		panic("tensor: index out of bounds")
	}
	off := t.Stride.Offset(row, col, 0)
	t.RGB[off] = c[0]
	t.RGB[off+1] = c[1]
	t.RGB[off+2] = c[2]
}

// Clone returns a deep copy of t.
func (t *Chromatic) Clone() *Chromatic {
	rgb := make([]float64, len(t.RGB))
	copy(rgb, t.RGB)

	var coh []float64
	if t.Coh != nil {
		coh = make([]float64, len(t.Coh))
		copy(coh, t.Coh)
	}

	return &Chromatic{Shape: t.Shape, Stride: t.Stride, RGB: rgb, Coh: coh}
}

// Coherence returns the scalar coherence of t: the mean of its coherence map
// when present, otherwise the mean of a map derived from its colors.
func (t *Chromatic) Coherence() float64 {
	coh := t.Coh
	if coh == nil {
		coh = CoherenceMap(t.Shape, t.RGB)
	}

	sum := 0.0
	for _, v := range coh {
		sum += v
	}

	return layout.ClampUnit(sum / float64(len(coh)))
}

// EnsureCoherence populates the coherence map from the colors if absent.
func (t *Chromatic) EnsureCoherence() {
	if t.Coh == nil {
		t.Coh = CoherenceMap(t.Shape, t.RGB)
	}
}

// CoherenceMap derives a per-cell coherence map from an interleaved RGB buffer.
//
// A cell's coherence is one minus its mean absolute channel deviation from
// the grid-wide mean color, clamped to [0, 1]. A uniform grid therefore has
// coherence 1 everywhere.
//
// Panics if len(rgb) does not match the shape.
func CoherenceMap(shape layout.Shape2D, rgb []float64) []float64 {
	if len(rgb) != shape.RGBLen() {
		panic("tensor: rgb buffer length mismatch")
	}

	cells := shape.CellCount()
	var mean RGB
	for i := 0; i < len(rgb); i += layout.Channels {
		mean[0] += rgb[i]
		mean[1] += rgb[i+1]
		mean[2] += rgb[i+2]
	}
	for ch := range mean {
		mean[ch] /= float64(cells)
	}

	coh := make([]float64, cells)
	for cell := range coh {
		i := cell * layout.Channels
		dev := abs(rgb[i]-mean[0]) + abs(rgb[i+1]-mean[1]) + abs(rgb[i+2]-mean[2])
		coh[cell] = layout.ClampUnit(1 - dev/3)
	}

	return coh
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}
