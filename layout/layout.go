// Package layout describes the row-major, channel-interleaved 2D grid shared by
// every chromatic tensor.
//
// A grid of height H and width W stores H*W cells, each cell holding three
// interleaved channels (R, G, B). Offsets are computed from a Stride2D derived
// from the shape:
//
//	offset(row, col, channel) = row*RowStride + col*ColStride + channel
//
// The types in this package are pure values. Constructors panic on invalid
// input because a malformed shape is a programmer error, not a runtime
// condition.
package layout

// Channels is the number of interleaved channels per cell (RGB).
const Channels = 3

// Shape2D is the immutable height/width descriptor of a grid.
type Shape2D struct {
	H int // number of rows, > 0
	W int // number of columns, > 0
}

// NewShape2D creates a shape, panicking if either dimension is not positive.
func NewShape2D(h, w int) Shape2D {
	if h <= 0 || w <= 0 {
		panic("layout: shape dimensions must be positive")
	}

	return Shape2D{H: h, W: w}
}

// CellCount returns H*W.
func (s Shape2D) CellCount() int {
	return s.H * s.W
}

// RGBLen returns the length of an interleaved RGB buffer for the shape.
func (s Shape2D) RGBLen() int {
	return s.CellCount() * Channels
}

// Contains reports whether (row, col) lies inside the grid.
func (s Shape2D) Contains(row, col int) bool {
	return row >= 0 && row < s.H && col >= 0 && col < s.W
}

// CellIndex returns the row-major cell index of (row, col).
func (s Shape2D) CellIndex(row, col int) int {
	return row*s.W + col
}

// Stride2D holds the row and column strides of an interleaved RGB grid.
type Stride2D struct {
	Row int // W * Channels
	Col int // always Channels
}

// NewStride2D derives the strides for shape.
func NewStride2D(shape Shape2D) Stride2D {
	return Stride2D{
		Row: shape.W * Channels,
		Col: Channels,
	}
}

// Offset returns the flat buffer offset of channel at (row, col).
func (s Stride2D) Offset(row, col, channel int) int {
	return row*s.Row + col*s.Col + channel
}

// ClampUnit clamps x into [0, 1].
//
// NaN is mapped to 0 so that clamped buffers never carry NaN forward.
func ClampUnit(x float64) float64 {
	if x > 0 {
		if x > 1 {
			return 1
		}

		return x
	}

	return 0
}

// Clamp clamps x into [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}

	return x
}
