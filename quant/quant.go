// Package quant provides fixed-point quantization and an order-independent
// accumulator for deterministic reductions.
//
// Floating-point summation is not associative: summing the same values in a
// different order can change the bit pattern of the result. FixedAccumulator
// quantizes every term onto a fixed grid (value*scale rounded to an integer)
// and sums the integers in a 128-bit register. Integer addition is associative
// and commutative, so the finished value is identical for every permutation
// of the inputs and for every way of splitting them into partial accumulators
// that are later merged.
//
// # Basic Usage
//
//	acc := quant.NewFixedAccumulator(quant.DefaultScale)
//	for _, v := range values {
//	    acc.Accumulate(v)
//	}
//	total := acc.Finish()
//
// Partial reductions:
//
//	left := quant.NewFixedAccumulator(quant.DefaultScale)
//	right := quant.NewFixedAccumulator(quant.DefaultScale)
//	left.AccumulateSlice(values[:n])
//	right.AccumulateSlice(values[n:])
//	left.Merge(right) // bit-identical to accumulating values sequentially
package quant

import "math"

// DefaultScale is the project-wide fixed-point scale (Q12.20).
const DefaultScale int32 = 1 << 20

// QuantizeScalar rounds value*scale to the nearest integer, saturating to the
// int32 range. NaN quantizes to 0.
//
// Panics if scale is not positive.
func QuantizeScalar(value float64, scale int32) int32 {
	if scale <= 0 {
		panic("quant: scale must be positive")
	}

	scaled := math.Round(value * float64(scale))
	switch {
	case math.IsNaN(scaled):
		return 0
	case scaled >= math.MaxInt32:
		return math.MaxInt32
	case scaled <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(scaled)
	}
}

// DequantizeScalar converts a fixed-point value back to float64.
//
// Panics if scale is not positive.
func DequantizeScalar(value int32, scale int32) float64 {
	if scale <= 0 {
		panic("quant: scale must be positive")
	}

	return float64(value) / float64(scale)
}

// FixedAccumulator is a deterministic running total on a fixed-point grid.
//
// The zero value is not usable; create accumulators with NewFixedAccumulator.
// FixedAccumulator is a comparable value type: two accumulators are equal
// when they share the same scale and raw sum.
type FixedAccumulator struct {
	scale int32
	sum   int128
}

// NewFixedAccumulator creates an empty accumulator on the given grid.
//
// Panics if scale is not positive.
func NewFixedAccumulator(scale int32) FixedAccumulator {
	if scale <= 0 {
		panic("quant: scale must be positive")
	}

	return FixedAccumulator{scale: scale}
}

// NewDefaultAccumulator creates an accumulator using DefaultScale.
func NewDefaultAccumulator() FixedAccumulator {
	return NewFixedAccumulator(DefaultScale)
}

// Scale returns the quantization scale.
func (a FixedAccumulator) Scale() int32 {
	return a.scale
}

// Accumulate quantizes value and adds it to the sum.
func (a *FixedAccumulator) Accumulate(value float64) {
	a.AccumulateQuantized(QuantizeScalar(value, a.scale))
}

// AccumulateQuantized adds a value that is already on the accumulator grid.
func (a *FixedAccumulator) AccumulateQuantized(value int32) {
	a.sum = a.sum.addSat(int128FromInt64(int64(value)))
}

// AccumulateSlice accumulates every value in order.
func (a *FixedAccumulator) AccumulateSlice(values []float64) {
	for _, v := range values {
		a.Accumulate(v)
	}
}

// Merge adds the partial sum of other into a.
//
// Panics if the scales differ: sums on different grids cannot be combined.
func (a *FixedAccumulator) Merge(other FixedAccumulator) {
	if a.scale != other.scale {
		panic("quant: accumulator scale mismatch")
	}

	a.sum = a.sum.addSat(other.sum)
}

// Finish returns the accumulated total as float64 (sum / scale).
func (a FixedAccumulator) Finish() float64 {
	return a.sum.float64() / float64(a.scale)
}

// FinishQuantized returns the raw sum saturated to the int32 range.
func (a FixedAccumulator) FinishQuantized() int32 {
	return a.sum.clampInt32()
}

// SumSlice sums values deterministically using DefaultScale.
func SumSlice(values []float64) float64 {
	acc := NewDefaultAccumulator()
	acc.AccumulateSlice(values)

	return acc.Finish()
}
