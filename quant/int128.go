package quant

import (
	"math"
	"math/bits"
)

// int128 is a two's complement 128-bit signed integer.
type int128 struct {
	hi int64
	lo uint64
}

var (
	maxInt128 = int128{hi: math.MaxInt64, lo: math.MaxUint64}
	minInt128 = int128{hi: math.MinInt64, lo: 0}
)

func int128FromInt64(v int64) int128 {
	hi := int64(0)
	if v < 0 {
		hi = -1
	}

	return int128{hi: hi, lo: uint64(v)}
}

// addSat returns a+b, saturating at the int128 limits.
func (a int128) addSat(b int128) int128 {
	lo, carry := bits.Add64(a.lo, b.lo, 0)
	hiU, _ := bits.Add64(uint64(a.hi), uint64(b.hi), carry)
	hi := int64(hiU)

	// Overflow is only possible when both operands share a sign and the
	// result does not.
	if (a.hi >= 0) == (b.hi >= 0) && (hi >= 0) != (a.hi >= 0) {
		if a.hi >= 0 {
			return maxInt128
		}

		return minInt128
	}

	return int128{hi: hi, lo: lo}
}

func (a int128) cmp(b int128) int {
	switch {
	case a.hi < b.hi:
		return -1
	case a.hi > b.hi:
		return 1
	case a.lo < b.lo:
		return -1
	case a.lo > b.lo:
		return 1
	default:
		return 0
	}
}

// clampInt32 saturates a into the int32 range.
func (a int128) clampInt32() int32 {
	if a.cmp(int128FromInt64(math.MaxInt32)) > 0 {
		return math.MaxInt32
	}
	if a.cmp(int128FromInt64(math.MinInt32)) < 0 {
		return math.MinInt32
	}

	return int32(int64(a.lo))
}

// float64 converts a to the nearest representable float64.
func (a int128) float64() float64 {
	if a.hi >= 0 {
		return float64(a.hi)*0x1p64 + float64(a.lo)
	}

	// Negate, convert, restore the sign. minInt128 negates to itself and is
	// handled by the unsigned interpretation below.
	lo, borrow := bits.Sub64(0, a.lo, 0)
	hi, _ := bits.Sub64(0, uint64(a.hi), borrow)

	return -(float64(hi)*0x1p64 + float64(lo))
}
