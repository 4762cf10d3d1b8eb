// Package half implements the IEEE-754 binary16 (half precision) codec used
// to compress Unified Modality Space vectors.
//
// The codec works directly on bit patterns:
//
//	binary32: [sign:1][exponent:8 bias 127][mantissa:23]
//	binary16: [sign:1][exponent:5 bias 15 ][mantissa:10]
//
// Conversion from binary32 handles every class of input:
//   - zero (signed zero is preserved)
//   - normal values, rounded to nearest with ties to even; a mantissa that
//     rounds up past 10 bits carries into the exponent, and a carry out of
//     the largest finite exponent produces infinity
//   - values below the normal range become binary16 subnormals (or signed
//     zero when smaller than half of the smallest subnormal)
//   - values above the largest finite binary16 become signed infinity
//   - infinities stay infinities; NaNs stay quiet NaNs and keep the top
//     mantissa bits of their payload
//
// Conversion back to binary32 is exact: every binary16 value is representable
// in binary32.
package half

import "math"

// Bits is a binary16 value stored as its raw bit pattern.
type Bits uint16

const (
	signMask     = 0x8000
	expMask      = 0x7c00
	mantMask     = 0x03ff
	quietNaNBit  = 0x0200
	PositiveInf  Bits = 0x7c00 // PositiveInf is +Inf in binary16.
	NegativeInf  Bits = 0xfc00 // NegativeInf is -Inf in binary16.
	PositiveZero Bits = 0x0000 // PositiveZero is +0 in binary16.
	NegativeZero Bits = 0x8000 // NegativeZero is -0 in binary16.
)

// MaxValue is the largest finite binary16 magnitude.
const MaxValue = 65504.0

// SmallestSubnormal is the smallest positive binary16 value (2^-24).
const SmallestSubnormal = 0x1p-24

// FromFloat32 converts f to binary16, rounding to nearest with ties to even.
func FromFloat32(f float32) Bits {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & signMask
	exp := int32(b>>23) & 0xff
	mant := b & 0x7fffff

	// Inf / NaN.
	if exp == 0xff {
		if mant == 0 {
			return Bits(sign | expMask)
		}

		return Bits(sign | expMask | quietNaNBit | uint16(mant>>13))
	}

	e := exp - 127 + 15
	if e >= 0x1f {
		return Bits(sign | expMask)
	}

	if e <= 0 {
		// Below half of the smallest subnormal: flush to signed zero.
		if e < -10 {
			return Bits(sign)
		}

		m := mant | 0x800000
		shift := uint32(14 - e)
		h := m >> shift
		rem := m & (1<<shift - 1)
		halfway := uint32(1) << (shift - 1)
		if rem > halfway || (rem == halfway && h&1 == 1) {
			// A carry into bit 10 yields the smallest normal, which is
			// the correct encoding.
			h++
		}

		return Bits(sign | uint16(h))
	}

	h := uint32(e)<<10 | mant>>13
	rem := mant & 0x1fff
	if rem > 0x1000 || (rem == 0x1000 && h&1 == 1) {
		// Mantissa overflow carries into the exponent; 0x7bff+1 becomes
		// 0x7c00 which is infinity.
		h++
	}

	return Bits(sign | uint16(h))
}

// FromFloat64 converts f to binary16 through binary32.
func FromFloat64(f float64) Bits {
	return FromFloat32(float32(f))
}

// Float32 converts h to binary32 exactly.
func (h Bits) Float32() float32 {
	sign := uint32(h&signMask) << 16
	exp := int32(h&expMask) >> 10
	mant := uint32(h & mantMask)

	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}

		// Subnormal: normalize the mantissa.
		e := int32(-14)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= mantMask

		return math.Float32frombits(sign | uint32(e+127)<<23 | mant<<13)
	case 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | mant<<13)
	default:
		return math.Float32frombits(sign | uint32(exp+112)<<23 | mant<<13)
	}
}

// Float64 converts h to float64 exactly.
func (h Bits) Float64() float64 {
	return float64(h.Float32())
}

// IsNaN reports whether h is a NaN.
func (h Bits) IsNaN() bool {
	return h&expMask == expMask && h&mantMask != 0
}

// IsInf reports whether h is an infinity.
func (h Bits) IsInf() bool {
	return h&expMask == expMask && h&mantMask == 0
}

// IsSubnormal reports whether h is a non-zero subnormal.
func (h Bits) IsSubnormal() bool {
	return h&expMask == 0 && h&mantMask != 0
}

// Signbit reports whether the sign bit of h is set.
func (h Bits) Signbit() bool {
	return h&signMask != 0
}

// EncodeSlice converts every value in src to binary16, appending to dst.
func EncodeSlice(dst []Bits, src []float32) []Bits {
	for _, v := range src {
		dst = append(dst, FromFloat32(v))
	}

	return dst
}

// DecodeSlice converts every value in src to binary32, appending to dst.
func DecodeSlice(dst []float32, src []Bits) []float32 {
	for _, h := range src {
		dst = append(dst, h.Float32())
	}

	return dst
}
