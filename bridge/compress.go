package bridge

import (
	"math"

	"github.com/arloliu/chromacore/half"
	"github.com/arloliu/chromacore/layout"
)

// minStd is the floor applied to the standard deviation before normalizing.
const minStd = epsilon

// CompressedUMS is the lossy binary16 form of a UMS vector: every slot is
// z-score normalized with the vector's own mean and standard deviation, then
// stored as a half-precision code.
type CompressedUMS struct {
	Codes [UMSDim]half.Bits
	Mean  float64
	Std   float64 // floored at a small positive value
}

// Compress encodes u as z-scores in binary16.
//
// The standard deviation is floored before it is used as a divisor, so a
// constant vector decompresses to its mean instead of NaN. Mean and standard
// deviation are always finite: they are computed over the finite slots on
// values scaled by the largest magnitude, and a deviation that still
// overflows becomes math.MaxFloat64. Non-finite slots are stored as z-score 0
// and decode as the mean; finite z-scores are clamped to ±half.MaxValue.
func Compress(u *UMS) CompressedUMS {
	m, sd := moments(u[:])
	if math.IsInf(sd, 0) {
		sd = math.MaxFloat64
	}
	sd = math.Max(sd, minStd)
	inv := 1 / sd

	c := CompressedUMS{Mean: m, Std: sd}
	for i, v := range u {
		z := (v - m) * inv
		if math.IsInf(v-m, 0) {
			// Full-range inputs: scale first so the difference fits.
			z = v*inv - m*inv
		}
		if math.IsNaN(z) || math.IsInf(z, 0) {
			z = 0
		}
		c.Codes[i] = half.FromFloat64(layout.Clamp(z, -half.MaxValue, half.MaxValue))
	}

	return c
}

// Decompress reverses Compress: code*Std + Mean for every slot. Slots that
// overflow saturate at ±math.MaxFloat64 and non-finite codes decode as the
// mean.
func (c *CompressedUMS) Decompress() UMS {
	var u UMS
	for i, code := range c.Codes {
		v := code.Float64()*c.Std + c.Mean
		switch {
		case math.IsNaN(v):
			v = c.Mean
		case math.IsInf(v, 0):
			v = math.Copysign(math.MaxFloat64, v)
		}
		u[i] = v
	}

	return u
}

// Decompress is a function form of (*CompressedUMS).Decompress.
func Decompress(c *CompressedUMS) UMS {
	return c.Decompress()
}

// moments returns the population mean and standard deviation of the finite
// entries of values; NaN and infinite entries are skipped.
//
// Values are divided by the largest finite magnitude before summing so that
// vectors near the float64 range do not overflow the accumulators.
func moments(values []float64) (float64, float64) {
	scale, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		n++
		scale = math.Max(scale, math.Abs(v))
	}
	if n == 0 {
		return 0, 0
	}
	if scale == 0 {
		scale = 1
	}

	sum := 0.0
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sum += v / scale
		}
	}
	m := sum / float64(n)

	acc := 0.0
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			d := v/scale - m
			acc += d * d
		}
	}

	return m * scale, math.Sqrt(acc/float64(n)) * scale
}
