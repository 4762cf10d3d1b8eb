package bridge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

func requireCompressionFidelity(t *testing.T, u *UMS) {
	t.Helper()

	c := Compress(u)
	out := c.Decompress()
	for i := range u {
		require.False(t, math.IsNaN(out[i]) || math.IsInf(out[i], 0), "slot %d", i)

		z := (u[i] - c.Mean) / c.Std
		tol := c.Std * (math.Abs(z)*1e-3 + 1e-4)
		require.InDelta(t, u[i], out[i], tol, "slot %d", i)
	}
}

func TestCompress_ProjectedVectors(t *testing.T) {
	for _, c := range []*tensor.Chromatic{
		gradientTensor(4, 4),
		uniformHSL(tensor.HSL{H: 2, S: 0.9, L: 0.3}, 2, 2),
	} {
		u := Project(c, Encode(c))
		requireCompressionFidelity(t, &u)
	}

	u := Project(tensor.NewZeroChromatic(layout.NewShape2D(1, 1)), rampSpectrum(300, true))
	requireCompressionFidelity(t, &u)
}

func TestCompress_PreservesSignAndMagnitude(t *testing.T) {
	var u UMS
	for i := range u {
		u[i] = math.Sin(float64(i)*0.7) * math.Pow(10, float64(i%4)-1)
	}

	c := Compress(&u)
	out := c.Decompress()
	for i := range u {
		zIn := (u[i] - c.Mean) / c.Std
		zOut := (out[i] - c.Mean) / c.Std
		if math.Abs(zIn) > 1e-3 {
			require.Equal(t, math.Signbit(zIn), math.Signbit(zOut), "slot %d", i)
			require.InDelta(t, 1, zOut/zIn, 1e-3, "slot %d", i)
		}
	}
}

func TestCompress_ConstantVector(t *testing.T) {
	for _, v := range []float64{0, 0.3, -7, 1e6, 1e306, -1e306, math.MaxFloat64} {
		var u UMS
		for i := range u {
			u[i] = v
		}

		c := Compress(&u)
		require.Positive(t, c.Std)
		require.InDelta(t, v, c.Mean, math.Abs(v)*1e-12)

		out := Decompress(&c)
		for i := range out {
			require.False(t, math.IsNaN(out[i]) || math.IsInf(out[i], 0))
			require.InDelta(t, v, out[i], math.Abs(v)*1e-9+1e-12)
		}
	}
}

func TestCompress_ExtremeValuesStayFinite(t *testing.T) {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	var spread UMS
	for i := range spread {
		spread[i] = math.MaxFloat64
		if i%2 == 1 {
			spread[i] = -math.MaxFloat64
		}
	}

	var poisoned UMS
	for i := range poisoned {
		poisoned[i] = float64(i)
	}
	poisoned[3] = math.Inf(1)
	poisoned[9] = math.NaN()

	for name, u := range map[string]*UMS{"full range": &spread, "non-finite slots": &poisoned} {
		t.Run(name, func(t *testing.T) {
			c := Compress(u)
			require.True(t, finite(c.Mean), "mean %v", c.Mean)
			require.True(t, finite(c.Std), "std %v", c.Std)
			require.Positive(t, c.Std)

			out := c.Decompress()
			for i, v := range out {
				require.True(t, finite(v), "slot %d = %v", i, v)
			}
		})
	}

	// Non-finite slots are ignored by the moments and decode as the mean.
	c := Compress(&poisoned)
	out := c.Decompress()
	require.InDelta(t, 100, out[100], 0.5)
	require.InDelta(t, c.Mean, out[3], 1e-9)
	require.InDelta(t, c.Mean, out[9], 1e-9)

	// Symmetric full-range vector keeps its signs.
	cs := Compress(&spread)
	out = cs.Decompress()
	require.Positive(t, out[0])
	require.Negative(t, out[1])
}

func TestCompress_ZeroVectorIsExact(t *testing.T) {
	var u UMS
	c := Compress(&u)
	require.Equal(t, 0.0, c.Mean)
	require.Equal(t, minStd, c.Std)
	for _, code := range c.Codes {
		require.Equal(t, uint16(0), uint16(code))
	}
	require.Equal(t, u, c.Decompress())
}

func TestCompress_Outlier(t *testing.T) {
	// A single spike produces the largest possible z-score for 512 slots.
	var u UMS
	u[7] = 1000

	c := Compress(&u)
	out := c.Decompress()
	require.InDelta(t, 1000, out[7], 1000*1e-3)
	require.InDelta(t, 0, out[0], 1e-3)
}

func BenchmarkCompress(b *testing.B) {
	c := gradientTensor(8, 8)
	u := Project(c, Encode(c))
	for b.Loop() {
		cu := Compress(&u)
		_ = cu.Decompress()
	}
}
