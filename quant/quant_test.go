package quant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuantizeScalar(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		scale int32
		want  int32
	}{
		{"zero", 0, 1000, 0},
		{"round half away", 0.0125, 1000, 13},
		{"negative", -0.25, 1000, -250},
		{"default scale", 1, DefaultScale, DefaultScale},
		{"saturate high", 1e12, 1000, math.MaxInt32},
		{"saturate low", -1e12, 1000, math.MinInt32},
		{"positive infinity", math.Inf(1), 10, math.MaxInt32},
		{"negative infinity", math.Inf(-1), 10, math.MinInt32},
		{"nan", math.NaN(), 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, QuantizeScalar(tt.value, tt.scale))
		})
	}
}

func TestDequantizeScalar(t *testing.T) {
	require.InDelta(t, 0.125, DequantizeScalar(125, 1000), 1e-12)
	require.InDelta(t, -2.5, DequantizeScalar(-2500, 1000), 1e-12)

	for _, v := range []float64{0, 0.5, -0.75, 3.14159} {
		q := QuantizeScalar(v, DefaultScale)
		require.InDelta(t, v, DequantizeScalar(q, DefaultScale), 1.0/float64(DefaultScale))
	}
}

func TestNonPositiveScalePanics(t *testing.T) {
	require.Panics(t, func() { QuantizeScalar(1, 0) })
	require.Panics(t, func() { DequantizeScalar(1, -1) })
	require.Panics(t, func() { NewFixedAccumulator(0) })
}

func TestFixedAccumulator_Basic(t *testing.T) {
	acc := NewFixedAccumulator(1000)
	acc.Accumulate(0.125)
	acc.Accumulate(0.25)
	acc.AccumulateQuantized(500)

	require.Equal(t, int32(1000), acc.Scale())
	require.Equal(t, int32(875), acc.FinishQuantized())
	require.InDelta(t, 0.875, acc.Finish(), 1e-12)
}

// sampleValues returns a deterministic spread of magnitudes, including values
// whose floating-point sum depends on order.
func sampleValues() []float64 {
	values := make([]float64, 0, 64)
	for i := 0; i < 64; i++ {
		v := math.Sin(float64(i)*1.37) * math.Pow(10, float64(i%7)-3)
		values = append(values, v)
	}

	return values
}

// permutations produces a handful of deterministic reorderings.
func permutations(values []float64) [][]float64 {
	n := len(values)
	reversed := make([]float64, n)
	strided := make([]float64, 0, n)
	rotated := make([]float64, n)
	for i, v := range values {
		reversed[n-1-i] = v
		rotated[(i+17)%n] = v
	}
	for start := 0; start < 5; start++ {
		for i := start; i < n; i += 5 {
			strided = append(strided, values[i])
		}
	}

	return [][]float64{values, reversed, strided, rotated}
}

func TestFixedAccumulator_OrderInvariance(t *testing.T) {
	values := sampleValues()

	base := NewDefaultAccumulator()
	base.AccumulateSlice(values)

	for i, perm := range permutations(values) {
		acc := NewDefaultAccumulator()
		acc.AccumulateSlice(perm)
		require.Equal(t, base, acc, "permutation %d", i)
		require.Equal(t, base.FinishQuantized(), acc.FinishQuantized())
		require.Equal(t, math.Float64bits(base.Finish()), math.Float64bits(acc.Finish()))
	}
}

func TestFixedAccumulator_MergeMatchesSequential(t *testing.T) {
	values := sampleValues()

	sequential := NewDefaultAccumulator()
	sequential.AccumulateSlice(values)

	for _, split := range []int{0, 1, 13, 32, len(values)} {
		left := NewDefaultAccumulator()
		right := NewDefaultAccumulator()
		left.AccumulateSlice(values[:split])
		right.AccumulateSlice(values[split:])

		// Merge in both directions.
		lr := left
		lr.Merge(right)
		rl := right
		rl.Merge(left)

		require.Equal(t, sequential, lr, "split %d", split)
		require.Equal(t, sequential, rl, "split %d", split)
	}

	// Four-way tree reduction.
	parts := make([]FixedAccumulator, 4)
	for i := range parts {
		parts[i] = NewDefaultAccumulator()
	}
	for i, v := range values {
		parts[i%4].Accumulate(v)
	}
	parts[0].Merge(parts[1])
	parts[2].Merge(parts[3])
	parts[2].Merge(parts[0])
	require.Equal(t, sequential, parts[2])
}

func TestFixedAccumulator_MergeScaleMismatchPanics(t *testing.T) {
	a := NewFixedAccumulator(1000)
	b := NewFixedAccumulator(1024)
	require.Panics(t, func() { a.Merge(b) })
}

func TestFixedAccumulator_WideSumDoesNotOverflow(t *testing.T) {
	acc := NewFixedAccumulator(1)
	for i := 0; i < 1000; i++ {
		acc.AccumulateQuantized(math.MaxInt32)
	}

	// The wide sum keeps the exact total; only the final conversion saturates.
	require.InDelta(t, 1000*float64(math.MaxInt32), acc.Finish(), 1)
	require.Equal(t, int32(math.MaxInt32), acc.FinishQuantized())

	for i := 0; i < 2000; i++ {
		acc.AccumulateQuantized(math.MinInt32)
	}
	require.Less(t, acc.Finish(), 0.0)
	require.Equal(t, int32(math.MinInt32), acc.FinishQuantized())
}

func TestInt128_Saturation(t *testing.T) {
	require.Equal(t, maxInt128, maxInt128.addSat(int128FromInt64(1)))
	require.Equal(t, minInt128, minInt128.addSat(int128FromInt64(-1)))
	require.Equal(t, int128FromInt64(-1), maxInt128.addSat(minInt128))

	// Carry from the low word into the high word.
	v := int128{hi: 0, lo: math.MaxUint64}.addSat(int128FromInt64(1))
	require.Equal(t, int128{hi: 1, lo: 0}, v)
	require.InDelta(t, 0x1p64, v.float64(), 1)

	// Borrow across words for negative values.
	n := int128FromInt64(-5).addSat(int128FromInt64(3))
	require.Equal(t, int128FromInt64(-2), n)
	require.Equal(t, -2.0, n.float64())
	require.Equal(t, int32(-2), n.clampInt32())
}

func TestSumSlice(t *testing.T) {
	require.InDelta(t, 1.5, SumSlice([]float64{0.5, 0.25, 0.75}), 1e-6)
	require.Equal(t, 0.0, SumSlice(nil))
}

func BenchmarkFixedAccumulator(b *testing.B) {
	values := sampleValues()
	for b.Loop() {
		acc := NewDefaultAccumulator()
		acc.AccumulateSlice(values)
		_ = acc.Finish()
	}
}
