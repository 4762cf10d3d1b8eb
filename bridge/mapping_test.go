package bridge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/chromacore/tensor"
)

func TestLuminanceSigmaInverse(t *testing.T) {
	for _, l := range []float64{0, 0.25, 0.5, 0.75, 1} {
		sigma := MapLuminanceToSigma(l)
		require.GreaterOrEqual(t, sigma, MinSigma)
		require.LessOrEqual(t, sigma, MaxSigma)
		require.InDelta(t, l, SigmaToLuminance(sigma), 1e-6)
	}

	require.Equal(t, MaxSigma, MapLuminanceToSigma(-3))
	require.Equal(t, MinSigma, MapLuminanceToSigma(3))
	require.Equal(t, 1.0, SigmaToLuminance(0))
	require.Equal(t, 0.0, SigmaToLuminance(100))
	require.Equal(t, 26.0, NeutralSigma())
}

func TestHueFrequencyMapping(t *testing.T) {
	require.InDelta(t, BaseFrequency, HueToFrequency(0), 1e-12)
	require.InDelta(t, BaseFrequency*math.Pow(2, 2.5), HueToFrequency(math.Pi), 1e-9)

	for k := 0; k < 36; k++ {
		hue := float64(k) * tensor.TwoPi / 36
		got := FrequencyToHue(HueToFrequency(hue))
		require.InDelta(t, 0, tensor.DeltaHSL(tensor.HSL{H: hue}, tensor.HSL{H: got}).H, 1e-9, "hue %v", hue)
	}

	// One full span above the base wraps to hue 0.
	require.InDelta(t, 0, tensor.DeltaHSL(tensor.HSL{}, tensor.HSL{H: FrequencyToHue(BaseFrequency * 32)}).H, 1e-9)
	require.InDelta(t, math.Pow(2, 5.0/11.0), RatioPerBin(), 1e-12)
}

func TestHueToBinWeights(t *testing.T) {
	tests := []struct {
		name string
		hue  float64
		want BinWeights
	}{
		{"zero", 0, BinWeights{A: 0, WeightA: 1, B: 1, WeightB: 0}},
		{"bin center", tensor.TwoPi * 3 / 12, BinWeights{A: 3, WeightA: 1, B: 4, WeightB: 0}},
		{"halfway", tensor.TwoPi * 4.5 / 12, BinWeights{A: 4, WeightA: 0.5, B: 5, WeightB: 0.5}},
		{"across seam", tensor.TwoPi * 11.25 / 12, BinWeights{A: 11, WeightA: 0.75, B: 0, WeightB: 0.25}},
		{"negative wraps", -tensor.TwoPi * 0.75 / 12, BinWeights{A: 11, WeightA: 0.75, B: 0, WeightB: 0.25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HueToBinWeights(tt.hue)
			require.Equal(t, tt.want.A, got.A)
			require.Equal(t, tt.want.B, got.B)
			require.InDelta(t, tt.want.WeightA, got.WeightA, 1e-9)
			require.InDelta(t, tt.want.WeightB, got.WeightB, 1e-9)
		})
	}

	for k := 0; k < 1000; k++ {
		w := HueToBinWeights(float64(k) * 0.0137)
		require.InDelta(t, 1, w.WeightA+w.WeightB, 1e-12)
		require.GreaterOrEqual(t, w.A, 0)
		require.Less(t, w.A, HueCategories)
		require.Equal(t, (w.A+1)%HueCategories, w.B)
	}
}

func TestHueToBinWeights_JustBelowTwoPi(t *testing.T) {
	w := HueToBinWeights(math.Nextafter(tensor.TwoPi, 0))
	// Either bin 11 almost fully toward bin 0, or bin 0 itself.
	if w.A == 11 {
		require.InDelta(t, 1, w.WeightB, 1e-9)
	} else {
		require.Equal(t, 0, w.A)
		require.InDelta(t, 1, w.WeightA, 1e-9)
	}
}

// seamShares spreads the seam weights of hue over all bins.
func seamShares(hue, eps float64) [HueCategories]float64 {
	var shares [HueCategories]float64
	w := HueToBinWeights(hue)
	a, b := RecordSeamWeights(hue, eps)
	shares[w.A] += a
	shares[w.B] += b

	return shares
}

func maxShareJump(a, b [HueCategories]float64) float64 {
	jump := 0.0
	for i := range a {
		jump = math.Max(jump, math.Abs(a[i]-b[i]))
	}

	return jump
}

func TestRecordSeamWeights(t *testing.T) {
	const eps = DefaultSeamEpsilon

	hues := []float64{
		0, 1e-15, 1e-9, eps / 2, eps, eps * 1.01,
		tensor.TwoPi - eps/2, tensor.TwoPi - 1e-9, math.Nextafter(tensor.TwoPi, 0),
		math.Pi, -1e-12, tensor.TwoPi, 3 * tensor.TwoPi,
	}
	for _, h := range hues {
		a, b := RecordSeamWeights(h, eps)
		require.InDelta(t, 1, a+b, 1e-12, "hue %v", h)
		require.GreaterOrEqual(t, a, 0.0)
		require.GreaterOrEqual(t, b, 0.0)
	}

	// On the seam bin 0 takes everything.
	a, b := RecordSeamWeights(0, eps)
	require.Equal(t, 1.0, a)
	require.Equal(t, 0.0, b)

	// Inside the window bin 0 keeps more than plain interpolation gives it.
	w := HueToBinWeights(eps / 2)
	a, _ = RecordSeamWeights(eps/2, eps)
	require.Greater(t, a, w.WeightA)

	// Outside the window: ordinary interpolation weights.
	w = HueToBinWeights(math.Pi)
	a, b = RecordSeamWeights(math.Pi, eps)
	require.Equal(t, w.WeightA, a)
	require.Equal(t, w.WeightB, b)
}

func TestRecordSeamWeights_ContinuousAtWindowEdges(t *testing.T) {
	const delta = 1e-9

	for _, eps := range []float64{DefaultSeamEpsilon, 0.2, 2} {
		win := math.Min(eps, tensor.TwoPi/HueCategories)
		for _, edge := range []float64{win, tensor.TwoPi - win} {
			below := seamShares(edge-delta, eps)
			above := seamShares(edge+delta, eps)
			require.Less(t, maxShareJump(below, above), 1e-6, "eps %v edge %v", eps, edge)
		}

		// Across the seam itself.
		require.Less(t, maxShareJump(seamShares(delta, eps), seamShares(tensor.TwoPi-delta, eps)), 1e-6, "eps %v", eps)
	}
}

func TestRecordSeamWeights_NoJumpsOverFullCircle(t *testing.T) {
	const step = 1e-4
	// The steepest share slope is 4/3 per bin width.
	limit := 1.5 * step * HueCategories / tensor.TwoPi

	for _, eps := range []float64{DefaultSeamEpsilon, 0.4} {
		prev := seamShares(0, eps)
		for h := step; h < tensor.TwoPi+step; h += step {
			cur := seamShares(h, eps)
			require.Less(t, maxShareJump(prev, cur), limit, "eps %v hue %v", eps, h)
			prev = cur
		}
	}
}

func TestRecordSeamWeights_InvalidEpsilonPanics(t *testing.T) {
	require.Panics(t, func() { RecordSeamWeights(0, 0) })
	require.Panics(t, func() { RecordSeamWeights(0, -1) })
	require.Panics(t, func() { RecordSeamWeights(0, math.NaN()) })
}
