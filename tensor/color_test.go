package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeHue(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"inside range", 1.5, 1.5},
		{"exactly two pi", TwoPi, 0},
		{"negative", -math.Pi / 2, 1.5 * math.Pi},
		{"several turns", 5*TwoPi + 1, 1},
		{"several negative turns", -3*TwoPi - 1, TwoPi - 1},
		{"nan", math.NaN(), 0},
		{"infinity", math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, NormalizeHue(tt.in), 1e-9)
		})
	}
}

func TestNormalizeHue_NeverReturnsTwoPi(t *testing.T) {
	// The smallest negative values round to 2π after the sign correction.
	for _, v := range []float64{-1e-17, -math.SmallestNonzeroFloat64, math.Nextafter(0, -1), -TwoPi * 1e-18} {
		h := NormalizeHue(v)
		require.GreaterOrEqual(t, h, 0.0)
		require.Less(t, h, TwoPi, "input %g", v)
	}
}

func TestRGBToHSL_KnownColors(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want HSL
	}{
		{"red", RGB{1, 0, 0}, HSL{0, 1, 0.5}},
		{"green", RGB{0, 1, 0}, HSL{TwoPi / 3, 1, 0.5}},
		{"blue", RGB{0, 0, 1}, HSL{2 * TwoPi / 3, 1, 0.5}},
		{"magenta", RGB{1, 0, 1}, HSL{5 * TwoPi / 6, 1, 0.5}},
		{"white", RGB{1, 1, 1}, HSL{0, 0, 1}},
		{"black", RGB{0, 0, 0}, HSL{0, 0, 0}},
		{"gray", RGB{0.4, 0.4, 0.4}, HSL{0, 0, 0.4}},
		{"dark teal", RGB{0, 0.25, 0.25}, HSL{TwoPi / 2, 1, 0.125}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSL(tt.rgb[0], tt.rgb[1], tt.rgb[2])
			require.InDelta(t, tt.want.H, got.H, 1e-9)
			require.InDelta(t, tt.want.S, got.S, 1e-9)
			require.InDelta(t, tt.want.L, got.L, 1e-9)
		})
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for hi := 0; hi < 24; hi++ {
		for _, s := range []float64{0.1, 0.5, 0.9, 1} {
			for _, l := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
				in := HSL{H: float64(hi) * TwoPi / 24, S: s, L: l}
				rgb := HSLToRGB(in)
				out := RGBToHSL(rgb[0], rgb[1], rgb[2])

				d := DeltaHSL(in, out)
				require.Less(t, math.Abs(d.H), 1e-4, "hsl %+v", in)
				require.Less(t, math.Abs(d.S), 1e-4, "hsl %+v", in)
				require.Less(t, math.Abs(d.L), 1e-4, "hsl %+v", in)
			}
		}
	}
}

func TestHSLToRGB_Achromatic(t *testing.T) {
	require.Equal(t, RGB{0.3, 0.3, 0.3}, HSLToRGB(HSL{H: 2, S: 0, L: 0.3}))
}

func TestDeltaHSL_SeamAware(t *testing.T) {
	a := HSL{H: TwoPi - 0.1, S: 0.5, L: 0.5}
	b := HSL{H: 0.1, S: 0.7, L: 0.4}

	d := DeltaHSL(a, b)
	require.InDelta(t, 0.2, d.H, 1e-12)
	require.InDelta(t, 0.2, d.S, 1e-12)
	require.InDelta(t, -0.1, d.L, 1e-12)

	back := DeltaHSL(b, a)
	require.InDelta(t, -0.2, back.H, 1e-12)

	require.InDelta(t, math.Sqrt(0.2*0.2+0.2*0.2+0.1*0.1), a.Distance(b), 1e-12)
}

func TestMeanHSL_CircularMean(t *testing.T) {
	// Two colors on either side of the seam average to hue 0, not π.
	c1 := HSLToRGB(HSL{H: 0.2, S: 1, L: 0.5})
	c2 := HSLToRGB(HSL{H: TwoPi - 0.2, S: 1, L: 0.5})
	tn := NewChromatic(shape(1, 2), []float64{c1[0], c1[1], c1[2], c2[0], c2[1], c2[2]}, nil)

	m := MeanHSL(tn)
	require.InDelta(t, 0, DeltaHSL(HSL{}, m).H, 1e-9)
	require.InDelta(t, 1, m.S, 1e-9)
	require.InDelta(t, 0.5, m.L, 1e-9)
}
