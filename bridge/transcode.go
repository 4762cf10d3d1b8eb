package bridge

import (
	"math"

	"github.com/arloliu/chromacore/internal/pool"
	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

// Encode converts a chromatic tensor into a HueCategories-bin spectrum.
//
// Every cell contributes saturation*weight to the amplitude of its two hue
// bins and MapLuminanceToSigma(lightness)*weight to their bandwidth
// accumulators. Amplitudes are normalized by the cell count, bandwidths by
// the weight each bin received. Bins that received no weight get zero
// amplitude and NeutralSigma.
//
// The result is log-scaled with FMin = BaseFrequency and FRes = RatioPerBin().
func Encode(c *tensor.Chromatic) *tensor.Spectral {
	bins := make([]float64, HueCategories)
	sigma := make([]float64, HueCategories)
	counts, release := pool.GetFloat64Slice(HueCategories)
	defer release()
	clear(counts)

	for i := 0; i < len(c.RGB); i += layout.Channels {
		hsl := tensor.RGBToHSL(c.RGB[i], c.RGB[i+1], c.RGB[i+2])
		w := HueToBinWeights(hsl.H)
		sv := MapLuminanceToSigma(hsl.L)

		bins[w.A] += hsl.S * w.WeightA
		sigma[w.A] += sv * w.WeightA
		counts[w.A] += w.WeightA

		bins[w.B] += hsl.S * w.WeightB
		sigma[w.B] += sv * w.WeightB
		counts[w.B] += w.WeightB
	}

	cells := float64(max(c.Shape.CellCount(), 1))
	neutral := NeutralSigma()
	for i, n := range counts {
		if n > 0 {
			bins[i] /= cells
			sigma[i] /= n
		} else {
			bins[i] = 0
			sigma[i] = neutral
		}
	}

	return tensor.NewSpectral(bins, sigma, BaseFrequency, RatioPerBin(), true)
}

// Decode converts a spectrum into a single-cell chromatic tensor.
//
// Negative amplitudes are treated as zero. The amplitude-weighted mean bin
// index, taken circularly around the dominant bin, becomes the hue; the total
// amplitude becomes saturation; the amplitude-weighted mean bandwidth becomes
// lightness. The dominant bin's share of the total amplitude is stored as the
// cell's coherence.
//
// A silent spectrum decodes to saturation 0. Its lightness is recovered from
// the bandwidths that differ from NeutralSigma, so a gray survives the round
// trip.
func Decode(s *tensor.Spectral) *tensor.Chromatic {
	n := len(s.Bins)

	total := 0.0
	dom, domAmp := 0, -1.0
	for i, v := range s.Bins {
		a := math.Max(v, 0)
		total += a
		if a > domAmp {
			dom, domAmp = i, a
		}
	}

	var out tensor.HSL
	coherence := 0.0
	if total > silence {
		// Offsets are measured in (-n/2, n/2] around the dominant bin so that
		// energy split across the last and first bins averages across the
		// seam rather than through the middle of the circle.
		offset := 0.0
		for i, v := range s.Bins {
			a := math.Max(v, 0)
			if a == 0 {
				continue
			}
			d := (i-dom+n+n/2)%n - n/2
			offset += float64(d) * a
		}
		mean := float64(dom) + offset/total
		frac := mean / float64(n)
		frac -= math.Floor(frac)

		out.H = FrequencyToHue(BaseFrequency * math.Pow(2, frac*OctaveSpan))
		out.S = layout.ClampUnit(total)
		coherence = layout.ClampUnit(domAmp / total)
	}
	out.L = SigmaToLuminance(decodeSigma(s, total))

	rgb := tensor.HSLToRGB(out)

	return tensor.NewChromatic(layout.NewShape2D(1, 1), rgb[:], []float64{coherence})
}

func decodeSigma(s *tensor.Spectral, total float64) float64 {
	neutral := NeutralSigma()
	if s.Sigma == nil {
		return neutral
	}

	if total > silence {
		weighted := 0.0
		for i, sg := range s.Sigma {
			weighted += sg * math.Max(s.Bins[i], 0)
		}

		return layout.Clamp(weighted/total, MinSigma, MaxSigma)
	}

	sum, count := 0.0, 0
	for _, sg := range s.Sigma {
		if math.Abs(sg-neutral) > silence {
			sum += sg
			count++
		}
	}
	if count == 0 {
		return neutral
	}

	return layout.Clamp(sum/float64(count), MinSigma, MaxSigma)
}

// RoundTripDelta encodes and decodes c and returns the seam-aware difference
// between the mean HSL of c and the decoded color.
func RoundTripDelta(c *tensor.Chromatic) tensor.HSL {
	mean := tensor.MeanHSL(c)
	decoded := Decode(Encode(c))
	rgb := decoded.RGBAt(0, 0)

	return tensor.DeltaHSL(mean, tensor.RGBToHSL(rgb[0], rgb[1], rgb[2]))
}

// ValidateRoundTrip reports whether every component of RoundTripDelta(c) is
// within RoundTripTolerance.
func ValidateRoundTrip(c *tensor.Chromatic) bool {
	d := RoundTripDelta(c)

	return math.Abs(d.H) <= RoundTripTolerance &&
		math.Abs(d.S) <= RoundTripTolerance &&
		math.Abs(d.L) <= RoundTripTolerance
}
