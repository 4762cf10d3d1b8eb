package bridge

import (
	"math"

	"github.com/arloliu/chromacore/internal/hash"
	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

// UMS layout. Offsets are fixed; every vector uses the same partition.
const (
	UMSDim = 512 // UMSDim is the length of a UMS vector.

	SpectralBands       = 128 // SpectralBands is the number of amplitude (and bandwidth) slots.
	SpectralSigmaOffset = 128 // SpectralSigmaOffset is the first bandwidth slot.
	ChromaticOffset     = 256 // ChromaticOffset is the first chromatic slot.
	ChromaticBands      = 128 // ChromaticBands is the size of the chromatic band.
	TemporalOffset      = 384 // TemporalOffset is the energy slot.
	TemporalBands       = 128 // TemporalBands is the size of the temporal band; only the first slot is used.
)

// Slots of the chromatic band following the hue histogram.
const (
	slotHueCos = ChromaticOffset + HueCategories + iota
	slotHueSin
	slotSaturation
	slotLightness
)

// UMS is a Unified Modality Space vector.
//
// Layout:
//
//	[0, 128)    spectral amplitudes
//	[128, 256)  spectral bandwidths
//	[256, 268)  hue histogram (sums to 1)
//	268..271    cos(mean hue), sin(mean hue), mean saturation, mean lightness
//	384         spectral energy
//
// Every other slot is zero.
type UMS [UMSDim]float64

// Amplitudes returns the spectral amplitude band.
func (u *UMS) Amplitudes() []float64 {
	return u[:SpectralBands]
}

// Bandwidths returns the spectral bandwidth band.
func (u *UMS) Bandwidths() []float64 {
	return u[SpectralSigmaOffset : SpectralSigmaOffset+SpectralBands]
}

// ChromaticBand returns the whole chromatic band.
func (u *UMS) ChromaticBand() []float64 {
	return u[ChromaticOffset : ChromaticOffset+ChromaticBands]
}

// HueHistogram returns the hue histogram slots of the chromatic band.
func (u *UMS) HueHistogram() []float64 {
	return u[ChromaticOffset : ChromaticOffset+HueCategories]
}

// Energy returns the temporal energy slot.
func (u *UMS) Energy() float64 {
	return u[TemporalOffset]
}

// Fingerprint returns the xxHash64 of the canonicalized vector.
func (u *UMS) Fingerprint() uint64 {
	return hash.Float64s(u[:])
}

// Project builds the UMS vector of a chromatic/spectral pair.
//
// Spectra with at most SpectralBands bins are copied and padded (zero
// amplitude, NeutralSigma bandwidth); longer spectra are averaged into
// SpectralBands contiguous non-empty buckets. A missing bandwidth array
// yields NeutralSigma in every bandwidth slot.
func Project(c *tensor.Chromatic, s *tensor.Spectral) UMS {
	var u UMS
	projectSpectral(&u, s)
	projectChromatic(&u, c)
	u[TemporalOffset] = s.Energy()

	return u
}

// projectBucket returns the source range averaged into target slot t when
// downsampling bins source values into SpectralBands slots.
func projectBucket(t, bins int) (int, int) {
	start := t * bins / SpectralBands
	end := min((t+1)*bins/SpectralBands, bins)
	end = max(end, min(start+1, bins))

	return start, end
}

func projectSpectral(u *UMS, s *tensor.Spectral) {
	bins := len(s.Bins)
	if bins == 0 {
		panic("bridge: spectral tensor requires at least one bin")
	}

	amps := u.Amplitudes()
	sigmas := u.Bandwidths()
	neutral := NeutralSigma()

	if bins <= SpectralBands {
		copy(amps, s.Bins)
		for i := range sigmas {
			sigmas[i] = neutral
		}
		if s.Sigma != nil {
			copy(sigmas, s.Sigma)
		}

		return
	}

	for t := range amps {
		start, end := projectBucket(t, bins)
		amps[t] = mean(s.Bins[start:end])
	}
	if s.Sigma == nil {
		for i := range sigmas {
			sigmas[i] = neutral
		}

		return
	}
	for t := range sigmas {
		start, end := projectBucket(t, bins)
		sigmas[t] = mean(s.Sigma[start:end])
	}
}

func projectChromatic(u *UMS, c *tensor.Chromatic) {
	hist := u.HueHistogram()
	cells := 0
	for i := 0; i < len(c.RGB); i += layout.Channels {
		hsl := tensor.RGBToHSL(c.RGB[i], c.RGB[i+1], c.RGB[i+2])
		w := HueToBinWeights(hsl.H)
		hist[w.A] += w.WeightA
		hist[w.B] += w.WeightB
		cells++
	}
	if cells > 0 {
		for i := range hist {
			hist[i] /= float64(cells)
		}
	}

	m := tensor.MeanHSL(c)
	u[slotHueCos] = math.Cos(m.H)
	u[slotHueSin] = math.Sin(m.H)
	u[slotSaturation] = layout.ClampUnit(m.S)
	u[slotLightness] = layout.ClampUnit(m.L)
}

// ReconstructChromatic recovers the mean hue, saturation and lightness
// stored in the chromatic band.
func ReconstructChromatic(u *UMS) tensor.HSL {
	return tensor.HSL{
		H: tensor.NormalizeHue(math.Atan2(u[slotHueSin], u[slotHueCos])),
		S: layout.ClampUnit(u[slotSaturation]),
		L: layout.ClampUnit(u[slotLightness]),
	}
}

// reconstructBucket returns the UMS slot range averaged into output bin idx
// when upsampling SpectralBands slots into bins values.
func reconstructBucket(idx, bins int) (int, int) {
	start := min(idx*SpectralBands/bins, SpectralBands-1)
	end := min((idx+1)*SpectralBands/bins, SpectralBands)
	if end <= start {
		end = start + 1
	}

	return start, end
}

// ReconstructSpectral recovers bins amplitudes and bandwidths from the
// spectral bands. For bins <= SpectralBands the slots are copied exactly;
// otherwise each output bin averages its proportional slot range. bins == 0
// returns empty slices.
//
// Panics if bins is negative.
func ReconstructSpectral(u *UMS, bins int) ([]float64, []float64) {
	if bins < 0 {
		panic("bridge: bin count must not be negative")
	}
	if bins == 0 {
		return []float64{}, []float64{}
	}

	amps := make([]float64, bins)
	sigmas := make([]float64, bins)
	srcAmps := u.Amplitudes()
	srcSigmas := u.Bandwidths()

	if bins <= SpectralBands {
		copy(amps, srcAmps[:bins])
		copy(sigmas, srcSigmas[:bins])

		return amps, sigmas
	}

	for i := range amps {
		start, end := reconstructBucket(i, bins)
		amps[i] = mean(srcAmps[start:end])
		sigmas[i] = mean(srcSigmas[start:end])
	}

	return amps, sigmas
}

// ReconstructSpectralTensor wraps ReconstructSpectral into a spectral tensor
// on the Encode frequency grid.
//
// Panics if bins is not positive.
func ReconstructSpectralTensor(u *UMS, bins int) *tensor.Spectral {
	if bins <= 0 {
		panic("bridge: bin count must be positive")
	}
	amps, sigmas := ReconstructSpectral(u, bins)

	return tensor.NewSpectral(amps, sigmas, BaseFrequency, RatioPerBin(), true)
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
