// Package chromacore converts between chromatic tensors and spectral
// representations and projects both into a fixed 512-dimensional Unified
// Modality Space (UMS).
//
// # Core Features
//
//   - RGB/HSL chromatic tensors with per-cell coherence
//   - Reversible transcoding of hue, saturation and lightness into a 12-bin
//     log-frequency spectrum, continuous across the 0/2π hue seam
//   - UMS projection with lossy binary16 compression
//   - Deterministic fixed-point reductions and canonical-bit fingerprints
//   - A bounded, coherence-gated dream pool for candidate generation
//   - Binary UMS envelopes with optional compression (None, Zstd, S2, LZ4)
//     and xxHash64 checksums
//
// # Basic Usage
//
// Projecting a tensor and sealing it in an envelope:
//
//	import "github.com/arloliu/chromacore"
//
//	t := tensor.NewUniform(layout.NewShape2D(4, 4), tensor.RGB{0.8, 0.2, 0.1})
//	data, _ := chromacore.EncodeTensor(t)
//
//	u, _ := chromacore.DecodeUMS(data)
//	hsl := bridge.ReconstructChromatic(&u)
//
// Checking that a tensor survives the spectral round trip:
//
//	if !chromacore.ValidateRoundTrip(t) {
//	    // outside tolerance
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the bridge,
// blob and dream packages. For fine-grained control use those packages
// directly.
package chromacore

import (
	"github.com/arloliu/chromacore/blob"
	"github.com/arloliu/chromacore/bridge"
	"github.com/arloliu/chromacore/config"
	"github.com/arloliu/chromacore/dream"
	"github.com/arloliu/chromacore/format"
	"github.com/arloliu/chromacore/tensor"
)

var defaultUMSOptions = []blob.UMSEncoderOption{
	blob.WithLittleEndian(),
	blob.WithEncoding(format.TypeHalf),
	blob.WithCompression(format.CompressionNone),
}

// NewDefaultUMSEncoder creates an envelope encoder with default settings:
// little-endian, binary16 payload, no compression.
func NewDefaultUMSEncoder() (*blob.UMSEncoder, error) {
	return blob.NewUMSEncoder(defaultUMSOptions...)
}

// NewLosslessUMSEncoder creates an envelope encoder that stores the raw
// float64 vector compressed with zstd.
func NewLosslessUMSEncoder() (*blob.UMSEncoder, error) {
	return blob.NewUMSEncoder(
		blob.WithLittleEndian(),
		blob.WithEncoding(format.TypeRaw64),
		blob.WithCompression(format.CompressionZstd),
	)
}

// Transcode encodes t into its spectrum and projects both into the UMS.
func Transcode(t *tensor.Chromatic) bridge.UMS {
	return bridge.Project(t, bridge.Encode(t))
}

// EncodeTensor transcodes t and seals the UMS vector in a default envelope.
func EncodeTensor(t *tensor.Chromatic) ([]byte, error) {
	enc, err := NewDefaultUMSEncoder()
	if err != nil {
		return nil, err
	}

	u := Transcode(t)

	return enc.Encode(&u)
}

// DecodeUMS opens an envelope produced by any UMS encoder.
func DecodeUMS(data []byte) (bridge.UMS, error) {
	return blob.DecodeUMS(data)
}

// ValidateRoundTrip reports whether t survives encode/decode within
// bridge.RoundTripTolerance.
func ValidateRoundTrip(t *tensor.Chromatic) bool {
	return bridge.ValidateRoundTrip(t)
}

// NewDreamPool creates a dream pool with the default capacity and coherence
// threshold.
func NewDreamPool(opts ...dream.PoolOption) *dream.Pool {
	d := config.Default().Dream
	return dream.NewPool(d.Capacity, d.CoherenceThreshold, opts...)
}

// Dream runs a dream cycle of the default length against target on a fresh
// default pool and returns both.
func Dream(target *tensor.Chromatic) (*dream.Pool, dream.CycleReport) {
	p := NewDreamPool()
	report := dream.Cycle(target, p, config.Default().Dream.Epochs)

	return p, report
}
