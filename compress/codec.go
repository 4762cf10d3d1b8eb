package compress

import (
	"fmt"

	"github.com/arloliu/chromacore/errs"
	"github.com/arloliu/chromacore/format"
)

// Compressor compresses an encoded envelope payload.
//
// The returned slice is owned by the caller; the input is not modified. The
// no-op codec returns its input unchanged.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
//
// It returns an error if data is corrupted or was produced by another
// algorithm. Empty input decompresses to nil.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression of a payload.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of the payload before compression
	OriginalSize int64

	// CompressedSize is the size of the payload after compression
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, or 0 for an
// empty payload. Values below 1 indicate a size reduction.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage of the original size.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses data with the codec for compressionType and reports the
// resulting sizes.
func Measure(compressionType format.CompressionType, data []byte) (CompressionStats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return CompressionStats{}, err
	}

	packed, err := codec.Compress(data)
	if err != nil {
		return CompressionStats{}, err
	}

	return CompressionStats{
		Algorithm:      compressionType,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(packed)),
	}, nil
}

// CreateCodec creates a fresh Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: wraps errs.ErrUnsupportedCompression for unknown types
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression %s: %w", target, compressionType, errs.ErrUnsupportedCompression)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the shared built-in Codec for the specified compression
// type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}
