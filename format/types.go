// Package format names the payload encodings and compression algorithms a
// UMS envelope can carry.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/chromacore/errs"
)

type (
	EncodingType    uint8
	CompressionType uint8
)

const (
	TypeRaw64 EncodingType = 0x1 // TypeRaw64 stores every UMS slot as a float64.
	TypeHalf  EncodingType = 0x2 // TypeHalf stores mean, std and 512 binary16 z-scores.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw64:
		return "Raw64"
	case TypeHalf:
		return "Half"
	default:
		return "Unknown"
	}
}

// Valid reports whether e is a known encoding.
func (e EncodingType) Valid() bool {
	return e == TypeRaw64 || e == TypeHalf
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a known compression type.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseEncoding maps a configuration name to an EncodingType.
// Names are case-insensitive; "raw" is accepted for TypeRaw64.
func ParseEncoding(name string) (EncodingType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "raw", "raw64":
		return TypeRaw64, nil
	case "half":
		return TypeHalf, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedEncoding, name)
	}
}

// ParseCompression maps a configuration name to a CompressionType.
// Names are case-insensitive; the empty string means no compression.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedCompression, name)
	}
}
