package section

import (
	"github.com/arloliu/chromacore/endian"
	"github.com/arloliu/chromacore/errs"
	"github.com/arloliu/chromacore/format"
)

// Flag holds the configuration fields of an envelope header.
type Flag struct {
	// Options is the packed flag word. Only the endianness bit is defined.
	Options uint16
	// EncodingType is the payload encoding.
	EncodingType uint8
	// CompressionType is the payload compression.
	CompressionType uint8
}

// NewFlag returns a little-endian flag with half encoding and no
// compression.
func NewFlag() Flag {
	return Flag{
		EncodingType:    uint8(format.TypeHalf),
		CompressionType: uint8(format.CompressionNone),
	}
}

// IsLittleEndian returns whether the payload is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the payload is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// Encoding returns the payload encoding.
func (f Flag) Encoding() format.EncodingType {
	return format.EncodingType(f.EncodingType)
}

// SetEncoding sets the payload encoding.
func (f *Flag) SetEncoding(enc format.EncodingType) {
	f.EncodingType = uint8(enc)
}

// Compression returns the payload compression.
func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the payload compression.
func (f *Flag) SetCompression(c format.CompressionType) {
	f.CompressionType = uint8(c)
}

// Validate checks that no reserved bit is set and that the encoding and
// compression are known.
func (f Flag) Validate() error {
	if f.Options&ReservedFlagsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}
	if !f.Encoding().Valid() {
		return errs.ErrUnsupportedEncoding
	}
	if !f.Compression().Valid() {
		return errs.ErrUnsupportedCompression
	}

	return nil
}

// GetEndianEngine returns the engine selected by the endianness bit.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
