package section

import (
	"encoding/binary"

	"github.com/arloliu/chromacore/errs"
)

// Header is the fixed-size header at the start of a UMS envelope.
type Header struct {
	Flag Flag // byte offset 2-5
	// PayloadSize is the number of payload bytes as stored.
	PayloadSize uint32 // byte offset 8-11
	// RawSize is the payload size before compression.
	RawSize uint32 // byte offset 12-15
}

// NewHeader creates a header with default flags. The sizes are set by the
// encoder once the payload is known.
func NewHeader() *Header {
	return &Header{Flag: NewFlag()}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 16 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Magic and flags are little-endian regardless of the payload order.
	if binary.LittleEndian.Uint16(data[0:2]) != MagicUMSV1 {
		return errs.ErrInvalidMagicNumber
	}
	h.Flag.Options = binary.LittleEndian.Uint16(data[2:4])
	h.Flag.EncodingType = data[4]
	h.Flag.CompressionType = data[5]
	if data[6] != 0 || data[7] != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	engine := h.Flag.GetEndianEngine()
	h.PayloadSize = engine.Uint32(data[8:12])
	h.RawSize = engine.Uint32(data[12:16])

	return h.Flag.Validate()
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := h.Flag.GetEndianEngine()

	dst = binary.LittleEndian.AppendUint16(dst, MagicUMSV1)
	dst = binary.LittleEndian.AppendUint16(dst, h.Flag.Options)
	dst = append(dst, h.Flag.EncodingType, h.Flag.CompressionType, 0, 0)
	dst = engine.AppendUint32(dst, h.PayloadSize)
	dst = engine.AppendUint32(dst, h.RawSize)

	return dst
}

// ParseHeader parses a Header from the start of data.
//
// Parameters:
//   - data: Byte slice starting with a header (at least 16 bytes)
//
// Returns:
//   - Header: Parsed header
//   - error: ErrInvalidHeaderSize or the error from Parse
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
