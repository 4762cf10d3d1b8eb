package blob

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/chromacore/bridge"
	"github.com/arloliu/chromacore/compress"
	"github.com/arloliu/chromacore/endian"
	"github.com/arloliu/chromacore/errs"
	"github.com/arloliu/chromacore/format"
	"github.com/arloliu/chromacore/half"
	"github.com/arloliu/chromacore/internal/pool"
	"github.com/arloliu/chromacore/section"
)

// Inspect parses and validates the header of an envelope without decoding
// the payload.
func Inspect(data []byte) (section.Header, error) {
	h, err := section.ParseHeader(data)
	if err != nil {
		return section.Header{}, errs.New(errs.KindValidation, "inspect envelope", err)
	}

	return h, nil
}

// DecodeUMS decodes an envelope produced by UMSEncoder.
//
// Half envelopes are decompressed with bridge.Decompress, so the result is
// the lossy reconstruction. Every failure is a KindValidation error wrapping
// one of the envelope sentinels in package errs.
func DecodeUMS(data []byte) (bridge.UMS, error) {
	h, raw, err := openEnvelope(data)
	if err != nil {
		return bridge.UMS{}, err
	}
	engine := h.Flag.GetEndianEngine()

	var u bridge.UMS
	switch h.Flag.Encoding() {
	case format.TypeRaw64:
		endian.Float64sInto(engine, u[:], raw)
	case format.TypeHalf:
		c := decodeHalf(engine, raw)
		u = c.Decompress()
	}

	return u, nil
}

// DecodeCompressedUMS decodes a Half envelope into its binary16 form without
// decompressing it.
func DecodeCompressedUMS(data []byte) (bridge.CompressedUMS, error) {
	h, raw, err := openEnvelope(data)
	if err != nil {
		return bridge.CompressedUMS{}, err
	}
	if h.Flag.Encoding() != format.TypeHalf {
		return bridge.CompressedUMS{}, errs.New(errs.KindValidation, "decode compressed ums",
			fmt.Errorf("%w: %s envelope", errs.ErrUnsupportedEncoding, h.Flag.Encoding()))
	}

	return decodeHalf(h.Flag.GetEndianEngine(), raw), nil
}

// openEnvelope validates the framing and checksum of data and returns the
// header and the uncompressed payload.
func openEnvelope(data []byte) (section.Header, []byte, error) {
	const op = "decode ums"

	h, err := section.ParseHeader(data)
	if err != nil {
		return section.Header{}, nil, errs.New(errs.KindValidation, op, err)
	}

	if uint64(len(data)) != uint64(section.Overhead)+uint64(h.PayloadSize) {
		return section.Header{}, nil, errs.New(errs.KindValidation, op,
			fmt.Errorf("%w: envelope is %d bytes, header declares %d payload bytes", errs.ErrPayloadSize, len(data), h.PayloadSize))
	}
	want := payloadSize(h.Flag.Encoding())
	if int(h.RawSize) != want {
		return section.Header{}, nil, errs.New(errs.KindValidation, op,
			fmt.Errorf("%w: raw size %d, want %d", errs.ErrPayloadSize, h.RawSize, want))
	}

	payloadEnd := section.HeaderSize + int(h.PayloadSize)
	codec, err := compress.GetCodec(h.Flag.Compression())
	if err != nil {
		return section.Header{}, nil, errs.New(errs.KindValidation, op, err)
	}
	raw, err := codec.Decompress(data[section.HeaderSize:payloadEnd])
	if err != nil {
		return section.Header{}, nil, errs.New(errs.KindValidation, op, fmt.Errorf("decompress payload: %w", err))
	}
	if len(raw) != want {
		return section.Header{}, nil, errs.New(errs.KindValidation, op,
			fmt.Errorf("%w: decompressed %d bytes, want %d", errs.ErrPayloadSize, len(raw), want))
	}

	engine := h.Flag.GetEndianEngine()
	if engine.Uint64(data[payloadEnd:]) != xxhash.Sum64(raw) {
		return section.Header{}, nil, errs.New(errs.KindValidation, op, errs.ErrChecksumMismatch)
	}

	return h, raw, nil
}

func decodeHalf(engine endian.EndianEngine, raw []byte) bridge.CompressedUMS {
	var moments [2]float64
	endian.Float64sInto(engine, moments[:], raw[:16])

	codes, release := pool.GetUint16Slice(bridge.UMSDim)
	defer release()
	endian.Uint16sInto(engine, codes, raw[16:])

	c := bridge.CompressedUMS{Mean: moments[0], Std: moments[1]}
	for i, code := range codes {
		c.Codes[i] = half.Bits(code)
	}

	return c
}
