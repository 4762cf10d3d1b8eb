package blob

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/chromacore/bridge"
	"github.com/arloliu/chromacore/compress"
	"github.com/arloliu/chromacore/endian"
	"github.com/arloliu/chromacore/errs"
	"github.com/arloliu/chromacore/format"
	"github.com/arloliu/chromacore/internal/options"
	"github.com/arloliu/chromacore/internal/pool"
	"github.com/arloliu/chromacore/section"
)

const (
	// RawPayloadSize is the payload size of a Raw64 envelope.
	RawPayloadSize = bridge.UMSDim * 8
	// HalfPayloadSize is the payload size of a Half envelope.
	HalfPayloadSize = 16 + bridge.UMSDim*2
)

// payloadSize returns the uncompressed payload size of enc.
func payloadSize(enc format.EncodingType) int {
	if enc == format.TypeRaw64 {
		return RawPayloadSize
	}

	return HalfPayloadSize
}

// UMSEncoderConfig holds the envelope settings of a UMSEncoder.
type UMSEncoderConfig struct {
	header *section.Header
	codec  compress.Codec
	engine endian.EndianEngine
}

// UMSEncoderOption configures a UMSEncoder.
type UMSEncoderOption = options.Option[*UMSEncoderConfig]

// WithEncoding selects the payload encoding. The default is format.TypeHalf.
func WithEncoding(enc format.EncodingType) UMSEncoderOption {
	return options.New(func(c *UMSEncoderConfig) error {
		if !enc.Valid() {
			return fmt.Errorf("%w: %s", errs.ErrUnsupportedEncoding, enc)
		}
		c.header.Flag.SetEncoding(enc)

		return nil
	})
}

// WithCompression selects the payload compression. The default is
// format.CompressionNone.
func WithCompression(comp format.CompressionType) UMSEncoderOption {
	return options.New(func(c *UMSEncoderConfig) error {
		if !comp.Valid() {
			return fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, comp)
		}
		c.header.Flag.SetCompression(comp)

		return nil
	})
}

// WithLittleEndian sets little-endian byte order. It is the default.
func WithLittleEndian() UMSEncoderOption {
	return options.NoError(func(c *UMSEncoderConfig) {
		c.header.Flag.WithLittleEndian()
		c.engine = c.header.Flag.GetEndianEngine()
	})
}

// WithBigEndian sets big-endian byte order.
func WithBigEndian() UMSEncoderOption {
	return options.NoError(func(c *UMSEncoderConfig) {
		c.header.Flag.WithBigEndian()
		c.engine = c.header.Flag.GetEndianEngine()
	})
}

// UMSEncoder builds envelopes with a fixed configuration. It holds no
// per-call state and is safe for concurrent use.
type UMSEncoder struct {
	*UMSEncoderConfig
}

// NewUMSEncoder creates an encoder.
//
// Parameters:
//   - opts: encoding, compression and byte order options
//
// Returns:
//   - *UMSEncoder: encoder ready for use
//   - error: a KindConfig error if an option is invalid
func NewUMSEncoder(opts ...UMSEncoderOption) (*UMSEncoder, error) {
	header := section.NewHeader()
	config := &UMSEncoderConfig{
		header: header,
		engine: header.Flag.GetEndianEngine(),
	}
	if err := options.Apply(config, opts...); err != nil {
		return nil, errs.New(errs.KindConfig, "new ums encoder", err)
	}

	codec, err := compress.CreateCodec(header.Flag.Compression(), "payload")
	if err != nil {
		return nil, errs.New(errs.KindConfig, "new ums encoder", err)
	}
	config.codec = codec

	return &UMSEncoder{UMSEncoderConfig: config}, nil
}

// Encoding returns the configured payload encoding.
func (e *UMSEncoder) Encoding() format.EncodingType {
	return e.header.Flag.Encoding()
}

// Compression returns the configured payload compression.
func (e *UMSEncoder) Compression() format.CompressionType {
	return e.header.Flag.Compression()
}

// Encode serializes u into a new envelope.
//
// Half encoding applies bridge.Compress first and is lossy; Raw64 is exact.
func (e *UMSEncoder) Encode(u *bridge.UMS) ([]byte, error) {
	buf := pool.GetEnvelopeBuffer()
	defer pool.PutEnvelopeBuffer(buf)

	enc := e.header.Flag.Encoding()
	switch enc {
	case format.TypeRaw64:
		buf.B = endian.AppendFloat64s(e.engine, buf.B, u[:])
	case format.TypeHalf:
		c := bridge.Compress(u)
		buf.B = e.appendHalf(buf.B, &c)
	default:
		return nil, errs.New(errs.KindConfig, "encode ums", fmt.Errorf("%w: %s", errs.ErrUnsupportedEncoding, enc))
	}

	return e.seal("encode ums", enc, buf.Bytes())
}

// EncodeCompressed serializes an already compressed vector as a Half
// envelope regardless of the configured encoding.
func (e *UMSEncoder) EncodeCompressed(c *bridge.CompressedUMS) ([]byte, error) {
	buf := pool.GetEnvelopeBuffer()
	defer pool.PutEnvelopeBuffer(buf)

	buf.B = e.appendHalf(buf.B, c)

	return e.seal("encode compressed ums", format.TypeHalf, buf.Bytes())
}

// seal compresses raw and frames it with a header and checksum. The result
// does not alias raw.
func (e *UMSEncoder) seal(op string, enc format.EncodingType, raw []byte) ([]byte, error) {
	sum := xxhash.Sum64(raw)

	payload, err := e.codec.Compress(raw)
	if err != nil {
		return nil, errs.New(errs.KindIO, op, fmt.Errorf("compress payload: %w", err))
	}

	header := *e.header
	header.Flag.SetEncoding(enc)
	header.PayloadSize = uint32(len(payload))
	header.RawSize = uint32(len(raw))

	out := make([]byte, 0, section.Overhead+len(payload))
	out = header.AppendTo(out)
	out = append(out, payload...)
	out = e.engine.AppendUint64(out, sum)

	return out, nil
}

func (e *UMSEncoder) appendHalf(dst []byte, c *bridge.CompressedUMS) []byte {
	dst = endian.AppendFloat64s(e.engine, dst, []float64{c.Mean, c.Std})

	codes, release := pool.GetUint16Slice(bridge.UMSDim)
	defer release()
	for i, code := range c.Codes {
		codes[i] = uint16(code)
	}

	return endian.AppendUint16s(e.engine, dst, codes)
}
