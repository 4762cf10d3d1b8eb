// Package compress provides the payload codecs of the UMS envelope.
//
// An envelope payload is either 512 raw float64 slots (4 KiB) or the
// binary16 form of a compressed UMS vector (1 KiB plus 16 bytes of moments).
// Compression is applied to the whole payload after encoding:
//
//   - None: payload stored as-is
//   - Zstd: best ratio; pure Go (klauspost/compress) by default, or the cgo
//     binding valyala/gozstd when built with the gozstd tag
//   - S2: fast, moderate ratio (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4)
//
// Half payloads of smooth tensors repeat many codes and compress well;
// raw float64 payloads of projected tensors are dominated by zero padding in
// the reserved slots and compress even better.
//
// Every codec is stateless and safe for concurrent use. Encoders and decoders
// that benefit from warm-up are pooled internally.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	packed, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(packed)
package compress
