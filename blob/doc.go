// Package blob serializes UMS vectors into self-describing binary envelopes.
//
// An envelope carries one 512-slot UMS vector in either of two encodings:
//
//   - Raw64: every slot as a float64 (lossless, 4096-byte payload)
//   - Half: the binary16 form produced by bridge.Compress, i.e. mean and
//     standard deviation as float64 followed by 512 half-precision z-scores
//     (lossy, 1040-byte payload)
//
// The payload may then be compressed with any codec from package compress.
// The header records encoding, compression and byte order, so DecodeUMS needs
// no configuration. An xxHash64 checksum of the uncompressed payload guards
// against corruption. See package section for the byte layout.
//
// # Usage
//
//	enc, err := blob.NewUMSEncoder(
//		blob.WithEncoding(format.TypeHalf),
//		blob.WithCompression(format.CompressionZstd),
//	)
//	if err != nil {
//		return err
//	}
//	data, err := enc.Encode(&ums)
//	...
//	ums, err = blob.DecodeUMS(data)
//
// Envelopes are built in memory only; persisting them is up to the caller.
package blob
