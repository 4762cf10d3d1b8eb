package compress

// ZstdCompressor provides Zstandard compression for envelope payloads.
//
// The default build uses the pure Go klauspost/compress/zstd with pooled
// encoders and decoders. Building with the gozstd tag (and cgo) switches to
// the valyala/gozstd binding; both produce standard zstd frames and can read
// each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
