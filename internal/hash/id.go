// Package hash provides xxHash64 fingerprints over canonicalized values.
//
// Floating-point values are hashed by their IEEE-754 bit pattern after
// canonicalization: every NaN hashes as the same quiet NaN and negative zero
// hashes as positive zero. Two values that compare equal under the
// determinism rules therefore always produce the same fingerprint, and the
// fingerprint never depends on the host byte order.
package hash

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/chromacore/endian"
)

// canonicalNaN is the single bit pattern used for every NaN.
const canonicalNaN = 0x7ff8000000000001

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// CanonicalBits returns the canonical bit pattern of v.
func CanonicalBits(v float64) uint64 {
	switch {
	case math.IsNaN(v):
		return canonicalNaN
	case v == 0:
		return 0
	default:
		return math.Float64bits(v)
	}
}

// Float64s computes the fingerprint of a sequence of float64 values.
func Float64s(values []float64) uint64 {
	h := NewHasher()
	h.Float64s(values)

	return h.Sum64()
}

// Hasher accumulates canonicalized values into a running xxHash64 digest.
//
// The zero value is not usable; create hashers with NewHasher.
type Hasher struct {
	digest *xxhash.Digest
	engine endian.EndianEngine
	buf    []byte
}

// NewHasher creates a hasher. Values are serialized little-endian.
func NewHasher() *Hasher {
	return &Hasher{
		digest: xxhash.New(),
		engine: endian.GetLittleEndianEngine(),
		buf:    make([]byte, 0, 8),
	}
}

// Uint64 adds v to the digest.
func (h *Hasher) Uint64(v uint64) {
	h.buf = h.engine.AppendUint64(h.buf[:0], v)
	_, _ = h.digest.Write(h.buf)
}

// Float64 adds the canonical bits of v to the digest.
func (h *Hasher) Float64(v float64) {
	h.Uint64(CanonicalBits(v))
}

// Float64s adds every value, prefixed by the slice length so that
// concatenations of different slices cannot collide trivially.
func (h *Hasher) Float64s(values []float64) {
	h.Uint64(uint64(len(values)))
	for _, v := range values {
		h.Float64(v)
	}
}

// String adds s, prefixed by its length.
func (h *Hasher) String(s string) {
	h.Uint64(uint64(len(s)))
	_, _ = h.digest.WriteString(s)
}

// Sum64 returns the current digest.
func (h *Hasher) Sum64() uint64 {
	return h.digest.Sum64()
}
