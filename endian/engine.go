// Package endian provides the byte-order engines used to serialize UMS
// envelopes and canonical hashes.
//
// EndianEngine merges binary.ByteOrder and binary.AppendByteOrder so a single
// value can both append and read fixed-width integers:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = endian.AppendFloat64s(engine, buf, ums[:])
//
// Envelopes default to little-endian; a header flag records big-endian
// payloads so either can be decoded on any host. Engines are stateless and
// safe for concurrent use.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 0x0102)

	return probe[0] == 0x02
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return !IsNativeLittleEndian()
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeLittleEndian() {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == GetNativeEngine()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendFloat64s appends the IEEE-754 bits of every value to dst.
func AppendFloat64s(engine EndianEngine, dst []byte, values []float64) []byte {
	for _, v := range values {
		dst = engine.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}

// Float64sInto decodes len(dst) float64 values from src.
//
// Panics if src is shorter than 8*len(dst) bytes.
func Float64sInto(engine EndianEngine, dst []float64, src []byte) {
	if len(src) < len(dst)*8 {
		panic("endian: source too short")
	}
	for i := range dst {
		dst[i] = math.Float64frombits(engine.Uint64(src[i*8:]))
	}
}

// AppendUint16s appends every value to dst.
func AppendUint16s(engine EndianEngine, dst []byte, values []uint16) []byte {
	for _, v := range values {
		dst = engine.AppendUint16(dst, v)
	}

	return dst
}

// Uint16sInto decodes len(dst) uint16 values from src.
//
// Panics if src is shorter than 2*len(dst) bytes.
func Uint16sInto(engine EndianEngine, dst []uint16, src []byte) {
	if len(src) < len(dst)*2 {
		panic("endian: source too short")
	}
	for i := range dst {
		dst[i] = engine.Uint16(src[i*2:])
	}
}
