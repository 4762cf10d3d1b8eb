package pool

import "sync"

// Scratch pools for the fixed-size working sets of encoding and envelope
// serialization.
var (
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
	uint16SlicePool = sync.Pool{
		New: func() any { return &[]uint16{} },
	}
)

// GetFloat64Slice retrieves and resizes a float64 slice from the pool.
//
// The returned slice has length size; its contents are unspecified and the
// caller must initialize it. If the pooled slice has insufficient capacity a
// new one is allocated.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []float64: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	counts, release := pool.GetFloat64Slice(12)
//	defer release()
//	clear(counts)
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}

// GetUint16Slice retrieves and resizes a uint16 slice from the pool.
// It follows the same contract as GetFloat64Slice.
func GetUint16Slice(size int) ([]uint16, func()) {
	ptr, _ := uint16SlicePool.Get().(*[]uint16)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]uint16, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { uint16SlicePool.Put(ptr) }
}
