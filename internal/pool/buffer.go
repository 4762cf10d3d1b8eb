package pool

import "sync"

const (
	// EnvelopeBufferDefaultSize fits a raw 512-slot UMS payload with header
	// and trailer.
	EnvelopeBufferDefaultSize = 1024 * 5 // 5KiB
	// EnvelopeBufferMaxThreshold is the largest buffer kept for reuse.
	EnvelopeBufferMaxThreshold = 1024 * 64 // 64KiB
)

// ByteBuffer is a reusable append-only byte buffer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool is a pool of ByteBuffers.
//
// Buffers that grew beyond maxThreshold are dropped on Put instead of being
// retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given initial capacity.
// A maxThreshold of 0 disables the size limit.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var envelopeDefaultPool = NewByteBufferPool(EnvelopeBufferDefaultSize, EnvelopeBufferMaxThreshold)

// GetEnvelopeBuffer retrieves a ByteBuffer from the default envelope pool.
func GetEnvelopeBuffer() *ByteBuffer {
	return envelopeDefaultPool.Get()
}

// PutEnvelopeBuffer returns a ByteBuffer to the default envelope pool.
func PutEnvelopeBuffer(bb *ByteBuffer) {
	envelopeDefaultPool.Put(bb)
}
