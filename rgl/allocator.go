package rgl

// Handle names a native buffer. The zero handle is never a live buffer.
type Handle uint32

// Allocator is the native buffer contract the instance buffer is written
// against. Implementations are not safe for concurrent use.
type Allocator interface {
	// Allocate creates a zero-filled buffer of size bytes.
	Allocate(size int) (Handle, error)
	// Free releases h. Freeing the zero handle is a no-op.
	Free(h Handle)
	// CopyRange copies n bytes from src at srcOffset to dst at dstOffset.
	CopyRange(src, dst Handle, srcOffset, dstOffset, n int)
	// Write stores data into h starting at offset.
	Write(h Handle, offset int, data []byte)
	// Read returns a copy of n bytes of h starting at offset.
	Read(h Handle, offset, n int) []byte
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// OwnedBuffer is the exclusive owner of one allocated buffer.
type OwnedBuffer struct {
	_ noCopy

	alloc  Allocator
	handle Handle
	size   int
}

func NewOwnedBuffer(alloc Allocator, size int) (OwnedBuffer, error) {
	h, err := alloc.Allocate(size)
	if err != nil {
		return OwnedBuffer{}, err
	}
	return OwnedBuffer{alloc: alloc, handle: h, size: size}, nil
}

func (b *OwnedBuffer) Handle() Handle {
	return b.handle
}

func (b *OwnedBuffer) Size() int {
	return b.size
}

// Valid reports whether b still owns a buffer.
func (b *OwnedBuffer) Valid() bool {
	return b.handle != 0
}

// Move transfers ownership to the returned value and leaves b empty.
func (b *OwnedBuffer) Move() OwnedBuffer {
	alloc, h, size := b.alloc, b.handle, b.size
	b.handle, b.size = 0, 0
	return OwnedBuffer{alloc: alloc, handle: h, size: size}
}

// Release frees the buffer. It is safe to call more than once.
func (b *OwnedBuffer) Release() {
	if b.handle == 0 {
		return
	}
	b.alloc.Free(b.handle)
	b.handle, b.size = 0, 0
}
