package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/jyu3d/jyu/rgl"
)

// Allocator implements rgl.Allocator on GL buffer objects using direct state
// access, so allocations never disturb the current buffer bindings.
type Allocator struct {
	hint DrawHint
}

var _ rgl.Allocator = (*Allocator)(nil)

func NewAllocator(hint DrawHint) *Allocator {
	return &Allocator{hint: hint}
}

func (a *Allocator) Allocate(size int) (rgl.Handle, error) {
	drainErrors()

	var id uint32
	gl.CreateBuffers(1, &id)
	gl.NamedBufferData(id, size, nil, uint32(a.hint))

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteBuffers(1, &id)
		if code == gl.OUT_OF_MEMORY {
			return 0, fmt.Errorf("allocate %d bytes: %w", size, rgl.ErrOutOfMemory)
		}
		return 0, fmt.Errorf("allocate %d bytes: gl error 0x%x", size, code)
	}
	return rgl.Handle(id), nil
}

func (a *Allocator) Free(h rgl.Handle) {
	if h == 0 {
		return
	}
	id := uint32(h)
	gl.DeleteBuffers(1, &id)
}

func (a *Allocator) CopyRange(src, dst rgl.Handle, srcOffset, dstOffset, n int) {
	if n == 0 {
		return
	}
	gl.CopyNamedBufferSubData(uint32(src), uint32(dst), srcOffset, dstOffset, n)
}

func (a *Allocator) Write(h rgl.Handle, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.NamedBufferSubData(uint32(h), offset, len(data), gl.Ptr(data))
}

func (a *Allocator) Read(h rgl.Handle, offset, n int) []byte {
	out := make([]byte, n)
	if n > 0 {
		gl.GetNamedBufferSubData(uint32(h), offset, n, gl.Ptr(out))
	}
	return out
}

// drainErrors clears stale error flags so the next GetError belongs to us.
func drainErrors() {
	for i := 0; i < 16 && gl.GetError() != gl.NO_ERROR; i++ {
	}
}
