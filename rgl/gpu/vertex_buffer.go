package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/jyu3d/jyu/rgl"
)

// VertexBuffer holds per-vertex data described by a layout.
type VertexBuffer struct {
	id     uint32
	layout rgl.VertexBufferLayout
	hint   DrawHint
}

// NewVertexBuffer uploads vertices. A zero hint means DynamicDraw.
func NewVertexBuffer(vertices []float32, layout rgl.VertexBufferLayout, hint DrawHint) *VertexBuffer {
	if hint == 0 {
		hint = DynamicDraw
	}
	b := &VertexBuffer{layout: layout, hint: hint}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, ptrOrNil(vertices), uint32(hint))
	return b
}

func (b *VertexBuffer) ID() uint32 {
	return b.id
}

func (b *VertexBuffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
}

func (b *VertexBuffer) Unbind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *VertexBuffer) Layout() rgl.VertexBufferLayout {
	return b.layout
}

// SetLayout only changes how the data is interpreted by vertex arrays that
// add this buffer afterwards.
func (b *VertexBuffer) SetLayout(layout rgl.VertexBufferLayout) {
	b.layout = layout
}

// SetData replaces the whole store, reallocating it with the buffer's hint.
func (b *VertexBuffer) SetData(vertices []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, ptrOrNil(vertices), uint32(b.hint))
}

// Apply maps the buffer and passes its bytes to fn. The slice is only valid
// during the call.
func (b *VertexBuffer) Apply(fn func(data []byte), access Access) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)

	var size int32
	gl.GetBufferParameteriv(gl.ARRAY_BUFFER, gl.BUFFER_SIZE, &size)
	if size == 0 {
		fn(nil)
		return
	}

	ptr := gl.MapBuffer(gl.ARRAY_BUFFER, uint32(access))
	if ptr == nil {
		rgl.Log().Error("map vertex buffer failed", "id", b.id)
		return
	}
	fn(unsafe.Slice((*byte)(ptr), size))
	gl.UnmapBuffer(gl.ARRAY_BUFFER)
}

func (b *VertexBuffer) Delete() {
	if b.id == 0 {
		return
	}
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
}

// Move hands the GL object to a new wrapper and leaves b inert.
func (b *VertexBuffer) Move() *VertexBuffer {
	moved := *b
	b.id = 0
	return &moved
}

func ptrOrNil[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return gl.Ptr(s)
}
