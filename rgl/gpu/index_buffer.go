package gpu

import "github.com/go-gl/gl/v4.6-core/gl"

type IndexBuffer struct {
	id    uint32
	count int32
}

func NewIndexBuffer(indices []uint32) *IndexBuffer {
	b := &IndexBuffer{count: int32(len(indices))}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, ptrOrNil(indices), gl.STATIC_DRAW)
	return b
}

func (b *IndexBuffer) ID() uint32 {
	return b.id
}

// Count is the number of indices, as passed to DrawElements.
func (b *IndexBuffer) Count() int32 {
	return b.count
}

func (b *IndexBuffer) Bind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)
}

func (b *IndexBuffer) Unbind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

func (b *IndexBuffer) Delete() {
	if b.id == 0 {
		return
	}
	gl.DeleteBuffers(1, &b.id)
	b.id, b.count = 0, 0
}

func (b *IndexBuffer) Move() *IndexBuffer {
	moved := *b
	b.id, b.count = 0, 0
	return &moved
}
