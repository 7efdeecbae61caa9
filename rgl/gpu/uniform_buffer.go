package gpu

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/jyu3d/jyu/rgl"
)

// UniformBuffer is a uniform block whose members are described by a layout
// and which stays bound to one binding point.
type UniformBuffer struct {
	id      uint32
	binding uint32
	layout  rgl.VertexBufferLayout
}

// NewUniformBuffer allocates layout.Stride() bytes, or uploads contents when
// it is non-empty.
func NewUniformBuffer(contents []float32, layout rgl.VertexBufferLayout, binding uint32) *UniformBuffer {
	b := &UniformBuffer{binding: binding, layout: layout}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.id)
	if len(contents) > 0 {
		gl.BufferData(gl.UNIFORM_BUFFER, len(contents)*4, gl.Ptr(contents), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.UNIFORM_BUFFER, layout.Stride(), nil, gl.DYNAMIC_DRAW)
	}
	gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, b.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return b
}

func (b *UniformBuffer) ID() uint32 {
	return b.id
}

func (b *UniformBuffer) BindingPoint() uint32 {
	return b.binding
}

func (b *UniformBuffer) Layout() rgl.VertexBufferLayout {
	return b.layout
}

func (b *UniformBuffer) Bind() {
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.id)
}

func (b *UniformBuffer) Unbind() {
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

// SetAttributeData writes data into the named member, offsetFloats floats
// past its start. The buffer must be bound.
func (b *UniformBuffer) SetAttributeData(name string, data []float32, offsetFloats int) error {
	attr, err := b.layout.AttributeByName(name)
	if err != nil {
		return err
	}
	b.write(attr, data, offsetFloats)
	return nil
}

// SetAttributeDataAt is SetAttributeData addressed by member index.
func (b *UniformBuffer) SetAttributeDataAt(index int, data []float32, offsetFloats int) error {
	attr, err := b.layout.Attribute(index)
	if err != nil {
		return err
	}
	b.write(attr, data, offsetFloats)
	return nil
}

func (b *UniformBuffer) write(attr rgl.VertexAttribute, data []float32, offsetFloats int) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(gl.UNIFORM_BUFFER, uniformOffset(attr, offsetFloats), len(data)*4, gl.Ptr(data))
}

func uniformOffset(attr rgl.VertexAttribute, offsetFloats int) int {
	return attr.Offset + offsetFloats*4
}

func (b *UniformBuffer) Delete() {
	if b.id == 0 {
		return
	}
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
}

func (b *UniformBuffer) Move() *UniformBuffer {
	moved := *b
	b.id = 0
	return &moved
}
