package gpu

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/jyu3d/jyu/rgl"
)

// VertexArray owns the buffers attached to it. Attribute indices are handed
// out in the order buffers are added; the instance buffer's attributes always
// follow the per-vertex ones.
type VertexArray struct {
	id       uint32
	vertices []*VertexBuffer
	instance *VertexBufferInst
	index    *IndexBuffer

	slots attribRanges
}

func NewVertexArray() *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.id)
	return va
}

func (va *VertexArray) ID() uint32 {
	return va.id
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.id)
}

func (va *VertexArray) Unbind() {
	gl.BindVertexArray(0)
}

// AddVertexBuffer takes ownership of vb and enables one attribute slot per
// column of each layout attribute.
func (va *VertexArray) AddVertexBuffer(vb *VertexBuffer) {
	va.vertices = append(va.vertices, vb)

	gl.BindVertexArray(va.id)
	vb.Bind()
	enableAttributes(vb.Layout(), va.slots.addVertex(vb.Layout()), 0)

	// the new vertex slots took over the instance range, move it past them
	va.AttachInstanceBuffer()
}

// SetInstanceBuffer takes ownership of inst, replacing any previous instance
// buffer. Its attributes advance once per instance.
func (va *VertexArray) SetInstanceBuffer(inst *VertexBufferInst) {
	va.ClearInstanceBuffer()
	va.instance = inst
	va.AttachInstanceBuffer()
}

// AttachInstanceBuffer points the instance attributes at the current store.
// Call it after an add that grew the instance buffer.
func (va *VertexArray) AttachInstanceBuffer() {
	if va.instance == nil {
		return
	}
	gl.BindVertexArray(va.id)
	va.instance.Bind()
	enableAttributes(va.instance.Layout(), va.slots.setInstance(va.instance.Layout()), 1)
}

// ClearInstanceBuffer deletes the instance buffer, if any.
func (va *VertexArray) ClearInstanceBuffer() {
	if va.instance == nil {
		return
	}
	gl.BindVertexArray(va.id)
	first, n := va.slots.clearInstance()
	for i := uint32(0); i < n; i++ {
		gl.DisableVertexAttribArray(first + i)
	}
	va.instance.Delete()
	va.instance = nil
}

// SetIndexBuffer takes ownership of ib, deleting the previous one.
func (va *VertexArray) SetIndexBuffer(ib *IndexBuffer) {
	if va.index != nil {
		va.index.Delete()
	}
	va.index = ib
	gl.BindVertexArray(va.id)
	ib.Bind()
}

func (va *VertexArray) VertexBuffers() []*VertexBuffer {
	return va.vertices
}

func (va *VertexArray) InstanceBuffer() *VertexBufferInst {
	return va.instance
}

func (va *VertexArray) IndexBuffer() *IndexBuffer {
	return va.index
}

// Delete releases the array and everything attached to it.
func (va *VertexArray) Delete() {
	if va.id == 0 {
		return
	}
	for _, vb := range va.vertices {
		vb.Delete()
	}
	if va.instance != nil {
		va.instance.Delete()
	}
	if va.index != nil {
		va.index.Delete()
	}
	gl.DeleteVertexArrays(1, &va.id)
	*va = VertexArray{}
}

func (va *VertexArray) Move() *VertexArray {
	moved := *va
	*va = VertexArray{}
	return &moved
}

// attribRanges tracks which attribute indices a vertex array has handed out.
// Vertex slots are [0, vertexEnd) and instance slots directly follow them.
type attribRanges struct {
	vertexEnd     uint32
	instanceSlots uint32
}

// addVertex reserves the slots of layout and returns the first one.
func (r *attribRanges) addVertex(layout rgl.VertexBufferLayout) uint32 {
	first := r.vertexEnd
	r.vertexEnd += slotCount(layout)
	return first
}

// setInstance places the instance slots after the vertex slots and returns
// the first one.
func (r *attribRanges) setInstance(layout rgl.VertexBufferLayout) uint32 {
	r.instanceSlots = slotCount(layout)
	return r.vertexEnd
}

// clearInstance releases the instance range and returns what it covered.
func (r *attribRanges) clearInstance() (first, n uint32) {
	first, n = r.vertexEnd, r.instanceSlots
	r.instanceSlots = 0
	return first, n
}

func slotCount(layout rgl.VertexBufferLayout) uint32 {
	var n uint32
	for _, attr := range layout.Attributes() {
		n += uint32(len(attribSlots(attr)))
	}
	return n
}

// enableAttributes configures the slots of layout starting at first and
// returns the next free index. The owning buffer must be bound.
func enableAttributes(layout rgl.VertexBufferLayout, first, divisor uint32) uint32 {
	index := first
	stride := int32(layout.Stride())
	for _, attr := range layout.Attributes() {
		for _, slot := range attribSlots(attr) {
			gl.EnableVertexAttribArray(index)
			gl.VertexAttribPointerWithOffset(index, slot.components, glComponentType(attr.Type), false, stride, slot.offset)
			gl.VertexAttribDivisor(index, divisor)
			index++
		}
	}
	return index
}
