package gpu

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/jyu3d/jyu/rgl"
)

// VertexBufferInst is an rgl.InstanceBuffer stored in a GL buffer, ready to
// be attached to a VertexArray as its per-instance stream.
type VertexBufferInst struct {
	*rgl.InstanceBuffer
}

// NewVertexBufferInst creates the store on a DynamicDraw allocator.
func NewVertexBufferInst(initial []byte, layout rgl.VertexBufferLayout) (*VertexBufferInst, error) {
	b, err := rgl.NewInstanceBuffer(NewAllocator(DynamicDraw), initial, layout)
	if err != nil {
		return nil, err
	}
	return &VertexBufferInst{InstanceBuffer: b}, nil
}

func (b *VertexBufferInst) ID() uint32 {
	return uint32(b.Handle())
}

// Bind binds the current store. Growth replaces the store, so vertex arrays
// must re-attach the buffer after adds that change Capacity.
func (b *VertexBufferInst) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID())
}

func (b *VertexBufferInst) Unbind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *VertexBufferInst) Move() *VertexBufferInst {
	return &VertexBufferInst{InstanceBuffer: b.InstanceBuffer.Move()}
}
