package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jyu3d/jyu/rgl"
)

func TestSlotCount(t *testing.T) {
	assert.Equal(t, uint32(0), slotCount(rgl.NewVertexBufferLayout()))
	assert.Equal(t, uint32(2), slotCount(rgl.NewVertexBufferLayout(
		rgl.Attr(rgl.Vec3, "a_Position"),
		rgl.Attr(rgl.Vec2, "a_UV"),
	)))
	assert.Equal(t, uint32(7), slotCount(rgl.NewVertexBufferLayout(
		rgl.Attr(rgl.Mat4, "i_Model"),
		rgl.Attr(rgl.Mat3, "i_Normal"),
	)))
}

func TestAttribRanges_InstanceFollowsVertexSlots(t *testing.T) {
	mesh := rgl.NewVertexBufferLayout(rgl.Attr(rgl.Vec3, "a_Position"), rgl.Attr(rgl.Vec2, "a_UV"))
	tangents := rgl.NewVertexBufferLayout(rgl.Attr(rgl.Vec3, "a_Tangent"))
	instances := rgl.NewVertexBufferLayout(rgl.Attr(rgl.Mat4, "i_Model"), rgl.Attr(rgl.Vec4, "i_Color"))

	var r attribRanges
	assert.Equal(t, uint32(0), r.addVertex(mesh))
	assert.Equal(t, uint32(2), r.setInstance(instances))

	// a later vertex buffer takes index 2 and the instance range moves to 3..7
	assert.Equal(t, uint32(2), r.addVertex(tangents))
	assert.Equal(t, uint32(3), r.setInstance(instances))

	first, n := r.clearInstance()
	assert.Equal(t, uint32(3), first)
	assert.Equal(t, uint32(5), n)

	first, n = r.clearInstance()
	assert.Equal(t, uint32(3), first)
	assert.Zero(t, n)
	assert.Equal(t, uint32(3), r.addVertex(tangents))
}
