package gpu

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Clear clears the bound framebuffer's color and depth.
func Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawIndexed draws the triangles of va's index buffer.
func DrawIndexed(va *VertexArray) {
	if va.index == nil {
		return
	}
	va.Bind()
	gl.DrawElements(gl.TRIANGLES, va.index.Count(), gl.UNSIGNED_INT, nil)
}

// DrawIndexedInstanced draws va's index buffer once per live record of its
// instance buffer. Nothing is drawn without records.
func DrawIndexedInstanced(va *VertexArray) {
	if va.index == nil || va.instance == nil || va.instance.InstanceCount() == 0 {
		return
	}
	va.Bind()
	gl.DrawElementsInstanced(gl.TRIANGLES, va.index.Count(), gl.UNSIGNED_INT, nil, int32(va.instance.InstanceCount()))
}
