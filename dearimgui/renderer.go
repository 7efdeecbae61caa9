package dearimgui

import (
	_ "embed"
	"fmt"
	"unsafe"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/jyu3d/jyu/rgl"
	"github.com/jyu3d/jyu/rgl/gpu"
)

//go:embed shaders/imgui.glsl
var imguiShader string

// renderer draws ImGui draw data with GL. Every command samples the font
// atlas; user textures are not supported.
type renderer struct {
	program *gpu.ShaderProgram
	font    *gpu.Texture2D

	vao, vbo, ebo uint32
}

func newRenderer(io *imgui.IO) (*renderer, error) {
	stages, err := rgl.ParseShaderSources(imguiShader)
	if err != nil {
		return nil, err
	}
	program, err := gpu.NewShaderProgramFromSources("imgui", stages...)
	if err != nil {
		return nil, err
	}

	pixels, width, height, _ := io.Fonts().GetTextureDataAsRGBA32()
	res := gpu.Resolution{Width: int32(width), Height: int32(height)}
	if res.Width <= 0 || res.Height <= 0 {
		program.Delete()
		return nil, fmt.Errorf("empty font atlas")
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(pixels)), int(res.Width)*int(res.Height)*4)

	r := &renderer{
		program: program,
		font:    gpu.NewTexture2D(data, res, gpu.ColorRGBA8, gpu.FilterLinear, gpu.MSAAx1, false),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	size, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	stride := int32(size)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, uintptr(posOffset))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, uintptr(uvOffset))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, uintptr(colOffset))
	gl.BindVertexArray(0)

	return r, nil
}

func (r *renderer) draw(data *imgui.DrawData, scale imgui.Vec2) {
	origin, size := data.DisplayPos(), data.DisplaySize()
	fb := gpu.Resolution{Width: int32(size.X * scale.X), Height: int32(size.Y * scale.Y)}
	if fb.Width <= 0 || fb.Height <= 0 {
		return
	}

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	defer func() {
		gl.Disable(gl.SCISSOR_TEST)
		gl.Disable(gl.BLEND)
		gl.Enable(gl.DEPTH_TEST)
		gl.BindVertexArray(0)
	}()
	gpu.SetViewport(fb)

	r.program.Bind()
	r.program.SetUniform1i("u_Texture", 0)
	r.program.SetUniformMat4f("u_Projection", mgl32.Ortho2D(origin.X, origin.X+size.X, origin.Y+size.Y, origin.Y))
	r.font.SetUnit(0)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	indexSize := imgui.IndexBufferLayout()
	indexType := glIndexType(indexSize)
	for _, list := range data.CommandLists() {
		vertices, vertexBytes := list.GetVertexBuffer()
		indices, indexBytes := list.GetIndexBuffer()
		gl.BufferData(gl.ARRAY_BUFFER, int(vertexBytes), vertices, gl.STREAM_DRAW)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, int(indexBytes), indices, gl.STREAM_DRAW)

		for _, cmd := range list.Commands() {
			box, ok := scissorBox(cmd.ClipRect(), origin, scale, fb.Height)
			if !ok {
				continue
			}
			gl.Scissor(box.x, box.y, box.w, box.h)
			gl.DrawElementsBaseVertex(gl.TRIANGLES, int32(cmd.ElemCount()), indexType,
				gl.PtrOffset(int(cmd.IdxOffset())*indexSize), int32(cmd.VtxOffset()))
		}
	}
}

func (r *renderer) delete() {
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	r.font.Delete()
	r.program.Delete()
}

func glIndexType(size int) uint32 {
	if size == 2 {
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_INT
}

type scissor struct {
	x, y, w, h int32
}

// scissorBox converts an ImGui clip rect, given in display coordinates with
// a top-left origin, to a GL scissor box in framebuffer pixels. ok is false
// when nothing of the rect is visible.
func scissorBox(clip imgui.Vec4, origin, scale imgui.Vec2, fbHeight int32) (scissor, bool) {
	minX := (clip.X - origin.X) * scale.X
	minY := (clip.Y - origin.Y) * scale.Y
	maxX := (clip.Z - origin.X) * scale.X
	maxY := (clip.W - origin.Y) * scale.Y
	if maxX <= minX || maxY <= minY {
		return scissor{}, false
	}
	return scissor{
		x: int32(minX),
		y: fbHeight - int32(maxY),
		w: int32(maxX - minX),
		h: int32(maxY - minY),
	}, true
}
