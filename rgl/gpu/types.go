// Package gpu wraps OpenGL 4.6 objects as move-only Go values. Every
// function here must run on the thread that owns the current GL context.
package gpu

import (
	"errors"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/jyu3d/jyu/rgl"
)

var (
	ErrShaderCompile         = errors.New("shader compile failed")
	ErrShaderLink            = errors.New("shader link failed")
	ErrShaderValidate        = errors.New("shader validation failed")
	ErrIncompleteFramebuffer = errors.New("framebuffer incomplete")
)

type Resolution struct {
	Width  int32
	Height int32
}

// TexSamples is the MSAA sample count of a texture or render buffer.
type TexSamples int32

const (
	MSAAx1  TexSamples = 1
	MSAAx2  TexSamples = 2
	MSAAx4  TexSamples = 4
	MSAAx8  TexSamples = 8
	MSAAx16 TexSamples = 16
)

type DrawHint uint32

const (
	StaticDraw  DrawHint = gl.STATIC_DRAW
	DynamicDraw DrawHint = gl.DYNAMIC_DRAW
	StreamDraw  DrawHint = gl.STREAM_DRAW
)

// Access is how a mapped buffer may be touched.
type Access uint32

const (
	ReadOnly  Access = gl.READ_ONLY
	WriteOnly Access = gl.WRITE_ONLY
	ReadWrite Access = gl.READ_WRITE
)

// glComponentType is the GL scalar type backing every shader data type.
// All of them are float based.
func glComponentType(t rgl.ShaderDataType) uint32 {
	switch t {
	case rgl.F32, rgl.Vec2, rgl.Vec3, rgl.Vec4, rgl.Mat3, rgl.Mat4:
		return gl.FLOAT
	}
	return 0
}

// attribSlot is one glVertexAttribPointer call.
type attribSlot struct {
	components int32
	offset     uintptr
}

// attribSlots expands an attribute into vertex attribute slots. Matrices take
// one slot per column and arrays one slot per element, since GL caps a slot at
// four components.
func attribSlots(attr rgl.VertexAttribute) []attribSlot {
	columns, components := 1, attr.Type.ComponentCount()
	switch attr.Type {
	case rgl.Mat3:
		columns, components = 3, 4
	case rgl.Mat4:
		columns, components = 4, 4
	}

	elemSize := attr.Type.Size()
	colSize := elemSize / columns
	slots := make([]attribSlot, 0, columns*attr.ElementCount)
	for e := 0; e < attr.ElementCount; e++ {
		for c := 0; c < columns; c++ {
			slots = append(slots, attribSlot{
				components: int32(components),
				offset:     uintptr(attr.Offset + e*elemSize + c*colSize),
			})
		}
	}
	return slots
}
