// Package rgl holds the GL-independent half of the resource layer: attribute
// types, vertex layouts, the native buffer contract and the growable instance
// buffer built on top of it.
package rgl

import "fmt"

// ShaderDataType is the type of a single vertex attribute or uniform.
type ShaderDataType uint8

const (
	F32 ShaderDataType = iota
	Vec2
	Vec3
	Vec4
	Mat3
	Mat4
)

const sizeOfFloat = 4

// Size returns the size of t in bytes. Mat3 is stored as three vec4 columns.
func (t ShaderDataType) Size() int {
	switch t {
	case F32:
		return sizeOfFloat
	case Vec2:
		return sizeOfFloat * 2
	case Vec3:
		return sizeOfFloat * 3
	case Vec4:
		return sizeOfFloat * 4
	case Mat3:
		return Vec4.Size() * 3
	case Mat4:
		return Vec4.Size() * 4
	}
	panic(fmt.Sprintf("rgl: invalid shader data type %d", t))
}

// ComponentCount returns the number of float components in t.
func (t ShaderDataType) ComponentCount() int {
	switch t {
	case F32:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4:
		return 4
	case Mat3:
		return 12
	case Mat4:
		return 16
	}
	panic(fmt.Sprintf("rgl: invalid shader data type %d", t))
}

func (t ShaderDataType) String() string {
	switch t {
	case F32:
		return "f32"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case Mat3:
		return "mat3"
	case Mat4:
		return "mat4"
	}
	return fmt.Sprintf("ShaderDataType(%d)", t)
}

// ParseShaderDataType maps a GLSL-style type name to its ShaderDataType.
func ParseShaderDataType(name string) (ShaderDataType, error) {
	switch name {
	case "f32", "float":
		return F32, nil
	case "vec2":
		return Vec2, nil
	case "vec3":
		return Vec3, nil
	case "vec4":
		return Vec4, nil
	case "mat3":
		return Mat3, nil
	case "mat4":
		return Mat4, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDataType, name)
}
