package rgl

import (
	"fmt"
	"slices"
)

// VertexAttribute describes one field of a vertex or instance record.
// Name is informational except for lookups; Offset is filled in by the layout.
type VertexAttribute struct {
	Type         ShaderDataType
	Name         string
	Offset       int
	ElementCount int
}

// Attr is a single-element attribute.
func Attr(t ShaderDataType, name string) VertexAttribute {
	return VertexAttribute{Type: t, Name: name, ElementCount: 1}
}

// ArrayAttr is an attribute holding count consecutive values of t.
func ArrayAttr(t ShaderDataType, name string, count int) VertexAttribute {
	return VertexAttribute{Type: t, Name: name, ElementCount: count}
}

// Size is the number of bytes the attribute occupies in a record.
func (a VertexAttribute) Size() int {
	return a.Type.Size() * a.ElementCount
}

// VertexBufferLayout is the packed byte layout of one record. Offsets and
// stride are fixed at construction; the zero value is an empty layout.
type VertexBufferLayout struct {
	stride     int
	attributes []VertexAttribute
}

func NewVertexBufferLayout(attributes ...VertexAttribute) VertexBufferLayout {
	l := VertexBufferLayout{attributes: make([]VertexAttribute, len(attributes))}
	for i, attr := range attributes {
		if attr.ElementCount <= 0 {
			attr.ElementCount = 1
		}
		attr.Offset = l.stride
		l.stride += attr.Size()
		l.attributes[i] = attr
	}
	return l
}

// Stride is the size of one record in bytes.
func (l VertexBufferLayout) Stride() int {
	return l.stride
}

// StrideElements is the stride counted in float32 elements.
func (l VertexBufferLayout) StrideElements() int {
	return l.stride / sizeOfFloat
}

func (l VertexBufferLayout) Len() int {
	return len(l.attributes)
}

// Attributes returns a copy of the attributes in memory order.
func (l VertexBufferLayout) Attributes() []VertexAttribute {
	return slices.Clone(l.attributes)
}

func (l VertexBufferLayout) Attribute(index int) (VertexAttribute, error) {
	if index < 0 || index >= len(l.attributes) {
		return VertexAttribute{}, fmt.Errorf("%w: index %d", ErrAttributeNotFound, index)
	}
	return l.attributes[index], nil
}

func (l VertexBufferLayout) AttributeByName(name string) (VertexAttribute, error) {
	for _, attr := range l.attributes {
		if attr.Name == name {
			return attr, nil
		}
	}
	return VertexAttribute{}, fmt.Errorf("%w: %q", ErrAttributeNotFound, name)
}
