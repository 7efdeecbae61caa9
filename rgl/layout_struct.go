package rgl

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var ErrInvalidLayout = errors.New("invalid layout")

// LayoutFromStruct builds a layout from the fields of a struct. Every field
// needs an rgl tag naming its type, optionally with an element count:
//
//	type Instance struct {
//		Offset mgl32.Vec2 `rgl:"vec2"`
//		Color  [4]float32 `rgl:"vec4"`
//		Bones  [8]float32 `rgl:"f32[8]"`
//	}
//
// The tagged size of every field must match its Go size so the struct can be
// uploaded as-is.
func LayoutFromStruct(v any) (VertexBufferLayout, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return VertexBufferLayout{}, fmt.Errorf("%w: %v is not a struct", ErrInvalidLayout, t)
	}

	attrs := make([]VertexAttribute, 0, t.NumField())
	var offset uintptr
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag, ok := field.Tag.Lookup("rgl")
		if !ok {
			return VertexBufferLayout{}, fmt.Errorf("%w: field %s has no rgl tag", ErrInvalidLayout, field.Name)
		}
		attr, err := parseAttrTag(tag)
		if err != nil {
			return VertexBufferLayout{}, fmt.Errorf("field %s: %w", field.Name, err)
		}
		attr.Name = field.Name

		if field.Offset != offset {
			return VertexBufferLayout{}, fmt.Errorf("%w: field %s is padded", ErrInvalidLayout, field.Name)
		}
		if uintptr(attr.Size()) != field.Type.Size() {
			return VertexBufferLayout{}, fmt.Errorf("%w: field %s is %d bytes, tag %q needs %d",
				ErrInvalidLayout, field.Name, field.Type.Size(), tag, attr.Size())
		}
		offset += field.Type.Size()
		attrs = append(attrs, attr)
	}

	return NewVertexBufferLayout(attrs...), nil
}

func parseAttrTag(tag string) (VertexAttribute, error) {
	name, count := tag, 1
	if open := strings.IndexByte(tag, '['); open >= 0 {
		if !strings.HasSuffix(tag, "]") {
			return VertexAttribute{}, fmt.Errorf("%w: malformed tag %q", ErrInvalidLayout, tag)
		}
		n, err := strconv.Atoi(tag[open+1 : len(tag)-1])
		if err != nil || n <= 0 {
			return VertexAttribute{}, fmt.Errorf("%w: malformed count in %q", ErrInvalidLayout, tag)
		}
		name, count = tag[:open], n
	}

	t, err := ParseShaderDataType(name)
	if err != nil {
		return VertexAttribute{}, err
	}
	return ArrayAttr(t, "", count), nil
}
