package rgl

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Number is any element type that can be uploaded to a buffer directly.
type Number interface {
	constraints.Integer | constraints.Float
}

// Bytes views a numeric slice as raw bytes without copying. The result
// aliases s.
func Bytes[T Number](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// StructBytes views *v as raw bytes without copying. T must not contain
// pointers or padding for the bytes to be meaningful on the GPU.
func StructBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// Floats reinterprets b as float32 values. len(b) must be a multiple of 4.
func Floats(b []byte) []float32 {
	if len(b) < sizeOfFloat {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), len(b)/sizeOfFloat)
}
