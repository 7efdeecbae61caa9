package rgl

import (
	"errors"
	"fmt"
)

var (
	ErrAttributeNotFound = errors.New("vertex attribute not found")
	ErrUnknownDataType   = errors.New("unknown shader data type")
	ErrUnknownShaderType = errors.New("unknown shader type")
	ErrOutOfMemory       = errors.New("out of memory")
)

// PreconditionError is the panic value raised by the debug assertion layer
// when a caller breaks the contract of an operation.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("rgl: %s: precondition violated: %s", e.Op, e.Reason)
}
