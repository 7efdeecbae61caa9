package rgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostAllocator_ReadWriteCopy(t *testing.T) {
	alloc := NewHostAllocator()
	a, err := alloc.Allocate(8)
	require.NoError(t, err)
	b, err := alloc.Allocate(8)
	require.NoError(t, err)
	assert.NotEqual(t, Handle(0), a)
	assert.NotEqual(t, a, b)

	alloc.Write(a, 2, []byte{1, 2, 3})
	assert.Equal(t, []byte{0, 0, 1, 2, 3, 0, 0, 0}, alloc.Read(a, 0, 8))

	alloc.CopyRange(a, b, 2, 5, 3)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 1, 2, 3}, alloc.Read(b, 0, 8))

	alloc.Free(a)
	alloc.Free(0)
	assert.Equal(t, 1, alloc.Live())
	assert.Panics(t, func() { alloc.Read(a, 0, 1) })
}

func TestHostAllocator_Limit(t *testing.T) {
	alloc := NewHostAllocator()
	alloc.Limit = 16

	h, err := alloc.Allocate(16)
	require.NoError(t, err)

	_, err = alloc.Allocate(1)
	assert.ErrorIs(t, err, ErrOutOfMemory)

	alloc.Free(h)
	_, err = alloc.Allocate(16)
	assert.NoError(t, err)

	_, err = alloc.Allocate(-1)
	assert.Error(t, err)
}

func TestOwnedBuffer_MoveAndRelease(t *testing.T) {
	alloc := NewHostAllocator()
	buf, err := NewOwnedBuffer(alloc, 32)
	require.NoError(t, err)
	require.True(t, buf.Valid())

	moved := buf.Move()
	assert.False(t, buf.Valid())
	assert.Equal(t, 0, buf.Size())
	assert.True(t, moved.Valid())
	assert.Equal(t, 32, moved.Size())

	buf.Release()
	assert.Equal(t, 1, alloc.Live())

	moved.Release()
	moved.Release()
	assert.Equal(t, 0, alloc.Live())
}

func TestOwnedBuffer_AllocationError(t *testing.T) {
	alloc := NewHostAllocator()
	alloc.Limit = 4

	buf, err := NewOwnedBuffer(alloc, 8)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.False(t, buf.Valid())
}
