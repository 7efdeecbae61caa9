package rgl

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quadInstanceLayout = NewVertexBufferLayout(
	Attr(Vec2, "offset"),
	Attr(Vec3, "color"),
)

func record(t *testing.T, b *InstanceBuffer, fill byte) []byte {
	t.Helper()
	return bytes.Repeat([]byte{fill}, b.InstanceSize())
}

func newEmptyInstanceBuffer(t *testing.T) (*InstanceBuffer, *HostAllocator) {
	t.Helper()
	alloc := NewHostAllocator()
	b, err := NewInstanceBuffer(alloc, nil, quadInstanceLayout)
	require.NoError(t, err)
	return b, alloc
}

func TestInstanceBuffer_AddCountsAndFits(t *testing.T) {
	b, _ := newEmptyInstanceBuffer(t)

	for i := 0; i < 200; i++ {
		require.NoError(t, b.AddInstance(record(t, b, byte(i))))
		assert.Equal(t, i+1, b.InstanceCount())
		assert.GreaterOrEqual(t, b.Capacity(), b.InstanceCount()*b.InstanceSize())
	}

	for i := 0; i < 200; i++ {
		assert.Equal(t, record(t, b, byte(i)), b.Instance(i), "record %d", i)
	}
}

func TestInstanceBuffer_GrowthPolicy(t *testing.T) {
	b, _ := newEmptyInstanceBuffer(t)
	size := b.InstanceSize()
	require.Equal(t, 0, b.Capacity())

	require.NoError(t, b.AddInstance(record(t, b, 1)))
	assert.Equal(t, size, b.Capacity(), "first add holds exactly one record")

	require.NoError(t, b.AddInstance(record(t, b, 2)))
	assert.Equal(t, 32*size, b.Capacity(), "second add jumps to 32 records")

	for b.InstanceCount() < 32 {
		require.NoError(t, b.AddInstance(record(t, b, 3)))
	}
	assert.Equal(t, 32*size, b.Capacity(), "no growth while records fit")

	prev := b.Capacity()
	require.NoError(t, b.AddInstance(record(t, b, 4)))
	assert.Equal(t, int(float64(prev)*math.Phi), b.Capacity())

	prev = b.Capacity()
	for b.Capacity() == prev {
		require.NoError(t, b.AddInstance(record(t, b, 5)))
	}
	assert.Equal(t, int(float64(prev)*math.Phi), b.Capacity())
}

func TestInstanceBuffer_GrowthKeepsRecordsAndFreesOldBuffer(t *testing.T) {
	b, alloc := newEmptyInstanceBuffer(t)

	for i := 0; i < 40; i++ {
		require.NoError(t, b.AddInstance(record(t, b, byte(i+1))))
	}

	assert.Equal(t, 1, alloc.Live(), "only the current buffer stays allocated")
	assert.Equal(t, b.Capacity(), alloc.Size(b.Handle()))
	assert.Equal(t, record(t, b, 1), b.Instance(0))
	assert.Equal(t, record(t, b, 40), b.Instance(39))
}

func TestInstanceBuffer_UpdateRoundTrip(t *testing.T) {
	b, _ := newEmptyInstanceBuffer(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, b.AddInstance(record(t, b, 0)))
	}

	for i := 0; i < 5; i++ {
		want := record(t, b, byte(0xA0+i))
		b.UpdateInstance(i, want)
		assert.Equal(t, want, b.Instance(i))
	}
	assert.Equal(t, 5, b.InstanceCount(), "update never changes the count")
}

func TestInstanceBuffer_DeleteSwapsLastIntoSlot(t *testing.T) {
	b, _ := newEmptyInstanceBuffer(t)
	r0, r1, r2 := record(t, b, 0x10), record(t, b, 0x11), record(t, b, 0x12)
	for _, r := range [][]byte{r0, r1, r2} {
		require.NoError(t, b.AddInstance(r))
	}

	idx := b.DeleteInstance(0)

	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, b.InstanceCount())
	assert.Equal(t, r2, b.Instance(0))
	assert.Equal(t, r1, b.Instance(1))
	assert.Nil(t, b.Instance(2))
}

func TestInstanceBuffer_DeleteLast(t *testing.T) {
	b, _ := newEmptyInstanceBuffer(t)
	r0, r1 := record(t, b, 1), record(t, b, 2)
	require.NoError(t, b.AddInstance(r0))
	require.NoError(t, b.AddInstance(r1))

	assert.Equal(t, 1, b.DeleteInstance(1))
	assert.Equal(t, 1, b.InstanceCount())
	assert.Equal(t, r0, b.Instance(0))
}

func TestInstanceBuffer_DeleteOutOfRangeIsNoop(t *testing.T) {
	b, _ := newEmptyInstanceBuffer(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, b.AddInstance(record(t, b, byte(i))))
	}
	before := b.Bytes()
	capacity := b.Capacity()

	for _, idx := range []int{-1, 3, 100} {
		assert.Equal(t, 3, b.DeleteInstance(idx), "index %d", idx)
		assert.Equal(t, 3, b.InstanceCount())
		assert.Equal(t, before, b.Bytes())
		assert.Equal(t, capacity, b.Capacity())
	}
}

func TestInstanceBuffer_DeleteUntilEmpty(t *testing.T) {
	b, _ := newEmptyInstanceBuffer(t)
	for i := 0; i < 4; i++ {
		require.NoError(t, b.AddInstance(record(t, b, byte(i))))
	}

	for b.InstanceCount() > 0 {
		b.DeleteInstance(0)
	}
	assert.Equal(t, 0, b.DeleteInstance(0))
	assert.Nil(t, b.Bytes())
}

func TestInstanceBuffer_InitialData(t *testing.T) {
	alloc := NewHostAllocator()
	stride := quadInstanceLayout.Stride()
	initial := make([]byte, 3*stride)
	for i := range initial {
		initial[i] = byte(i / stride)
	}

	b, err := NewInstanceBuffer(alloc, initial, quadInstanceLayout)
	require.NoError(t, err)

	assert.Equal(t, 3, b.InstanceCount())
	assert.Equal(t, len(initial), b.Capacity())
	assert.Equal(t, initial, b.Bytes())

	require.NoError(t, b.AddInstance(record(t, b, 9)))
	assert.Equal(t, int(float64(3*stride)*math.Phi), b.Capacity())
	assert.Equal(t, initial, b.Bytes()[:len(initial)])
}

func TestInstanceBuffer_AccessorsAreStable(t *testing.T) {
	b, _ := newEmptyInstanceBuffer(t)
	require.NoError(t, b.AddInstance(record(t, b, 7)))

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, b.InstanceCount())
		assert.Equal(t, b.InstanceSize(), b.Capacity())
		assert.Equal(t, 20, b.InstanceSize())
	}
}

func TestInstanceBuffer_MoveLeavesSourceInert(t *testing.T) {
	b, alloc := newEmptyInstanceBuffer(t)
	r := record(t, b, 3)
	require.NoError(t, b.AddInstance(r))
	handle := b.Handle()

	moved := b.Move()

	assert.Equal(t, handle, moved.Handle())
	assert.Equal(t, 1, moved.InstanceCount())
	assert.Equal(t, r, moved.Instance(0))

	assert.Equal(t, Handle(0), b.Handle())
	assert.Equal(t, 0, b.InstanceCount())
	assert.Equal(t, 0, b.Capacity())

	b.Delete()
	assert.Equal(t, 1, alloc.Live(), "deleting the moved-from buffer frees nothing")

	require.NoError(t, b.AddInstance(r), "moved-from buffer can be reused")
	assert.Equal(t, 2, alloc.Live())

	moved.Delete()
	b.Delete()
	assert.Equal(t, 0, alloc.Live())
}

func TestInstanceBuffer_AllocationFailure(t *testing.T) {
	alloc := NewHostAllocator()
	stride := quadInstanceLayout.Stride()
	alloc.Limit = 2 * stride

	b, err := NewInstanceBuffer(alloc, nil, quadInstanceLayout)
	require.NoError(t, err)
	require.NoError(t, b.AddInstance(record(t, b, 1)))

	err = b.AddInstance(record(t, b, 2))
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 1, b.InstanceCount())
	assert.Equal(t, record(t, b, 1), b.Instance(0))
}

func TestInstanceBuffer_GrowthFallback(t *testing.T) {
	prev := DebugChecks()
	t.Cleanup(func() { SetDebugChecks(prev) })
	SetDebugChecks(false)

	// one stray byte leaves a capacity that Phi cannot grow
	b, err := NewInstanceBuffer(NewHostAllocator(), []byte{0xAA}, quadInstanceLayout)
	require.NoError(t, err)
	size := b.InstanceSize()
	require.Equal(t, 1, b.Capacity())
	require.Zero(t, b.InstanceCount())

	assert.Equal(t, 1+size, b.calcCapacity(1))
	assert.Equal(t, 3, b.calcCapacity(2), "Phi growth resumes from two bytes")

	require.NoError(t, b.AddInstance(record(t, b, 7)))
	assert.Equal(t, 1+size, b.Capacity())
	assert.Equal(t, 1, b.InstanceCount())
	assert.Equal(t, record(t, b, 7), b.Instance(0))
}

func TestInstanceBuffer_ZeroStrideRejected(t *testing.T) {
	_, err := NewInstanceBuffer(NewHostAllocator(), nil, VertexBufferLayout{})
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestInstanceBuffer_DebugChecks(t *testing.T) {
	prev := DebugChecks()
	t.Cleanup(func() { SetDebugChecks(prev) })

	b, _ := newEmptyInstanceBuffer(t)
	require.NoError(t, b.AddInstance(record(t, b, 1)))

	SetDebugChecks(true)
	assertPrecondition(t, func() { _ = b.AddInstance([]byte{1, 2, 3}) })
	assertPrecondition(t, func() { b.UpdateInstance(0, []byte{1}) })
	assertPrecondition(t, func() { b.UpdateInstance(5, record(t, b, 1)) })

	// the append path writes at index == count
	require.NoError(t, b.AddInstance(record(t, b, 2)))
	assert.Equal(t, 2, b.InstanceCount())

	SetDebugChecks(false)
	assert.NotPanics(t, func() { b.UpdateInstance(0, record(t, b, 9)) })
}

func assertPrecondition(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a precondition panic")
		_, ok := r.(*PreconditionError)
		assert.True(t, ok, "panic value %v is not a *PreconditionError", r)
	}()
	fn()
}
