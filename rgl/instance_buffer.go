package rgl

import (
	"fmt"
	"math"
)

// firstGrowthRecords is the capacity, in records, the buffer jumps to when it
// outgrows its first record.
const firstGrowthRecords = 32

// InstanceBuffer keeps fixed-size instance records packed at the front of a
// single native buffer and grows that buffer geometrically as records are
// added.
//
// Deletion moves the last record into the freed slot, so record indices are
// not stable across DeleteInstance calls; callers that keep side tables keyed
// by index must apply the remap DeleteInstance reports.
//
// Record sizes and update indices are trusted. They are verified only when
// debug checks are on (see SetDebugChecks).
type InstanceBuffer struct {
	_ noCopy

	alloc  Allocator
	layout VertexBufferLayout
	buf    OwnedBuffer
	count  int
}

// NewInstanceBuffer allocates a buffer holding initial, which may be empty.
// An empty buffer starts with zero capacity and grows on the first add.
func NewInstanceBuffer(alloc Allocator, initial []byte, layout VertexBufferLayout) (*InstanceBuffer, error) {
	stride := layout.Stride()
	if stride <= 0 {
		return nil, fmt.Errorf("%w: instance layout has zero stride", ErrInvalidLayout)
	}
	assertf(len(initial)%stride == 0, "NewInstanceBuffer",
		"initial data is %d bytes, not a multiple of the %d byte stride", len(initial), stride)

	buf, err := NewOwnedBuffer(alloc, len(initial))
	if err != nil {
		return nil, fmt.Errorf("rgl: instance buffer: %w", err)
	}
	if len(initial) > 0 {
		alloc.Write(buf.Handle(), 0, initial)
	}

	return &InstanceBuffer{
		alloc:  alloc,
		layout: layout,
		buf:    buf.Move(),
		count:  len(initial) / stride,
	}, nil
}

// AddInstance appends one record, growing the buffer first when it is full.
func (b *InstanceBuffer) AddInstance(record []byte) error {
	size := b.InstanceSize()
	assertf(len(record) == size, "AddInstance", "record is %d bytes, want %d", len(record), size)

	if need := (b.count + 1) * size; need > b.Capacity() {
		newCapacity := b.calcCapacity(b.Capacity())
		for newCapacity < need {
			newCapacity = b.calcCapacity(newCapacity)
		}
		if err := b.resize(newCapacity); err != nil {
			return err
		}
	}

	b.UpdateInstance(b.count, record)
	b.count++
	return nil
}

// UpdateInstance overwrites the record at index in place.
func (b *InstanceBuffer) UpdateInstance(index int, record []byte) {
	size := b.InstanceSize()
	assertf(len(record) == size, "UpdateInstance", "record is %d bytes, want %d", len(record), size)
	assertf(index >= 0 && index <= b.count, "UpdateInstance", "index %d outside [0, %d]", index, b.count)
	assertf((index+1)*size <= b.Capacity(), "UpdateInstance", "index %d past capacity %d", index, b.Capacity())

	b.alloc.Write(b.buf.Handle(), index*size, record)
}

// DeleteInstance removes the record at index by moving the last record into
// its slot. It returns index, which now holds what used to be the last
// record. An out of range index changes nothing and returns the current count.
func (b *InstanceBuffer) DeleteInstance(index int) int {
	if index < 0 || index >= b.count {
		return b.count
	}

	size := b.InstanceSize()
	last := b.alloc.Read(b.buf.Handle(), (b.count-1)*size, size)
	b.UpdateInstance(index, last)
	b.count--

	return index
}

// Instance returns a copy of the record at index, or nil when index is not live.
func (b *InstanceBuffer) Instance(index int) []byte {
	if index < 0 || index >= b.count {
		return nil
	}
	size := b.InstanceSize()
	return b.alloc.Read(b.buf.Handle(), index*size, size)
}

// Bytes returns a copy of all live records.
func (b *InstanceBuffer) Bytes() []byte {
	if b.count == 0 {
		return nil
	}
	return b.alloc.Read(b.buf.Handle(), 0, b.count*b.InstanceSize())
}

func (b *InstanceBuffer) InstanceCount() int {
	return b.count
}

// InstanceSize is the record size in bytes, the stride of the layout.
func (b *InstanceBuffer) InstanceSize() int {
	return b.layout.Stride()
}

// Capacity is the size of the native buffer in bytes.
func (b *InstanceBuffer) Capacity() int {
	return b.buf.Size()
}

func (b *InstanceBuffer) Handle() Handle {
	return b.buf.Handle()
}

func (b *InstanceBuffer) Layout() VertexBufferLayout {
	return b.layout
}

// Move hands the native buffer and its records to a new InstanceBuffer. b is
// left empty with zero capacity and stays usable.
func (b *InstanceBuffer) Move() *InstanceBuffer {
	moved := &InstanceBuffer{
		alloc:  b.alloc,
		layout: b.layout,
		buf:    b.buf.Move(),
		count:  b.count,
	}
	b.count = 0
	return moved
}

// Delete frees the native buffer.
func (b *InstanceBuffer) Delete() {
	b.buf.Release()
	b.count = 0
}

func (b *InstanceBuffer) calcCapacity(capacity int) int {
	size := b.InstanceSize()
	switch {
	case capacity == 0:
		return size
	case capacity == size:
		return size * firstGrowthRecords
	}

	next := int(float64(capacity) * math.Phi)
	// floor(c*Phi) only fails to grow c == 1, reachable when the initial data
	// was a stray byte and debug checks were off. Grow by a whole record.
	if next <= capacity {
		next = capacity + size
	}
	return next
}

func (b *InstanceBuffer) resize(newCapacity int) error {
	next, err := NewOwnedBuffer(b.alloc, newCapacity)
	if err != nil {
		return fmt.Errorf("rgl: grow instance buffer to %d bytes: %w", newCapacity, err)
	}
	if live := b.count * b.InstanceSize(); live > 0 {
		b.alloc.CopyRange(b.buf.Handle(), next.Handle(), 0, 0, live)
	}

	Log().Debug("instance buffer grown", "from", b.Capacity(), "to", newCapacity, "instances", b.count)

	b.buf.Release()
	b.buf = next.Move()
	return nil
}
