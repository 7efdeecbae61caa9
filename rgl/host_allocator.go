package rgl

import "fmt"

// HostAllocator keeps buffers in host memory. It backs headless runs and
// tests, and it panics on misuse the way a GL debug context would report it.
type HostAllocator struct {
	next    Handle
	buffers map[Handle][]byte
	// Limit caps the total bytes that may be live at once; zero means no cap.
	Limit int
	live  int
}

func NewHostAllocator() *HostAllocator {
	return &HostAllocator{buffers: make(map[Handle][]byte)}
}

func (a *HostAllocator) Allocate(size int) (Handle, error) {
	if size < 0 {
		return 0, fmt.Errorf("rgl: negative allocation size %d", size)
	}
	if a.Limit > 0 && a.live+size > a.Limit {
		return 0, fmt.Errorf("allocate %d bytes: %w", size, ErrOutOfMemory)
	}
	a.next++
	a.buffers[a.next] = make([]byte, size)
	a.live += size
	return a.next, nil
}

func (a *HostAllocator) Free(h Handle) {
	if h == 0 {
		return
	}
	buf := a.mustGet(h)
	a.live -= len(buf)
	delete(a.buffers, h)
}

func (a *HostAllocator) CopyRange(src, dst Handle, srcOffset, dstOffset, n int) {
	from := a.mustGet(src)
	to := a.mustGet(dst)
	copy(to[dstOffset:dstOffset+n], from[srcOffset:srcOffset+n])
}

func (a *HostAllocator) Write(h Handle, offset int, data []byte) {
	buf := a.mustGet(h)
	copy(buf[offset:offset+len(data)], data)
}

func (a *HostAllocator) Read(h Handle, offset, n int) []byte {
	buf := a.mustGet(h)
	out := make([]byte, n)
	copy(out, buf[offset:offset+n])
	return out
}

// Size returns the allocated size of h.
func (a *HostAllocator) Size(h Handle) int {
	return len(a.mustGet(h))
}

// Live is the number of buffers currently allocated.
func (a *HostAllocator) Live() int {
	return len(a.buffers)
}

func (a *HostAllocator) mustGet(h Handle) []byte {
	buf, ok := a.buffers[h]
	if !ok {
		panic(fmt.Sprintf("rgl: buffer %d is not allocated", h))
	}
	return buf
}
