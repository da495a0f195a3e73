package store

import (
	"fmt"
	"unsafe"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// Mem is a heap region carved from a single Go byte slice.
//
// The full reservation is made up front so Extend never reallocates. The
// memory is not zeroed; a heap writes every header and footer it reads.
type Mem struct {
	buf    []byte
	closed bool
}

// NewMem reserves limit bytes and exposes the first size of them.
func NewMem(size, limit int) (*Mem, error) {
	if size < 0 || limit < size {
		return nil, fmt.Errorf("%w: size=%d limit=%d", ErrBadSize, size, limit)
	}
	return &Mem{buf: dirtmake.Bytes(size, limit)}, nil
}

// Bytes returns the current region.
func (m *Mem) Bytes() []byte {
	return m.buf
}

// Base returns the address of the first byte of the reservation.
func (m *Mem) Base() uintptr {
	if cap(m.buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(m.buf)))
}

// Reserved returns the number of bytes Extend can still add.
func (m *Mem) Reserved() int {
	return cap(m.buf) - len(m.buf)
}

// Extend appends n bytes to the region and returns the grown region.
func (m *Mem) Extend(n int) ([]byte, error) {
	if m.closed {
		return nil, ErrClosed
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: extend by %d", ErrBadSize, n)
	}
	if n > m.Reserved() {
		return nil, fmt.Errorf("%w: need %d bytes, %d reserved", ErrNoRoom, n, m.Reserved())
	}
	m.buf = m.buf[:len(m.buf)+n]
	return m.buf, nil
}

// Close drops the region.
func (m *Mem) Close() error {
	if m.closed {
		return ErrClosed
	}
	m.buf = nil
	m.closed = true
	return nil
}
