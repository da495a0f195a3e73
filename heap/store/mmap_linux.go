//go:build linux

package store

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	mmapProt  = unix.PROT_READ | unix.PROT_WRITE
	mmapFlags = unix.MAP_PRIVATE | unix.MAP_ANONYMOUS
)

// Mmap is a heap region made of anonymous mappings laid end to end.
//
// The first mapping is placed at the address given to OpenMmap (or wherever
// the kernel likes when that is 0). Every Extend maps the next pages exactly
// at the current end, so the region stays one contiguous range.
type Mmap struct {
	base   unsafe.Pointer
	length int
	data   []byte
}

// OpenMmap maps size bytes at addr. Size is rounded up to the OS page size.
// A non-zero addr must be page aligned; when the kernel cannot place the
// mapping there OpenMmap fails with ErrPlacement.
func OpenMmap(addr uintptr, size int) (*Mmap, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: map %d bytes", ErrBadSize, size)
	}
	size = roundToOSPage(size)

	var want unsafe.Pointer
	flags := mmapFlags
	if addr != 0 {
		want = unsafe.Pointer(addr)
		flags |= unix.MAP_FIXED_NOREPLACE
	}

	p, err := mapAt(want, size, flags)
	if err != nil {
		return nil, err
	}

	m := &Mmap{base: p, length: size}
	m.data = unsafe.Slice((*byte)(p), size)
	return m, nil
}

// Bytes returns the current region.
func (m *Mmap) Bytes() []byte {
	return m.data
}

// Base returns the address of the first mapped byte.
func (m *Mmap) Base() uintptr {
	return uintptr(m.base)
}

// Extend maps n more bytes at the current end of the region. n must be a
// multiple of the OS page size.
func (m *Mmap) Extend(n int) ([]byte, error) {
	if m.base == nil {
		return nil, ErrClosed
	}
	if n <= 0 || n%unix.Getpagesize() != 0 {
		return nil, fmt.Errorf("%w: extend by %d (page size %d)", ErrBadSize, n, unix.Getpagesize())
	}

	end := unsafe.Add(m.base, m.length)
	if _, err := mapAt(end, n, mmapFlags|unix.MAP_FIXED_NOREPLACE); err != nil {
		return nil, err
	}

	m.length += n
	m.data = unsafe.Slice((*byte)(m.base), m.length)
	return m.data, nil
}

// Close unmaps the whole region, including every extension.
func (m *Mmap) Close() error {
	if m.base == nil {
		return ErrClosed
	}
	err := unix.MunmapPtr(m.base, uintptr(m.length))
	m.base = nil
	m.length = 0
	m.data = nil
	if err != nil {
		return fmt.Errorf("store: munmap: %w", err)
	}
	return nil
}

// mapAt maps length bytes. When want is non-nil the mapping must land exactly
// there; older kernels treat MAP_FIXED_NOREPLACE as a hint, so the returned
// address is checked as well.
func mapAt(want unsafe.Pointer, length int, flags int) (unsafe.Pointer, error) {
	p, err := unix.MmapPtr(-1, 0, want, uintptr(length), mmapProt, flags)
	if err != nil {
		if errors.Is(err, unix.EEXIST) {
			return nil, fmt.Errorf("%w: %p+%d already mapped", ErrPlacement, want, length)
		}
		return nil, fmt.Errorf("store: mmap %d bytes: %w", length, err)
	}
	if want != nil && p != want {
		_ = unix.MunmapPtr(p, uintptr(length))
		return nil, fmt.Errorf("%w: wanted %p, kernel chose %p", ErrPlacement, want, p)
	}
	return p, nil
}

func roundToOSPage(n int) int {
	ps := unix.Getpagesize()
	return (n + ps - 1) / ps * ps
}
