//go:build !linux

package store

// Mmap is unavailable outside Linux; OpenMmap always fails.
type Mmap struct{}

// OpenMmap returns ErrUnsupported.
func OpenMmap(addr uintptr, size int) (*Mmap, error) {
	return nil, ErrUnsupported
}

// Bytes returns nil.
func (m *Mmap) Bytes() []byte { return nil }

// Base returns 0.
func (m *Mmap) Base() uintptr { return 0 }

// Extend returns ErrUnsupported.
func (m *Mmap) Extend(n int) ([]byte, error) { return nil, ErrUnsupported }

// Close returns ErrUnsupported.
func (m *Mmap) Close() error { return ErrUnsupported }
