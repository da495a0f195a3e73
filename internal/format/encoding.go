package format

import "encoding/binary"

// Binary encoding utilities for block fields. All multi-byte fields are
// little-endian regardless of host order so a heap dump reads the same
// everywhere.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// BlockSize returns the size field of the header at off.
func BlockSize(b []byte, off int) uint64 {
	return ReadU64(b, off+SizeOffset)
}

// PutBlockSize writes the size field of the header at off.
func PutBlockSize(b []byte, off int, size uint64) {
	PutU64(b, off+SizeOffset, size)
}

// BlockState returns the state tag of the header at off.
func BlockState(b []byte, off int) byte {
	return b[off+StateOffset]
}

// PutBlockState writes the state tag of the header at off and clears the
// padding that follows it.
func PutBlockState(b []byte, off int, state byte) {
	b[off+StateOffset] = state
	clear(b[off+StateOffset+1 : off+PrevOffset])
}

// FooterOffset returns the offset of the footer for a header at off whose
// payload is size bytes.
func FooterOffset(off int, size uint64) int {
	return off + HeaderSize + int(size)
}

// ValidState reports whether s tags a real (non-sentinel) block.
func ValidState(s byte) bool {
	return s == StateAvailable || s == StateUsed
}

// Header is a decoded copy of a block header.
type Header struct {
	Size  uint64
	State byte
	Prev  uint64
	Next  uint64
}

// DecodeHeader decodes the header at off. It returns ErrTruncated when the
// header does not fit in b.
func DecodeHeader(b []byte, off int) (Header, error) {
	if off < 0 || off > len(b)-HeaderSize {
		return Header{}, ErrTruncated
	}
	return Header{
		Size:  ReadU64(b, off+SizeOffset),
		State: b[off+StateOffset],
		Prev:  ReadU64(b, off+PrevOffset),
		Next:  ReadU64(b, off+NextOffset),
	}, nil
}

// DecodeFooter returns the size stored in the footer at off. It returns
// ErrTruncated when the footer does not fit in b.
func DecodeFooter(b []byte, off int) (uint64, error) {
	if off < 0 || off > len(b)-FooterSize {
		return 0, ErrTruncated
	}
	return ReadU64(b, off), nil
}
