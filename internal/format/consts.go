// Package format describes the in-arena layout of heap blocks: a fixed-size
// header, the caller's payload, and a footer repeating the payload size.
// Everything here operates on plain byte slices so the heap package can
// navigate blocks by offset without holding Go pointers into the arena.
package format

const (
	// HeaderSize is the number of bytes preceding every payload.
	//
	// Layout (little-endian):
	//   0x00  size   uint64  payload byte count
	//   0x08  state  uint8   block state tag
	//   0x09  pad    [7]byte
	//   0x10  prev   uint64  list link
	//   0x18  next   uint64  list link
	HeaderSize = 0x20

	// FooterSize is the number of bytes following every payload.
	//
	// Layout:
	//   0x00  size   uint64  copy of the header size (boundary tag)
	FooterSize = 0x08

	// Overhead is the fixed cost of one block beyond its payload.
	Overhead = HeaderSize + FooterSize

	// PageSize is the unit of heap growth.
	PageSize = 0x1000

	// Alignment is the payload size granularity. Block offsets stay
	// Alignment-aligned because HeaderSize and FooterSize are multiples of it.
	Alignment = 8

	// AlignmentMask is used for rounding sizes up to Alignment.
	AlignmentMask = Alignment - 1

	// PageMask is used for rounding sizes up to PageSize.
	PageMask = PageSize - 1
)

// Header field offsets, relative to the start of a block.
const (
	SizeOffset  = 0x00
	StateOffset = 0x08
	PrevOffset  = 0x10
	NextOffset  = 0x18
)

// State tags stored at StateOffset.
const (
	StateAvailable byte = 'a'
	StateUsed      byte = 'u'
	StateBegin     byte = 'B'
	StateEnd       byte = 'E'
)
