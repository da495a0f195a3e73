package heap

import (
	"fmt"

	"github.com/joshuapare/elheap/internal/format"
)

// Addr is the arena offset of a block payload. Nil is never a payload
// because every payload follows a header.
type Addr int

// Nil is the address returned when nothing was allocated.
const Nil Addr = 0

// State tags a block header.
type State byte

const (
	Available State = State(format.StateAvailable)
	Used      State = State(format.StateUsed)
	Begin     State = State(format.StateBegin) // list head sentinel
	End       State = State(format.StateEnd)   // list tail sentinel
)

func (s State) String() string {
	switch s {
	case Available:
		return "available"
	case Used:
		return "used"
	case Begin:
		return "begin"
	case End:
		return "end"
	}
	return fmt.Sprintf("state(%#x)", byte(s))
}

// MarshalText renders the state as its single-letter tag.
func (s State) MarshalText() ([]byte, error) {
	return []byte{byte(s)}, nil
}

// ref is a list link as stored in a header. The two sentinels of the owning
// list take the reserved values refBegin and refEnd; a real block is stored
// as its offset shifted past them.
type ref uint64

const (
	refBegin ref = 0
	refEnd   ref = 1
	refBase  ref = 2
	refNone  ref = ^ref(0) // unlinked
)

func blockRef(off int) ref { return ref(off) + refBase }

func (r ref) offset() int { return int(r - refBase) }

func (r ref) isBlock() bool { return r >= refBase && r != refNone }

// Link values reported for list neighbors that are not blocks.
const (
	LinkBegin = -1 // head sentinel
	LinkEnd   = -2 // tail sentinel
	LinkNone  = -3 // unlinked
)

// link converts r to a header offset or one of the Link values.
func (r ref) link() int {
	switch {
	case r == refBegin:
		return LinkBegin
	case r == refEnd:
		return LinkEnd
	case r.isBlock():
		return r.offset()
	}
	return LinkNone
}

// Block is a view of one block in the arena. It holds no copy of the header;
// every accessor decodes the arena directly, so a Block stays valid across
// growth and across changes made through other views.
type Block struct {
	h   *Heap
	off int
}

// IsZero reports whether b refers to no block.
func (b Block) IsZero() bool { return b.h == nil }

// Offset returns the arena offset of the header.
func (b Block) Offset() int { return b.off }

// Addr returns the payload address.
func (b Block) Addr() Addr { return Addr(b.off + format.HeaderSize) }

// Size returns the payload size recorded in the header.
func (b Block) Size() int { return int(format.BlockSize(b.h.data, b.off)) }

// State returns the state recorded in the header.
func (b Block) State() State { return State(format.BlockState(b.h.data, b.off)) }

// FooterSize returns the payload size recorded in the footer. It equals Size
// for every consistent block, and is -1 when the header size points the
// footer outside the arena.
func (b Block) FooterSize() int {
	foot, ok := b.h.footerAt(b)
	if !ok {
		return -1
	}
	return int(format.ReadU64(b.h.data, foot))
}

// Payload returns the bytes between header and footer.
func (b Block) Payload() []byte {
	start := b.off + format.HeaderSize
	return b.h.data[start : start+b.Size()]
}

// Info returns a snapshot of the block.
func (b Block) Info() BlockInfo {
	return BlockInfo{
		Offset:     b.off,
		Addr:       b.Addr(),
		State:      b.State(),
		Size:       b.Size(),
		FooterSize: b.FooterSize(),
		Prev:       b.prev().link(),
		Next:       b.next().link(),
	}
}

func (b Block) ref() ref { return blockRef(b.off) }

func (b Block) setSize(n int) { format.PutBlockSize(b.h.data, b.off, uint64(n)) }

func (b Block) setState(s State) { format.PutBlockState(b.h.data, b.off, byte(s)) }

func (b Block) prev() ref { return ref(format.ReadU64(b.h.data, b.off+format.PrevOffset)) }

func (b Block) next() ref { return ref(format.ReadU64(b.h.data, b.off+format.NextOffset)) }

func (b Block) setPrev(r ref) { format.PutU64(b.h.data, b.off+format.PrevOffset, uint64(r)) }

func (b Block) setNext(r ref) { format.PutU64(b.h.data, b.off+format.NextOffset, uint64(r)) }

// writeFooter copies the header size into the footer.
func (b Block) writeFooter() {
	format.PutU64(b.h.data, b.h.FooterOf(b), format.BlockSize(b.h.data, b.off))
}

// reset writes a fresh unlinked block of the given size and state.
func (b Block) reset(size int, s State) {
	b.setSize(size)
	b.setState(s)
	b.setPrev(refNone)
	b.setNext(refNone)
	b.writeFooter()
}

// BlockInfo is a point-in-time copy of a block's header fields.
type BlockInfo struct {
	Offset     int   `json:"offset"`
	Addr       Addr  `json:"addr"`
	State      State `json:"state"`
	Size       int   `json:"size"`
	FooterSize int   `json:"footer_size"`
	Prev       int   `json:"prev"` // header offset or a Link value
	Next       int   `json:"next"`
}
