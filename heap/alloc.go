package heap

import (
	"fmt"
	"math"

	"github.com/joshuapare/elheap/internal/format"
)

// maxAlloc keeps Align8 and the split arithmetic from overflowing.
const maxAlloc = math.MaxInt - format.PageSize - format.Overhead

// Alloc returns the address of a payload of at least n bytes. Sizes are
// rounded up to 8 bytes.
//
// The first available block that fits is used. When it is larger than the
// request plus one block of overhead it is split and the remainder returns
// to the front of the available list; otherwise the caller gets the whole
// block. On ErrOutOfMemory the heap is unchanged (unless AutoGrow grew it).
func (h *Heap) Alloc(n int) (Addr, error) {
	if h.closed {
		return Nil, ErrClosed
	}
	if n <= 0 || n > maxAlloc {
		return Nil, fmt.Errorf("%w: alloc %d bytes", ErrInvalidSize, n)
	}
	h.stats.AllocCalls++

	need := format.Align8(n)
	b, ok := h.avail.FirstFit(need)
	if !ok && h.cfg.AutoGrow {
		pages := format.PagesFor(need + format.Overhead)
		if err := h.GrowByPages(pages); err != nil {
			h.log.Debug("alloc growth failed", "need", need, "pages", pages, "err", err)
		} else {
			b, ok = h.avail.FirstFit(need)
		}
	}
	if !ok {
		h.stats.AllocFailures++
		h.log.Debug("alloc miss", "need", need, "available_bytes", h.avail.bytes)
		return Nil, fmt.Errorf("%w: no available block holds %d bytes", ErrOutOfMemory, need)
	}

	h.avail.Remove(b)
	if b.Size() > need+format.Overhead {
		if rest, split := h.split(b, need); split {
			h.avail.PushFront(rest)
		}
	}
	b.setState(Used)
	h.used.PushFront(b)

	h.stats.BytesAllocated += int64(b.Size())
	return b.Addr(), nil
}

// split shrinks b to newSize and carves an available block from what is
// left. Both blocks end with matching header and footer sizes. Neither is
// linked; the caller places the remainder. It reports false, touching
// nothing, when b cannot hold newSize plus another block's overhead.
func (h *Heap) split(b Block, newSize int) (Block, bool) {
	size := b.Size()
	if size < newSize+format.Overhead {
		return Block{}, false
	}

	rest := h.block(b.off + newSize + format.Overhead)
	rest.reset(size-newSize-format.Overhead, Available)

	b.setSize(newSize)
	b.writeFooter()

	h.stats.Splits++
	return rest, true
}

// Payload returns the payload of the used block at a.
func (h *Heap) Payload(a Addr) ([]byte, error) {
	b, err := h.usedBlock(a)
	if err != nil {
		return nil, err
	}
	return b.Payload(), nil
}

// SizeOf returns the usable size of the used block at a. It may exceed the
// size requested from Alloc.
func (h *Heap) SizeOf(a Addr) (int, error) {
	b, err := h.usedBlock(a)
	if err != nil {
		return 0, err
	}
	return b.Size(), nil
}

func (h *Heap) usedBlock(a Addr) (Block, error) {
	if h.closed {
		return Block{}, ErrClosed
	}
	b, err := h.blockOf(a)
	if err != nil {
		return Block{}, err
	}
	if b.State() != Used {
		return Block{}, fmt.Errorf("%w: %#x is %s", ErrBadAddr, int(a), b.State())
	}
	return b, nil
}

// blockOf maps a payload address back to its header, which immediately
// precedes it. The header must fit in the arena, carry a real state, and
// describe a footer that also fits.
func (h *Heap) blockOf(a Addr) (Block, error) {
	off := int(a) - format.HeaderSize
	if off < 0 || !format.IsAligned(off) || !h.inArena(off) {
		return Block{}, fmt.Errorf("%w: %#x outside heap of %d bytes", ErrBadAddr, int(a), len(h.data))
	}
	b := h.block(off)
	if !format.ValidState(byte(b.State())) {
		return Block{}, fmt.Errorf("%w: %#x has no block header", ErrBadAddr, int(a))
	}
	if _, ok := h.footerAt(b); !ok {
		return Block{}, fmt.Errorf("%w: %#x block size runs past heap end", ErrBadAddr, int(a))
	}
	return b, nil
}
