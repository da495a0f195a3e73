package heap

import (
	"fmt"

	"github.com/joshuapare/elheap/internal/format"
)

// Free returns the block at a to the available list and merges it with any
// available physical neighbors.
//
// Freeing Nil does nothing. Freeing a block that is already available
// returns ErrDoubleFree and leaves the heap untouched.
func (h *Heap) Free(a Addr) error {
	if h.closed {
		return ErrClosed
	}
	if a == Nil {
		return nil
	}
	b, err := h.blockOf(a)
	if err != nil {
		return err
	}
	if b.State() == Available {
		h.stats.DoubleFrees++
		return fmt.Errorf("%w: %#x", ErrDoubleFree, int(a))
	}
	h.stats.FreeCalls++
	h.stats.BytesFreed += int64(b.Size())

	b.setState(Available)
	h.used.Remove(b)
	h.avail.PushFront(b)

	// Above first: it can only grow b, and Below needs the footer in front of
	// b's header, which is unaffected.
	h.mergeAbove(b)
	if below, ok := h.Below(b); ok {
		h.mergeAbove(below)
	}
	return nil
}

// mergeAbove absorbs the block physically after lower when both are
// available. The combined block takes lower's place at the front of the
// available list.
func (h *Heap) mergeAbove(lower Block) bool {
	if lower.IsZero() || lower.State() != Available {
		return false
	}
	higher, ok := h.Above(lower)
	if !ok || higher.State() != Available {
		return false
	}

	h.avail.Remove(higher)
	h.avail.Remove(lower)
	lower.setSize(lower.Size() + higher.Size() + format.Overhead)
	lower.writeFooter()
	h.avail.PushFront(lower)

	h.stats.Merges++
	return true
}
