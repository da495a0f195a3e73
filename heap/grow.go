package heap

import (
	"fmt"
	"math"

	"github.com/joshuapare/elheap/internal/format"
)

// maxGrowPages keeps the byte count of one growth step within an int.
const maxGrowPages = math.MaxInt / format.PageSize

// GrowByPages appends n pages to the end of the heap.
//
// The new pages become one available block, which is merged with the block
// below when that block is available. If the store cannot place the pages
// directly after the heap, GrowByPages returns ErrMapFailed and the heap is
// unchanged.
//
// Examples:
//
//	GrowByPages(1) → 4096 bytes, one block of 4056 usable bytes
//	GrowByPages(2) → 8192 bytes, one block of 8152 usable bytes
func (h *Heap) GrowByPages(n int) error {
	if h.closed {
		return ErrClosed
	}
	if n <= 0 || n > maxGrowPages {
		return fmt.Errorf("%w: grow by %d pages", ErrInvalidSize, n)
	}

	grow := n * format.PageSize
	oldEnd := len(h.data)

	data, err := h.st.Extend(grow)
	if err != nil {
		h.stats.GrowFailures++
		h.log.Debug("grow failed", "pages", n, "heap_end", oldEnd, "err", err)
		return fmt.Errorf("%w: append %d pages at offset %#x: %w", ErrMapFailed, n, oldEnd, err)
	}
	if len(data) != oldEnd+grow {
		h.stats.GrowFailures++
		return fmt.Errorf("%w: store returned %d bytes, want %d", ErrMapFailed, len(data), oldEnd+grow)
	}
	h.data = data

	fresh := h.block(oldEnd)
	fresh.reset(grow-format.Overhead, Available)
	h.avail.PushFront(fresh)
	if below, ok := h.Below(fresh); ok {
		h.mergeAbove(below)
	}

	h.stats.Grows++
	h.stats.GrowBytes += int64(grow)
	h.log.Debug("heap grown", "pages", n, "heap_bytes", len(h.data))
	return nil
}
