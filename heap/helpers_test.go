package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/elheap/heap/store"
	"github.com/joshuapare/elheap/internal/format"
)

// newTestHeap builds a Mem-backed heap of size bytes with no room to grow
// unless reserve says otherwise.
func newTestHeap(t testing.TB, size, reserve int) *Heap {
	t.Helper()
	st, err := store.NewMem(size, max(size, reserve))
	require.NoError(t, err)
	h, err := New(st, Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

// layoutBlocks overwrites the arena with blocks of the given payload sizes
// and states, address order, without touching the lists. A size of -1 takes
// the rest of the heap. Only navigation may be used on the result.
func layoutBlocks(t testing.TB, h *Heap, sizes []int, states []State) []Block {
	t.Helper()
	require.Len(t, states, len(sizes))

	blocks := make([]Block, len(sizes))
	off := 0
	for i, size := range sizes {
		if size < 0 {
			size = len(h.data) - off - format.Overhead
		}
		b := h.block(off)
		b.reset(size, states[i])
		blocks[i] = b
		off += size + format.Overhead
	}
	require.Equal(t, len(h.data), off, "layout must cover the heap")
	return blocks
}
