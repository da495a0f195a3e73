package heap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/elheap/heap"
)

// Test_Alloc_SplitsSoleBlock allocates 128 bytes from a heap with 1024
// usable bytes and checks both halves.
func Test_Alloc_SplitsSoleBlock(t *testing.T) {
	h := newHeap(t, usable1K)

	a := mustAlloc(t, h, 128)
	require.Equal(t, heap.Addr(32), a, "payload follows the first header")

	used := h.Used().Blocks()
	require.Len(t, used, 1)
	require.Equal(t, 128, used[0].Size)
	require.Equal(t, heap.Used, used[0].State)

	avail := h.Available().Blocks()
	require.Len(t, avail, 1)
	require.Equal(t, 1024-128-heap.Overhead, avail[0].Size)
	require.Equal(t, 128+heap.Overhead, avail[0].Offset)
}

// Test_Alloc_ThreeAllocs checks that consecutive allocations carve the
// front of the heap in order and leave one available block.
func Test_Alloc_ThreeAllocs(t *testing.T) {
	h := newHeap(t, 4096)

	p0 := mustAlloc(t, h, 128)
	p1 := mustAlloc(t, h, 200)
	p2 := mustAlloc(t, h, 64)

	require.Equal(t, heap.Addr(32), p0)
	require.Equal(t, heap.Addr(32+168), p1)
	require.Equal(t, heap.Addr(32+168+240), p2)

	// The used list is most recent first.
	used := h.Used().Blocks()
	require.Len(t, used, 3)
	assert.Equal(t, []int{64, 200, 128}, []int{used[0].Size, used[1].Size, used[2].Size})

	avail := h.Available().Blocks()
	require.Len(t, avail, 1)
	require.Equal(t, 512, avail[0].Offset)
	require.Equal(t, 4096-512-heap.Overhead, avail[0].Size)
}

func Test_Alloc_RoundsToAlignment(t *testing.T) {
	h := newHeap(t, 4096)

	a := mustAlloc(t, h, 1)
	size, err := h.SizeOf(a)
	require.NoError(t, err)
	require.Equal(t, 8, size)

	b := mustAlloc(t, h, 13)
	size, err = h.SizeOf(b)
	require.NoError(t, err)
	require.Equal(t, 16, size)
	require.Zero(t, int(b)%8, "payloads stay 8-byte aligned")
}

// Test_Alloc_NoSplitKeepsWholeBlock covers a fit that leaves too little for
// another block: the caller gets the whole block and nothing leaks.
func Test_Alloc_NoSplitKeepsWholeBlock(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{name: "exact", n: 1024},
		{name: "remainder equals overhead", n: 1024 - heap.Overhead},
		{name: "remainder below overhead", n: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHeap(t, usable1K)
			a := mustAlloc(t, h, tt.n)

			size, err := h.SizeOf(a)
			require.NoError(t, err)
			require.Equal(t, 1024, size)
			require.Equal(t, 0, h.Available().Len())
			require.Equal(t, 0, h.Available().Bytes())
			require.Equal(t, usable1K, h.Used().Bytes())
			require.Equal(t, 0, h.Stats().Counters.Splits)
		})
	}
}

func Test_Alloc_InvalidSize(t *testing.T) {
	h := newHeap(t, 4096)
	for _, n := range []int{0, -1, -4096} {
		_, err := h.Alloc(n)
		require.ErrorIs(t, err, heap.ErrInvalidSize, "n=%d", n)
	}
	requireValid(t, h)
}

// Test_Alloc_TooLargeLeavesHeapUnchanged requests more than the heap holds.
func Test_Alloc_TooLargeLeavesHeapUnchanged(t *testing.T) {
	h := newHeap(t, 4096)
	mustAlloc(t, h, 100)
	mustAlloc(t, h, 300)
	before := take(h)

	a, err := h.Alloc(4096)
	require.ErrorIs(t, err, heap.ErrOutOfMemory)
	require.Equal(t, heap.Nil, a)

	require.Equal(t, before, take(h), "failed alloc must not modify the heap")
	require.Equal(t, 1, h.Stats().Counters.AllocFailures)
}

// Test_Alloc_FirstFitNotBestFit frees two holes and checks that the one at
// the front of the available list wins even when a tighter one exists.
func Test_Alloc_FirstFitNotBestFit(t *testing.T) {
	h := newHeap(t, 4096)
	small := mustAlloc(t, h, 104)
	mustAlloc(t, h, 8)
	large := mustAlloc(t, h, 200)
	mustAlloc(t, h, 8)

	mustFree(t, h, small)
	mustFree(t, h, large) // now at the front of the available list

	got := mustAlloc(t, h, 100)
	require.Equal(t, large, got)
}

func Test_Alloc_ReusesFreedBlock(t *testing.T) {
	h := newHeap(t, 4096)
	a := mustAlloc(t, h, 256)
	mustAlloc(t, h, 16)
	mustFree(t, h, a)

	b := mustAlloc(t, h, 256)
	require.Equal(t, a, b)
}

func Test_Alloc_AutoGrow(t *testing.T) {
	cfg := heap.DefaultConfig()
	cfg.InitialSize = 4096
	cfg.Reserve = 4 * 4096
	cfg.AutoGrow = true
	h, err := heap.NewMem(cfg)
	require.NoError(t, err)
	defer h.Close()

	a, err := h.Alloc(8000)
	require.NoError(t, err)
	requireValid(t, h)

	// 8000 + overhead needs two pages; they merge with the free initial page.
	require.Equal(t, 3*4096, h.Size())
	require.Equal(t, 1, h.Stats().Counters.Grows)
	size, err := h.SizeOf(a)
	require.NoError(t, err)
	require.Equal(t, 8000, size)
}

func Test_Alloc_AutoGrowFails(t *testing.T) {
	cfg := heap.DefaultConfig()
	cfg.InitialSize = 4096
	cfg.Reserve = 4096
	cfg.AutoGrow = true
	h, err := heap.NewMem(cfg)
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Alloc(8000)
	require.ErrorIs(t, err, heap.ErrOutOfMemory)
	require.Equal(t, 4096, h.Size())
	require.Equal(t, 1, h.Stats().Counters.GrowFailures)
	requireValid(t, h)
}

func Test_Payload(t *testing.T) {
	h := newHeap(t, 4096)
	a := mustAlloc(t, h, 64)
	b := mustAlloc(t, h, 64)

	pa, err := h.Payload(a)
	require.NoError(t, err)
	require.Len(t, pa, 64)
	for i := range pa {
		pa[i] = 0xAB
	}

	pb, err := h.Payload(b)
	require.NoError(t, err)
	copy(pb, "hello")

	// Filling a payload to the brim leaves every tag intact.
	requireValid(t, h)
	pb, err = h.Payload(b)
	require.NoError(t, err)
	require.Equal(t, "hello", string(pb[:5]))

	mustFree(t, h, a)
	_, err = h.Payload(a)
	require.ErrorIs(t, err, heap.ErrBadAddr)
}
