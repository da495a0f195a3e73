package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/elheap/internal/format"
)

func TestSplit(t *testing.T) {
	h := newTestHeap(t, 4096, 0)
	b := h.block(0)
	require.Equal(t, 4056, b.Size())

	rest, ok := h.split(b, 128)
	require.True(t, ok)

	require.Equal(t, 128, b.Size())
	require.Equal(t, 128, b.FooterSize())
	require.Equal(t, 168, rest.Offset())
	require.Equal(t, 4056-128-format.Overhead, rest.Size())
	require.Equal(t, rest.Size(), rest.FooterSize())
	require.Equal(t, Available, rest.State())
	require.Equal(t, refNone, rest.prev(), "split does not link")

	above, ok := h.Above(b)
	require.True(t, ok)
	require.Equal(t, rest.Offset(), above.Offset())

	below, ok := h.Below(rest)
	require.True(t, ok)
	require.Equal(t, b.Offset(), below.Offset())

	require.Equal(t, 1, h.stats.Splits)
}

func TestSplit_TooSmall(t *testing.T) {
	h := newTestHeap(t, 4096, 0)
	b := h.block(0)
	snapshot := append([]byte(nil), h.data...)

	_, ok := h.split(b, 4056-format.Overhead+8)
	require.False(t, ok)
	require.Equal(t, snapshot, h.data, "failed split must not write")
	require.Equal(t, 0, h.stats.Splits)
}

func TestSplit_ExactFitLeavesEmptyBlock(t *testing.T) {
	h := newTestHeap(t, 4096, 0)
	b := h.block(0)

	rest, ok := h.split(b, 4056-format.Overhead)
	require.True(t, ok)
	require.Equal(t, 0, rest.Size())
	require.Equal(t, 0, rest.FooterSize())
	_, ok = h.Above(rest)
	require.False(t, ok)
}

func TestMergeAbove_RequiresBothAvailable(t *testing.T) {
	h := newTestHeap(t, 4096, 0)
	blocks := layoutBlocks(t, h, []int{64, 64, -1}, []State{Available, Used, Available})

	require.False(t, h.mergeAbove(blocks[0]), "higher is used")
	require.False(t, h.mergeAbove(blocks[1]), "lower is used")
	require.False(t, h.mergeAbove(blocks[2]), "nothing above")
	require.False(t, h.mergeAbove(Block{}))
	require.Equal(t, 64, blocks[0].Size())
}
