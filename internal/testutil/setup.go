// Package testutil holds helpers shared by heap tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/elheap/heap"
	"github.com/joshuapare/elheap/heap/verify"
	"github.com/joshuapare/elheap/internal/mmfile"
)

// SetupHeap builds a memory-backed heap of size bytes that may grow to
// reserve bytes. The heap is closed when the test ends.
//
// Example:
//
//	h := testutil.SetupHeap(t, 4096, 4*4096)
func SetupHeap(t testing.TB, size, reserve int) *heap.Heap {
	t.Helper()
	cfg := heap.DefaultConfig()
	cfg.InitialSize = size
	cfg.Reserve = reserve
	return SetupHeapWith(t, cfg)
}

// SetupHeapWith is like SetupHeap but takes a full configuration.
func SetupHeapWith(t testing.TB, cfg heap.Config) *heap.Heap {
	t.Helper()
	h, err := heap.NewMem(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

// RequireValid fails the test when any heap invariant is broken.
func RequireValid(t testing.TB, h *heap.Heap) {
	t.Helper()
	require.NoError(t, verify.AllInvariants(h))
}

// SaveImage writes the arena of h to a file in a temporary directory and
// returns its path.
func SaveImage(t testing.TB, h *heap.Heap) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "heap.img")
	require.NoError(t, mmfile.Save(path, h.Bytes()))
	return path
}
