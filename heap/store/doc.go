// Package store provides backing memory for a heap.
//
// A store exposes one contiguous byte region that can only grow at its end.
// Growth must never move the region: block offsets recorded inside the heap
// stay valid, and for OS-backed stores the absolute addresses handed to
// callers stay valid too.
//
// # Implementations
//
// Mem: a byte buffer with a fixed reservation. Growth reslices within the
// reservation and fails with ErrNoRoom past it, which is how tests model an
// address range that is already occupied.
//
// Mmap: anonymous private mappings placed at exact addresses with
// MAP_FIXED_NOREPLACE (Linux only). Growth maps new pages at the current end
// and fails with ErrPlacement when the kernel cannot honor that address.
//
// # Thread Safety
//
// Stores are not thread-safe; the heap that owns a store serializes access.
package store
