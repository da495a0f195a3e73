// Package heap implements an explicit free-list allocator over a single
// growable arena.
//
// # Overview
//
// Every byte of the arena belongs to exactly one block. A block is a 32-byte
// header, the caller's payload, and an 8-byte footer that repeats the payload
// size (a boundary tag). The header carries the block state and the links of
// the list that currently owns the block:
//
//	+--------+-------+-----+------+------+----------------+--------+
//	| size   | state | pad | prev | next | payload ...    | size   |
//	+--------+-------+-----+------+------+----------------+--------+
//	0        8       9     16     24     32               32+size
//
// Two intrusive doubly-linked lists own the blocks: the available list and
// the used list. Each list has permanent begin and end sentinels so insertion
// and removal never special-case an empty list.
//
// # Placement
//
// Alloc scans the available list front to back and takes the first block
// that fits (first-fit). A block larger than the request plus one block of
// overhead is split and the remainder goes back to the front of the available
// list.
//
// # Coalescing
//
// Free merges the released block with its physical neighbors. The neighbor
// above is found from the block's own size; the neighbor below is found from
// the footer that immediately precedes the block's header, since nothing else
// records the size of the block below. After every public operation no two
// adjacent blocks are both available.
//
// # Growth
//
// GrowByPages appends whole pages at the end of the arena. The backing store
// must place them contiguously; when it cannot, the heap is left untouched.
//
//	h, err := heap.NewMem(heap.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	a, err := h.Alloc(128)
//	if err != nil {
//	    return err
//	}
//	p, _ := h.Payload(a)
//	copy(p, "hello")
//	_ = h.Free(a)
//
// # Thread Safety
//
// Heap is not thread-safe. Wrap it with NewLocked when more than one
// goroutine needs it.
//
// # Limitations
//
// Free validates that an address points at a used block header, but it cannot
// tell a stale address (freed and then handed out again) from a live one, and
// writes past the end of a payload corrupt the neighbor's header.
package heap
