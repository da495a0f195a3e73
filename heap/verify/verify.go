package verify

import (
	"fmt"

	"github.com/joshuapare/elheap/heap"
	"github.com/joshuapare/elheap/internal/format"
)

// ValidationError describes the first invariant violation found.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates all heap invariants in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(h *heap.Heap) error {
	blocks, err := Layout(h.Bytes())
	if err != nil {
		return err
	}
	if err := Coalesced(blocks); err != nil {
		return err
	}
	if err := Lists(h, blocks); err != nil {
		return err
	}
	return Conservation(h)
}

// Block is one block decoded straight from the arena.
type Block struct {
	Offset int
	State  byte
	Size   int
}

// Layout walks the arena by address and checks that blocks tile it exactly:
// every header has a real state, every footer matches its header, and the
// last block ends at the end of the arena.
func Layout(data []byte) ([]Block, error) {
	var blocks []Block
	off := 0
	for off < len(data) {
		hdr, err := format.DecodeHeader(data, off)
		if err != nil {
			return nil, &ValidationError{
				Type:    "Layout",
				Message: fmt.Sprintf("header truncated: %d bytes left", len(data)-off),
				Offset:  off,
			}
		}
		if !format.ValidState(hdr.State) {
			return nil, &ValidationError{
				Type:    "Layout",
				Message: fmt.Sprintf("invalid state %#x", hdr.State),
				Offset:  off,
			}
		}
		room := len(data) - off - format.Overhead
		if room < 0 || hdr.Size > uint64(room) {
			return nil, &ValidationError{
				Type:    "Layout",
				Message: fmt.Sprintf("size %d runs past heap end (%d bytes left)", hdr.Size, len(data)-off),
				Offset:  off,
			}
		}
		size := int(hdr.Size)
		foot, err := format.DecodeFooter(data, format.FooterOffset(off, hdr.Size))
		if err != nil || foot != hdr.Size {
			return nil, &ValidationError{
				Type:    "Layout",
				Message: fmt.Sprintf("footer size %d != header size %d", foot, hdr.Size),
				Offset:  off,
			}
		}
		blocks = append(blocks, Block{Offset: off, State: hdr.State, Size: size})
		off += size + format.Overhead
	}
	if len(blocks) == 0 {
		return nil, &ValidationError{Type: "Layout", Message: "heap has no blocks", Offset: -1}
	}
	return blocks, nil
}

// Coalesced checks that no two adjacent blocks are both available.
func Coalesced(blocks []Block) error {
	for i := 1; i < len(blocks); i++ {
		if blocks[i-1].State == format.StateAvailable && blocks[i].State == format.StateAvailable {
			return &ValidationError{
				Type:    "Coalesced",
				Message: fmt.Sprintf("adjacent available blocks at 0x%X and 0x%X", blocks[i-1].Offset, blocks[i].Offset),
				Offset:  blocks[i].Offset,
			}
		}
	}
	return nil
}

// Lists checks both lists against the address-order walk: each list reads
// the same forwards and backwards, its length and byte total match its
// blocks, and every block appears exactly once, in the list for its state.
func Lists(h *heap.Heap, blocks []Block) error {
	seen := make(map[int]string, len(blocks))
	for _, l := range []*heap.List{h.Available(), h.Used()} {
		want := heap.Available
		if l == h.Used() {
			want = heap.Used
		}
		if err := list(l, want, seen); err != nil {
			return err
		}
	}
	for _, b := range blocks {
		if _, ok := seen[b.Offset]; !ok {
			return &ValidationError{
				Type:    "Lists",
				Message: fmt.Sprintf("%c block is in no list", b.State),
				Offset:  b.Offset,
			}
		}
		delete(seen, b.Offset)
	}
	for off, name := range seen {
		return &ValidationError{
			Type:    "Lists",
			Message: fmt.Sprintf("%s list entry is not a block boundary", name),
			Offset:  off,
		}
	}
	return nil
}

func list(l *heap.List, want heap.State, seen map[int]string) error {
	fwd := l.Blocks()
	rev := l.Reverse()
	if !l.Intact() || len(fwd) != l.Len() || len(rev) != l.Len() {
		return &ValidationError{
			Type:    "Lists",
			Message: fmt.Sprintf("%s list length %d, forward walk %d, reverse walk %d", l.Name(), l.Len(), len(fwd), len(rev)),
			Offset:  -1,
		}
	}
	bytes := 0
	for i, b := range fwd {
		if r := rev[len(rev)-1-i]; r.Offset != b.Offset {
			return &ValidationError{
				Type:    "Lists",
				Message: fmt.Sprintf("%s list prev link mismatch: forward 0x%X, reverse 0x%X", l.Name(), b.Offset, r.Offset),
				Offset:  b.Offset,
			}
		}
		if b.State != want {
			return &ValidationError{
				Type:    "Lists",
				Message: fmt.Sprintf("%s block on %s list", b.State, l.Name()),
				Offset:  b.Offset,
			}
		}
		if b.FooterSize != b.Size {
			return &ValidationError{
				Type:    "Lists",
				Message: fmt.Sprintf("footer size %d != header size %d", b.FooterSize, b.Size),
				Offset:  b.Offset,
			}
		}
		if prev, dup := seen[b.Offset]; dup {
			return &ValidationError{
				Type:    "Lists",
				Message: fmt.Sprintf("block on %s list is also on %s list", l.Name(), prev),
				Offset:  b.Offset,
			}
		}
		seen[b.Offset] = l.Name()
		bytes += b.Size + format.Overhead
	}
	if bytes != l.Bytes() {
		return &ValidationError{
			Type:    "Lists",
			Message: fmt.Sprintf("%s list records %d bytes, blocks hold %d", l.Name(), l.Bytes(), bytes),
			Offset:  -1,
		}
	}
	return nil
}

// Conservation checks that the two lists together own the whole heap.
func Conservation(h *heap.Heap) error {
	total := h.Available().Bytes() + h.Used().Bytes()
	if total != h.Size() {
		return &ValidationError{
			Type:    "Conservation",
			Message: fmt.Sprintf("available %d + used %d = %d, heap is %d bytes", h.Available().Bytes(), h.Used().Bytes(), total, h.Size()),
			Offset:  -1,
		}
	}
	return nil
}
