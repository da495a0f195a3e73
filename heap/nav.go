package heap

import (
	"github.com/joshuapare/elheap/internal/buf"
	"github.com/joshuapare/elheap/internal/format"
)

// Address navigation. These helpers look at adjacent memory only; they never
// follow list links.

// FooterOf returns the offset of b's footer: the header, then Size bytes of
// payload.
func (h *Heap) FooterOf(b Block) int {
	return format.FooterOffset(b.off, format.BlockSize(h.data, b.off))
}

// footerAt is FooterOf with the result checked against the arena.
func (h *Heap) footerAt(b Block) (int, bool) {
	foot, ok := buf.OffsetAdd(b.off+format.HeaderSize, format.BlockSize(h.data, b.off))
	if !ok || !buf.Has(h.data, foot, format.FooterSize) {
		return 0, false
	}
	return foot, true
}

// HeaderOf returns the block whose footer is at foot, using the size stored
// in that footer. The header always lies strictly below the footer.
func (h *Heap) HeaderOf(foot int) (Block, bool) {
	if !buf.Has(h.data, foot, format.FooterSize) {
		return Block{}, false
	}
	off, ok := buf.OffsetSub(foot, format.ReadU64(h.data, foot))
	if !ok {
		return Block{}, false
	}
	off, ok = buf.OffsetSub(off, format.HeaderSize)
	if !ok {
		return Block{}, false
	}
	return h.block(off), true
}

// Above returns the block physically after b, computed from b's own size.
// It reports false when b is the last block in the heap.
func (h *Heap) Above(b Block) (Block, bool) {
	off, ok := buf.OffsetAdd(b.off+format.Overhead, format.BlockSize(h.data, b.off))
	if !ok || off >= len(h.data) || !h.inArena(off) {
		return Block{}, false
	}
	return h.block(off), true
}

// Below returns the block physically before b. The size of that block is
// known only from its footer, which sits immediately before b's header, so
// this trusts the footer rather than anything in b. It reports false when
// either the footer or the computed header falls outside [0, b).
func (h *Heap) Below(b Block) (Block, bool) {
	foot := b.off - format.FooterSize
	if foot < 0 {
		return Block{}, false
	}
	off, ok := buf.OffsetSub(foot, format.ReadU64(h.data, foot))
	if !ok {
		return Block{}, false
	}
	off, ok = buf.OffsetSub(off, format.HeaderSize)
	if !ok {
		return Block{}, false
	}
	return h.block(off), true
}

// inArena reports whether a whole header fits at off.
func (h *Heap) inArena(off int) bool {
	return buf.Has(h.data, off, format.HeaderSize)
}

func (h *Heap) block(off int) Block {
	return Block{h: h, off: off}
}
