package printer

import (
	"encoding/json"

	"github.com/joshuapare/elheap/heap"
)

// jsonList represents one list in JSON format.
type jsonList struct {
	Name   string           `json:"name"`
	Length int              `json:"length"`
	Bytes  int              `json:"bytes"`
	Blocks []heap.BlockInfo `json:"blocks,omitempty"`
}

// jsonStats represents the whole heap in JSON format.
type jsonStats struct {
	Base      uintptr          `json:"base"`
	HeapBytes int              `json:"heap_bytes"`
	Overhead  int              `json:"overhead"`
	Available *jsonList        `json:"available,omitempty"`
	Used      *jsonList        `json:"used,omitempty"`
	Blocks    []heap.BlockInfo `json:"blocks,omitempty"`
	Counters  heap.Counters    `json:"counters"`
}

func (p *Printer) printStatsJSON(h *heap.Heap) error {
	st := h.Stats()
	out := jsonStats{
		Base:      p.base(h),
		HeapBytes: st.HeapBytes,
		Overhead:  st.Overhead,
		Counters:  st.Counters,
	}
	if p.opts.ShowLists {
		out.Available = listJSON(h.Available())
		out.Used = listJSON(h.Used())
	}
	if p.opts.ShowBlocks {
		out.Blocks = h.Blocks()
	}
	return p.writeJSON(out)
}

func (p *Printer) printListJSON(l *heap.List) error {
	return p.writeJSON(listJSON(l))
}

func listJSON(l *heap.List) *jsonList {
	return &jsonList{
		Name:   l.Name(),
		Length: l.Len(),
		Bytes:  l.Bytes(),
		Blocks: l.Blocks(),
	}
}

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
