package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/elheap/heap"
	"github.com/joshuapare/elheap/internal/format"
)

// ew keeps the first write error so the text renderers can stay linear.
type ew struct {
	p   *Printer
	err error
}

func (w *ew) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.p.writer, format, args...)
}

// bytes formats n with the configured digit grouping.
func (p *Printer) bytes(n int) string {
	return p.msg.Sprintf("%d", n)
}

func (p *Printer) printStatsText(h *heap.Heap) error {
	w := &ew{p: p}
	base := p.base(h)
	st := h.Stats()

	w.printf("HEAP STATS (overhead per block: %d)\n", st.Overhead)
	w.printf("heap_start:  %#x\n", base)
	w.printf("heap_end:    %#x\n", base+uintptr(st.HeapBytes))
	w.printf("total_bytes: %s\n", p.bytes(st.HeapBytes))

	if p.opts.ShowLists {
		w.printf("AVAILABLE LIST: ")
		p.listText(w, h.Available(), base)
		w.printf("USED LIST: ")
		p.listText(w, h.Used(), base)
	}

	if p.opts.ShowBlocks {
		w.printf("HEAP BLOCKS:\n")
		for i, b := range h.Blocks() {
			w.printf("[%3d] @ ", i)
			p.blockText(w, b, base)
		}
	}
	return w.err
}

func (p *Printer) printListText(l *heap.List) error {
	w := &ew{p: p}
	w.printf("%s: ", strings.ToUpper(l.Name()))
	p.listText(w, l, 0)
	return w.err
}

func (p *Printer) listText(w *ew, l *heap.List, base uintptr) {
	indent := strings.Repeat(" ", p.opts.IndentSize)
	w.printf("{length: %3d  bytes: %5s}\n", l.Len(), p.bytes(l.Bytes()))
	for i, b := range l.Blocks() {
		w.printf("%s[%3d] head @ %#x {state: %c  size: %5s}\n",
			indent, i, base+uintptr(b.Offset), byte(b.State), p.bytes(b.Size))
	}
}

func (p *Printer) blockText(w *ew, b heap.BlockInfo, base uintptr) {
	indent := strings.Repeat(" ", p.opts.IndentSize)
	w.printf("%#x\n", base+uintptr(b.Offset))
	w.printf("%sstate:      %c\n", indent, byte(b.State))
	w.printf("%ssize:       %d (total: %#x)\n", indent, b.Size, b.Size+heap.Overhead)
	w.printf("%sprev:       %s\n", indent, link(b.Prev, base))
	w.printf("%snext:       %s\n", indent, link(b.Next, base))
	w.printf("%suser:       %#x\n", indent, base+uintptr(b.Addr))
	w.printf("%sfoot:       %#x\n", indent, base+uintptr(b.Offset+format.HeaderSize+b.Size))
	w.printf("%sfoot->size: %d\n", indent, b.FooterSize)
}

// link renders a list neighbor.
func link(off int, base uintptr) string {
	switch off {
	case heap.LinkBegin:
		return "begin"
	case heap.LinkEnd:
		return "end"
	case heap.LinkNone:
		return "none"
	}
	return fmt.Sprintf("%#x", base+uintptr(off))
}
