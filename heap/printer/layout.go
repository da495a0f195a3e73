package printer

import (
	"fmt"

	"github.com/joshuapare/elheap/heap"
	"github.com/joshuapare/elheap/heap/verify"
)

// jsonLayout represents a raw arena image in JSON format.
type jsonLayout struct {
	Bytes     int            `json:"bytes"`
	Blocks    []jsonImgBlk   `json:"blocks"`
	Available heap.ListStats `json:"available"`
	Used      heap.ListStats `json:"used"`
}

type jsonImgBlk struct {
	Offset int        `json:"offset"`
	State  heap.State `json:"state"`
	Size   int        `json:"size"`
}

// PrintLayout decodes a raw arena image, such as a saved heap, and prints
// its blocks in address order. Links are not followed; an image carries no
// list sentinels. A malformed image returns the *verify.ValidationError.
func (p *Printer) PrintLayout(data []byte) error {
	blocks, err := verify.Layout(data)
	if err != nil {
		return err
	}

	var avail, used heap.ListStats
	for _, b := range blocks {
		s := &used
		if heap.State(b.State) == heap.Available {
			s = &avail
		}
		s.Length++
		s.Bytes += b.Size + heap.Overhead
	}

	if p.opts.Format == FormatJSON {
		out := jsonLayout{Bytes: len(data), Available: avail, Used: used}
		for _, b := range blocks {
			out.Blocks = append(out.Blocks, jsonImgBlk{Offset: b.Offset, State: heap.State(b.State), Size: b.Size})
		}
		return p.writeJSON(out)
	}
	if p.opts.Format != FormatText {
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}

	w := &ew{p: p}
	w.printf("IMAGE (%s bytes, overhead per block: %d)\n", p.bytes(len(data)), heap.Overhead)
	for i, b := range blocks {
		w.printf("[%3d] @ %#x {state: %c  size: %5s}\n", i, b.Offset, b.State, p.bytes(b.Size))
	}
	w.printf("available: %d blocks, %s bytes\n", avail.Length, p.bytes(avail.Bytes))
	w.printf("used:      %d blocks, %s bytes\n", used.Length, p.bytes(used.Bytes))
	return w.err
}
