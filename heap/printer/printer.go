package printer

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/elheap/heap"
)

const DefaultIndentSize = 2

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs the human-readable stats dump.
	FormatText Format = "text"

	// FormatJSON outputs one JSON document.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// ShowLists includes the contents of both lists.
	// Default: true
	ShowLists bool

	// ShowBlocks includes the address-order walk of every block.
	// Default: true
	ShowBlocks bool

	// Relative prints arena offsets instead of process addresses. Output is
	// then identical from run to run regardless of where the heap lives.
	// Default: false
	Relative bool

	// Language selects digit grouping for byte counts (text format only).
	// Default: language.English
	Language language.Tag
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		IndentSize: DefaultIndentSize,
		ShowLists:  true,
		ShowBlocks: true,
		Relative:   false,
		Language:   language.English,
	}
}

// Printer renders heap state.
type Printer struct {
	opts   Options
	writer io.Writer
	msg    *message.Printer
}

// New creates a new Printer writing to w.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintStats(h)
func New(w io.Writer, opts Options) *Printer {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	return &Printer{
		opts:   opts,
		writer: w,
		msg:    message.NewPrinter(opts.Language),
	}
}

// PrintStats prints heap bounds, both lists, and every block in address
// order.
func (p *Printer) PrintStats(h *heap.Heap) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printStatsJSON(h)
	case FormatText:
		return p.printStatsText(h)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}

// PrintList prints one list with its totals.
func (p *Printer) PrintList(l *heap.List) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printListJSON(l)
	case FormatText:
		return p.printListText(l)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}

// base is added to every offset before printing.
func (p *Printer) base(h *heap.Heap) uintptr {
	if p.opts.Relative {
		return 0
	}
	return h.Base()
}
