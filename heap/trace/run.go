package trace

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/elheap/heap"
	"github.com/joshuapare/elheap/heap/printer"
	"github.com/joshuapare/elheap/heap/verify"
)

// Options controls replay.
type Options struct {
	// Check validates every invariant after each operation, not only on
	// explicit check lines.
	Check bool

	// Output receives print operations. Nil discards them.
	Output io.Writer

	// Printer formats print operations.
	Printer printer.Options

	// Logger receives one debug record per operation. Nil discards them.
	Logger *slog.Logger
}

// Outcome is what one operation did. Heap errors such as ErrOutOfMemory or
// ErrDoubleFree are recorded here and do not stop the replay.
type Outcome struct {
	Op   Op
	Addr heap.Addr // alloc result, or the address freed
	Err  error
}

// Result summarizes a replay.
type Result struct {
	Outcomes []Outcome
	Names    map[string]heap.Addr // final binding of every name
	Failed   int                  // outcomes with a non-nil Err
	Stats    heap.Stats
}

// Run executes ops against h in order.
//
// Run stops with an error when a free names something never allocated, when
// an invariant check fails, or when printing fails. The Result holds every
// outcome up to that point.
func Run(h *heap.Heap, ops []Op, opts Options) (*Result, error) {
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := printer.New(out, opts.Printer)

	res := &Result{Names: make(map[string]heap.Addr)}
	defer func() { res.Stats = h.Stats() }()

	for _, op := range ops {
		oc := Outcome{Op: op}
		switch op.Kind {
		case OpAlloc:
			oc.Addr, oc.Err = h.Alloc(op.N)
			res.Names[op.Name] = oc.Addr
		case OpFree:
			a, ok := res.Names[op.Name]
			if !ok {
				return res, fmt.Errorf("line %d: %w %q", op.Line, ErrUnknownName, op.Name)
			}
			oc.Addr = a
			oc.Err = h.Free(a)
		case OpGrow:
			oc.Err = h.GrowByPages(op.N)
		case OpPrint:
			if err := p.PrintStats(h); err != nil {
				return res, fmt.Errorf("line %d: print: %w", op.Line, err)
			}
		case OpCheck:
			if err := verify.AllInvariants(h); err != nil {
				return res, fmt.Errorf("line %d: check: %w", op.Line, err)
			}
		default:
			return res, fmt.Errorf("line %d: %w: %s", op.Line, ErrSyntax, op.Kind)
		}

		res.Outcomes = append(res.Outcomes, oc)
		if oc.Err != nil {
			res.Failed++
		}
		log.Debug("trace op", "line", op.Line, "op", op.String(), "addr", int(oc.Addr), "err", oc.Err)

		if opts.Check && op.Kind != OpCheck {
			if err := verify.AllInvariants(h); err != nil {
				return res, fmt.Errorf("line %d: after %s: %w", op.Line, op, err)
			}
		}
	}
	return res, nil
}
