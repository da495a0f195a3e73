package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/elheap/heap"
	"github.com/joshuapare/elheap/heap/trace"
	"github.com/joshuapare/elheap/internal/mmfile"
)

var (
	runFlags heapFlags
	runCheck bool
	runDump  string
)

func init() {
	cmd := newRunCmd()
	runFlags.register(cmd)
	cmd.Flags().BoolVar(&runCheck, "check", false, "Validate heap invariants after every operation")
	cmd.Flags().StringVar(&runDump, "dump", "", "Save the final heap image to this file")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Replay an allocation script",
		Long: `The run command replays a script of alloc, free, grow, print, and
check lines against a fresh heap and reports how each operation went.

Script format:
  # comment
  alloc p0 128
  free p0
  grow 2
  print
  check

Example:
  elctl run demo.trace
  elctl run demo.trace --check --autogrow
  elctl run demo.trace --json
  elctl run demo.trace --dump demo.img`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

// runSummary is the JSON form of a replay.
type runSummary struct {
	Script string         `json:"script"`
	Ops    int            `json:"ops"`
	Failed int            `json:"failed"`
	Errors []runError     `json:"errors,omitempty"`
	Names  map[string]int `json:"names"`
	Stats  heap.Stats     `json:"stats"`
}

type runError struct {
	Line  int    `json:"line"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

func runRun(args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	ops, err := trace.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	printVerbose("Parsed %d operations from %s\n", len(ops), path)

	h, err := runFlags.open()
	if err != nil {
		return fmt.Errorf("failed to initialize heap: %w", err)
	}
	defer h.Close()

	opts := trace.Options{
		Check:   runCheck,
		Printer: printerOptions(!runFlags.mmap),
		Logger:  logger(),
	}
	if !quiet && !jsonOut {
		opts.Output = os.Stdout
	}

	res, err := trace.Run(h, ops, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if runDump != "" {
		if err := mmfile.Save(runDump, h.Bytes()); err != nil {
			return fmt.Errorf("failed to save image: %w", err)
		}
		printVerbose("Saved %d bytes to %s\n", h.Size(), runDump)
	}

	if jsonOut {
		summary := runSummary{
			Script: path,
			Ops:    len(res.Outcomes),
			Failed: res.Failed,
			Names:  make(map[string]int, len(res.Names)),
			Stats:  res.Stats,
		}
		for name, a := range res.Names {
			summary.Names[name] = int(a)
		}
		for _, oc := range res.Outcomes {
			if oc.Err != nil {
				summary.Errors = append(summary.Errors, runError{Line: oc.Op.Line, Op: oc.Op.String(), Error: oc.Err.Error()})
			}
		}
		return printJSON(summary)
	}

	for _, oc := range res.Outcomes {
		switch {
		case oc.Err != nil:
			printInfo("%s\n", paint(warningStyle, fmt.Sprintf("line %d: %s: %v", oc.Op.Line, oc.Op, oc.Err)))
		case oc.Op.Kind == trace.OpAlloc:
			printVerbose("line %d: %s -> %#x\n", oc.Op.Line, oc.Op, int(oc.Addr))
		default:
			printVerbose("line %d: %s\n", oc.Op.Line, oc.Op)
		}
	}
	summary := fmt.Sprintf("%d operations, %d failed; heap %d bytes, %d used in %d blocks, %d available in %d blocks",
		len(res.Outcomes), res.Failed, res.Stats.HeapBytes,
		res.Stats.Used.Bytes, res.Stats.Used.Length,
		res.Stats.Available.Bytes, res.Stats.Available.Length)
	style := successStyle
	if res.Failed > 0 {
		style = errorStyle
	}
	printInfo("%s\n", paint(style, summary))
	return nil
}
