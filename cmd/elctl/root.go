package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/elheap/heap"
	"github.com/joshuapare/elheap/heap/printer"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "elctl",
	Short: "Drive and inspect an explicit-list heap allocator",
	Long: `elctl builds a boundary-tag heap with explicit available and used
lists, replays allocation scripts against it, and prints the resulting
lists and block layout.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// logger returns the heap logger for the current verbosity.
func logger() *slog.Logger {
	if verbose && !quiet {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// printerOptions maps the global flags onto printer options.
func printerOptions(relative bool) printer.Options {
	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	opts.Relative = relative
	return opts
}

// heapFlags are shared by every command that builds a heap.
type heapFlags struct {
	size     int
	reserve  int
	mmap     bool
	addr     string
	autogrow bool
}

func (f *heapFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.size, "size", heap.DefaultInitialSize, "Initial heap size in bytes")
	cmd.Flags().IntVar(&f.reserve, "reserve", heap.DefaultReservePages*heap.DefaultInitialSize,
		"Bytes a memory-backed heap may grow to")
	cmd.Flags().BoolVar(&f.mmap, "mmap", false, "Map the heap at a fixed address instead of a Go buffer")
	cmd.Flags().StringVar(&f.addr, "addr", fmt.Sprintf("%#x", heap.DefaultBaseAddress), "Base address for --mmap")
	cmd.Flags().BoolVar(&f.autogrow, "autogrow", false, "Grow the heap when an allocation does not fit")
}

// open builds the heap the flags describe.
func (f *heapFlags) open() (*heap.Heap, error) {
	addr, err := strconv.ParseUint(f.addr, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid --addr %q: %w", f.addr, err)
	}

	cfg := heap.DefaultConfig()
	cfg.InitialSize = f.size
	cfg.Reserve = f.reserve
	cfg.BaseAddress = uintptr(addr)
	cfg.AutoGrow = f.autogrow
	cfg.Logger = logger()

	if f.mmap {
		printVerbose("Mapping %d bytes at %#x\n", f.size, addr)
		return heap.NewMmap(cfg)
	}
	printVerbose("Reserving %d bytes (initial %d)\n", f.reserve, f.size)
	return heap.NewMem(cfg)
}
