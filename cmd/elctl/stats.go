package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/elheap/heap/printer"
)

var statsFlags heapFlags

func init() {
	cmd := newStatsCmd()
	statsFlags.register(cmd)
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Initialize a heap and print its lists and blocks",
		Long: `The stats command builds a fresh heap and prints its bounds, the
available and used lists, and every block in address order.

Example:
  elctl stats
  elctl stats --size 8192
  elctl stats --mmap --addr 0x600000000000
  elctl stats --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

func runStats(_ []string) error {
	h, err := statsFlags.open()
	if err != nil {
		return fmt.Errorf("failed to initialize heap: %w", err)
	}
	defer h.Close()

	if quiet {
		return nil
	}
	p := printer.New(os.Stdout, printerOptions(!statsFlags.mmap))
	return p.PrintStats(h)
}
