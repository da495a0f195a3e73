package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/elheap/heap/printer"
	"github.com/joshuapare/elheap/heap/verify"
	"github.com/joshuapare/elheap/internal/mmfile"
)

func init() {
	rootCmd.AddCommand(newInspectCmd())
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <image>",
		Short: "Validate and list the blocks of a saved heap image",
		Long: `The inspect command maps a heap image written by "run --dump" and walks
its blocks by address, checking that every header matches its footer, the
blocks tile the image, and no two available blocks are adjacent.

Example:
  elctl run demo.trace --dump demo.img
  elctl inspect demo.img
  elctl inspect demo.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
	return cmd
}

func runInspect(args []string) error {
	path := args[0]
	printVerbose("Mapping image: %s\n", path)

	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return fmt.Errorf("failed to map image: %w", err)
	}
	defer cleanup()

	blocks, err := verify.Layout(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := verify.Coalesced(blocks); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if quiet {
		return nil
	}
	return printer.New(os.Stdout, printerOptions(true)).PrintLayout(data)
}
