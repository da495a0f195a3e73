package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/elheap/heap"
)

// defaultHeapFlags mirrors the flag defaults.
func defaultHeapFlags() heapFlags {
	return heapFlags{
		size:    heap.DefaultInitialSize,
		reserve: heap.DefaultReservePages * heap.DefaultInitialSize,
		addr:    "0x600000000000",
	}
}

// resetGlobals clears the global flags between test cases.
func resetGlobals() {
	quiet = false
	verbose = false
	jsonOut = false
	noColor = true
	runCheck = false
	runDump = ""
	statsFlags = defaultHeapFlags()
	runFlags = defaultHeapFlags()
}

// writeScript writes a trace script into a temp dir and returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.trace")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain concurrently so large outputs cannot fill the pipe
	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("output is not valid JSON: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			t.Errorf("output does not contain %q\nOutput: %s", exp, output)
		}
	}
}

// assertNotContains checks that output does not contain any of the strings
func assertNotContains(t *testing.T, output string, unexpected []string) {
	t.Helper()
	for _, unexp := range unexpected {
		if strings.Contains(output, unexp) {
			t.Errorf("output unexpectedly contains %q\nOutput: %s", unexp, output)
		}
	}
}
