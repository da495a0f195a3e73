package main

import (
	"strings"
	"testing"
)

func TestPaint(t *testing.T) {
	noColor = true
	if got := paint(errorStyle, "boom"); got != "boom" {
		t.Errorf("paint() with --no-color = %q, want plain text", got)
	}

	noColor = false
	defer func() { noColor = true }()
	if got := paint(successStyle, "ok"); !strings.Contains(got, "ok") {
		t.Errorf("paint() = %q, want it to contain the text", got)
	}
}
