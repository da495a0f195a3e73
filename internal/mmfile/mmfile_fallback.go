//go:build !unix

// Package mmfile maps saved heap images into memory read-only.
package mmfile

import (
	"fmt"
	"os"
)

// Map reads the whole image when mmap is not available.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}

// Save writes an image to path, replacing any existing file.
func Save(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("mmfile: write %s: %w", path, err)
	}
	return nil
}
