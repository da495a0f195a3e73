package store

import "errors"

var (
	// ErrNoRoom indicates a Mem store's reservation cannot hold the requested growth.
	ErrNoRoom = errors.New("store: reservation exhausted")

	// ErrPlacement indicates the OS could not map memory at the required address.
	ErrPlacement = errors.New("store: mapping not placed at requested address")

	// ErrUnsupported indicates the store is not available on this platform.
	ErrUnsupported = errors.New("store: unsupported on this platform")

	// ErrClosed indicates the store was already released.
	ErrClosed = errors.New("store: closed")

	// ErrBadSize indicates a non-positive or misaligned size.
	ErrBadSize = errors.New("store: bad size")
)
