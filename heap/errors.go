package heap

import "errors"

var (
	// ErrInvalidSize indicates a zero, negative, or misaligned size.
	ErrInvalidSize = errors.New("heap: invalid size")

	// ErrOutOfMemory indicates no available block fits the request and growth
	// was not attempted or failed.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrMapFailed indicates the backing store could not provide memory at the
	// required address.
	ErrMapFailed = errors.New("heap: mapping failed")

	// ErrHeapTooSmall indicates the initial region cannot hold one block.
	ErrHeapTooSmall = errors.New("heap: region smaller than block overhead")

	// ErrBadAddr indicates an address that does not point at a block payload.
	ErrBadAddr = errors.New("heap: bad address")

	// ErrDoubleFree indicates Free was called on a block that is already available.
	ErrDoubleFree = errors.New("heap: block already available")

	// ErrClosed indicates the heap was torn down.
	ErrClosed = errors.New("heap: closed")
)
