package heap

import (
	"log/slog"

	"github.com/joshuapare/elheap/internal/format"
)

const (
	// DefaultBaseAddress is where NewMmap places the heap unless told otherwise.
	// A fixed address keeps block addresses identical from run to run.
	DefaultBaseAddress uintptr = 0x600000000000

	// DefaultInitialSize is the initial heap size (one page).
	DefaultInitialSize = format.PageSize

	// DefaultReservePages bounds how far a Mem-backed heap can grow.
	DefaultReservePages = 64
)

// Config controls heap construction and behavior.
type Config struct {
	// InitialSize is the number of bytes NewMem and NewMmap start with.
	// Must be a multiple of 8 and at least one block of overhead.
	// Default: 4096
	InitialSize int

	// Reserve is the total size a Mem-backed heap may grow to. Growth past
	// it fails with ErrMapFailed. Values below InitialSize mean no growth.
	// Default: 64 pages
	Reserve int

	// BaseAddress is the fixed address NewMmap maps the heap at. Zero lets
	// the kernel choose.
	// Default: DefaultBaseAddress
	BaseAddress uintptr

	// AutoGrow makes Alloc grow the heap by enough pages for the request
	// when no available block fits.
	// Default: false
	AutoGrow bool

	// Logger receives debug events (growth, misses, mapping failures).
	// Nil discards them unless ELHEAP_LOG is set.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used by the command line tools.
func DefaultConfig() Config {
	return Config{
		InitialSize: DefaultInitialSize,
		Reserve:     DefaultReservePages * format.PageSize,
		BaseAddress: DefaultBaseAddress,
	}
}

// Overhead is the per-block header plus footer cost in bytes.
const Overhead = format.Overhead
