package heap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/elheap/heap/store"
	"github.com/joshuapare/elheap/internal/format"
)

// Store is the memory a heap lives in: one contiguous region that only grows
// at its end and never moves.
//
// Implementations:
//   - store.Mem: byte buffer with a fixed reservation
//   - store.Mmap: anonymous mappings at fixed addresses (Linux)
type Store interface {
	// Bytes returns the current region.
	Bytes() []byte

	// Extend appends n bytes directly after the current end and returns the
	// grown region. On failure the region is unchanged.
	Extend(n int) ([]byte, error)

	// Close releases the region.
	Close() error
}

// Heap owns an arena and the two lists that partition its blocks.
//
// NOT thread-safe. See Locked.
type Heap struct {
	cfg    Config
	st     Store
	data   []byte
	avail  List
	used   List
	stats  Counters
	log    *slog.Logger
	closed bool
}

// New builds a heap over the store's current region: one available block
// spanning all of it. The caller keeps ownership of st until New succeeds;
// after that Close releases it.
func New(st Store, cfg Config) (*Heap, error) {
	data := st.Bytes()
	if len(data) < format.Overhead {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrHeapTooSmall, len(data), format.Overhead)
	}
	if !format.IsAligned(len(data)) {
		return nil, fmt.Errorf("%w: heap of %d bytes is not %d-byte aligned", ErrInvalidSize, len(data), format.Alignment)
	}

	h := &Heap{
		cfg:  cfg,
		st:   st,
		data: data,
		log:  newLogger(cfg.Logger),
	}
	h.avail.init(h, "available")
	h.used.init(h, "used")

	// Seed the available list by hand instead of through PushFront so a
	// broken list operation cannot corrupt initialization.
	first := h.block(0)
	first.reset(len(data)-format.Overhead, Available)
	first.setPrev(refBegin)
	first.setNext(refEnd)
	h.avail.begin.next = first.ref()
	h.avail.end.prev = first.ref()
	h.avail.length = 1
	h.avail.bytes = len(data)

	h.log.Debug("heap initialized", "bytes", len(data), "first_block", first.Size())
	return h, nil
}

// NewMem builds a heap over a store.Mem of cfg.InitialSize bytes that may
// grow up to cfg.Reserve bytes.
func NewMem(cfg Config) (*Heap, error) {
	st, err := store.NewMem(cfg.InitialSize, max(cfg.Reserve, cfg.InitialSize))
	if err != nil {
		return nil, storeErr("reserve heap", err)
	}
	h, err := New(st, cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return h, nil
}

// NewMmap builds a heap over anonymous memory mapped at cfg.BaseAddress.
// The initial size is rounded up to the OS page size.
func NewMmap(cfg Config) (*Heap, error) {
	st, err := store.OpenMmap(cfg.BaseAddress, cfg.InitialSize)
	if err != nil {
		return nil, storeErr("map heap", err)
	}
	h, err := New(st, cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return h, nil
}

// Close releases the backing store. Outstanding addresses become invalid;
// nothing checks for blocks that were never freed.
func (h *Heap) Close() error {
	if h.closed {
		return ErrClosed
	}
	h.closed = true
	h.data = nil
	if err := h.st.Close(); err != nil {
		return fmt.Errorf("heap: close store: %w", err)
	}
	return nil
}

// Available returns the available list.
func (h *Heap) Available() *List { return &h.avail }

// Used returns the used list.
func (h *Heap) Used() *List { return &h.used }

// Size returns the heap size in bytes (heap end minus heap start).
func (h *Heap) Size() int { return len(h.data) }

// Bytes returns the raw arena. It is invalidated by growth.
func (h *Heap) Bytes() []byte { return h.data }

// Config returns the configuration the heap was built with.
func (h *Heap) Config() Config { return h.cfg }

// Base returns the address of the arena's first byte when the store exposes
// one, or 0.
func (h *Heap) Base() uintptr {
	if b, ok := h.st.(interface{ Base() uintptr }); ok {
		return b.Base()
	}
	return 0
}

// storeErr classifies a store failure: bad sizes are the caller's problem,
// anything else means the memory could not be placed.
func storeErr(op string, err error) error {
	if errors.Is(err, store.ErrBadSize) {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSize, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrMapFailed, op, err)
}
