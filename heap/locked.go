package heap

import "sync"

// Locked serializes every operation on a Heap behind one mutex. Splits and
// merges rewrite neighboring headers and both lists non-atomically, so
// finer-grained locking is not possible.
type Locked struct {
	mu sync.Mutex
	h  *Heap
}

// NewLocked wraps h. The caller must stop using h directly.
func NewLocked(h *Heap) *Locked {
	return &Locked{h: h}
}

// Alloc calls Heap.Alloc under the lock.
func (l *Locked) Alloc(n int) (Addr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Alloc(n)
}

// Free calls Heap.Free under the lock.
func (l *Locked) Free(a Addr) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Free(a)
}

// GrowByPages calls Heap.GrowByPages under the lock.
func (l *Locked) GrowByPages(n int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.GrowByPages(n)
}

// Write copies p into the payload at a under the lock. It fails with
// ErrInvalidSize when p does not fit.
func (l *Locked) Write(a Addr, p []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	dst, err := l.h.Payload(a)
	if err != nil {
		return err
	}
	if len(p) > len(dst) {
		return ErrInvalidSize
	}
	copy(dst, p)
	return nil
}

// Read copies the payload at a into a new slice under the lock.
func (l *Locked) Read(a Addr) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	src, err := l.h.Payload(a)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), src...), nil
}

// Stats calls Heap.Stats under the lock.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Stats()
}

// Blocks calls Heap.Blocks under the lock.
func (l *Locked) Blocks() []BlockInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Blocks()
}

// Inspect runs fn with the heap while holding the lock.
func (l *Locked) Inspect(fn func(h *Heap)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.h)
}

// Close calls Heap.Close under the lock.
func (l *Locked) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Close()
}
