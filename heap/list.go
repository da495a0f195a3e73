package heap

import "github.com/joshuapare/elheap/internal/format"

// sentinel is a permanent list boundary node. Sentinels live in the List
// itself rather than in the arena and carry no payload.
type sentinel struct {
	state State
	prev  ref
	next  ref
}

// List is an intrusive doubly-linked list of blocks. Link fields live in the
// block headers; the list keeps only the sentinels and running totals.
//
// Invariant: bytes == Σ(size + Overhead) over the linked blocks.
type List struct {
	h      *Heap
	name   string
	begin  sentinel
	end    sentinel
	length int
	bytes  int
}

// init empties the list.
func (l *List) init(h *Heap, name string) {
	l.h = h
	l.name = name
	l.begin = sentinel{state: Begin, prev: refNone, next: refEnd}
	l.end = sentinel{state: End, prev: refBegin, next: refNone}
	l.length = 0
	l.bytes = 0
}

// Name returns the list name ("available" or "used").
func (l *List) Name() string { return l.name }

// Len returns the number of real blocks in the list.
func (l *List) Len() int { return l.length }

// Bytes returns the bytes owned by the list, overhead included.
func (l *List) Bytes() int { return l.bytes }

// PushFront links b right after the begin sentinel.
func (l *List) PushFront(b Block) {
	first := l.begin.next
	b.setPrev(refBegin)
	b.setNext(first)
	l.setPrev(first, b.ref())
	l.begin.next = b.ref()

	l.length++
	l.bytes += b.Size() + format.Overhead
}

// Remove unlinks b. Removing the zero Block is a no-op.
func (l *List) Remove(b Block) {
	if b.IsZero() {
		return
	}
	prev, next := b.prev(), b.next()
	l.setNext(prev, next)
	l.setPrev(next, prev)
	b.setPrev(refNone)
	b.setNext(refNone)

	l.length--
	l.bytes -= b.Size() + format.Overhead
}

// FirstFit returns the first available block, in list order, whose payload
// holds at least size bytes.
func (l *List) FirstFit(size int) (Block, bool) {
	for r := l.begin.next; r != refEnd; r = l.next(r) {
		b := l.h.block(r.offset())
		if b.State() == Available && b.Size() >= size {
			return b, true
		}
	}
	return Block{}, false
}

// Blocks returns the list contents from front to back.
func (l *List) Blocks() []BlockInfo {
	out, _ := l.walk(l.begin.next, refEnd, l.next)
	return out
}

// Reverse returns the list contents from back to front.
func (l *List) Reverse() []BlockInfo {
	out, _ := l.walk(l.end.prev, refBegin, l.prev)
	return out
}

// Intact reports whether following the links from each sentinel reaches the
// other sentinel after exactly Len blocks.
func (l *List) Intact() bool {
	_, fwd := l.walk(l.begin.next, refEnd, l.next)
	_, rev := l.walk(l.end.prev, refBegin, l.prev)
	return fwd && rev
}

// walk follows links from r until stop. It gives up after length+1 blocks or
// at a link that leaves the arena, so a corrupted list cannot hang it.
func (l *List) walk(r, stop ref, step func(ref) ref) ([]BlockInfo, bool) {
	out := make([]BlockInfo, 0, l.length)
	for r != stop {
		if len(out) > l.length || !r.isBlock() || !l.h.inArena(r.offset()) {
			return out, false
		}
		out = append(out, l.h.block(r.offset()).Info())
		r = step(r)
	}
	return out, len(out) == l.length
}

func (l *List) next(r ref) ref {
	switch r {
	case refBegin:
		return l.begin.next
	case refEnd:
		return l.end.next
	}
	return l.h.block(r.offset()).next()
}

func (l *List) prev(r ref) ref {
	switch r {
	case refBegin:
		return l.begin.prev
	case refEnd:
		return l.end.prev
	}
	return l.h.block(r.offset()).prev()
}

func (l *List) setNext(r, v ref) {
	switch r {
	case refBegin:
		l.begin.next = v
	case refEnd:
		l.end.next = v
	default:
		l.h.block(r.offset()).setNext(v)
	}
}

func (l *List) setPrev(r, v ref) {
	switch r {
	case refBegin:
		l.begin.prev = v
	case refEnd:
		l.end.prev = v
	default:
		l.h.block(r.offset()).setPrev(v)
	}
}
