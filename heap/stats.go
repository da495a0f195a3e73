package heap

// Counters are running totals of heap activity.
type Counters struct {
	AllocCalls     int   `json:"alloc_calls"`     // successful and failed Alloc calls
	AllocFailures  int   `json:"alloc_failures"`  // Alloc calls that returned ErrOutOfMemory
	FreeCalls      int   `json:"free_calls"`      // blocks returned by Free
	DoubleFrees    int   `json:"double_frees"`    // Free calls on available blocks
	BytesAllocated int64 `json:"bytes_allocated"` // payload bytes handed out
	BytesFreed     int64 `json:"bytes_freed"`     // payload bytes returned
	Splits         int   `json:"splits"`
	Merges         int   `json:"merges"`
	Grows          int   `json:"grows"`
	GrowBytes      int64 `json:"grow_bytes"`
	GrowFailures   int   `json:"grow_failures"`
}

// ListStats summarizes one list.
type ListStats struct {
	Length int `json:"length"`
	Bytes  int `json:"bytes"`
}

// Stats is a snapshot of heap occupancy and activity.
type Stats struct {
	HeapBytes int       `json:"heap_bytes"`
	Overhead  int       `json:"overhead"`
	Available ListStats `json:"available"`
	Used      ListStats `json:"used"`
	Counters  Counters  `json:"counters"`
}

// Stats returns the current statistics.
func (h *Heap) Stats() Stats {
	return Stats{
		HeapBytes: len(h.data),
		Overhead:  Overhead,
		Available: ListStats{Length: h.avail.length, Bytes: h.avail.bytes},
		Used:      ListStats{Length: h.used.length, Bytes: h.used.bytes},
		Counters:  h.stats,
	}
}

// Walk calls fn for each block in address order, starting at the bottom of
// the heap, until fn returns false. Only sizes are followed, never links.
func (h *Heap) Walk(fn func(Block) bool) {
	if !h.inArena(0) {
		return
	}
	for b, ok := h.block(0), true; ok; b, ok = h.Above(b) {
		if !fn(b) {
			return
		}
	}
}

// Blocks returns every block in address order.
func (h *Heap) Blocks() []BlockInfo {
	var out []BlockInfo
	h.Walk(func(b Block) bool {
		out = append(out, b.Info())
		return true
	})
	return out
}
