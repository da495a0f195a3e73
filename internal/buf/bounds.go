// Package buf contains overflow-safe offset arithmetic shared by code that
// navigates raw byte arenas.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// OffsetAdd returns off+n when both are non-negative and the sum fits in
// an int. Sizes read from an arena are uint64 and may be garbage, so they
// are accepted unconverted.
func OffsetAdd(off int, n uint64) (int, bool) {
	if off < 0 || n > math.MaxInt {
		return 0, false
	}
	return AddOverflowSafe(off, int(n))
}

// OffsetSub returns off-n when the result stays non-negative.
func OffsetSub(off int, n uint64) (int, bool) {
	if off < 0 || n > uint64(off) {
		return 0, false
	}
	return off - int(n), true
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
