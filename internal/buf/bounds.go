// Package buf contains overflow-safe arithmetic and bounds helpers for
// offset math over a byte region.
package buf

import (
	"fmt"
	"math"
)

// AddU64 adds a and b, returning ok = false when the sum wraps.
func AddU64(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum >= a
}

// MulU64 multiplies a and b, returning ok = false when the product wraps.
// This is the check behind count * elementSize on zero-allocate.
func MulU64(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxUint64/b {
		return a * b, false
	}
	return a * b, true
}

// CheckRange validates that n bytes starting at offset fit in a region of
// regionLen bytes. Returns the end offset if valid, or an error describing
// the specific failure (overflow or out of bounds).
//
//	end, err := buf.CheckRange(uint64(len(data)), off, n)
//	if err != nil {
//	    return fmt.Errorf("payload: %w", err)
//	}
func CheckRange(regionLen, offset, n uint64) (uint64, error) {
	end, ok := AddU64(offset, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", offset, n)
	}
	if end > regionLen {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, regionLen)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddU64(uint64(off), uint64(n))
	if !ok || end > uint64(len(b)) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

// Clamp returns b[off:off+n] truncated to the end of b. Returns nil when off
// lies outside b.
func Clamp(b []byte, off, n uint64) []byte {
	if off >= uint64(len(b)) {
		return nil
	}
	end, ok := AddU64(off, n)
	if !ok || end > uint64(len(b)) {
		end = uint64(len(b))
	}
	return b[off:end]
}
