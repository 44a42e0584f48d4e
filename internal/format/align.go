package format

// Align8U64 returns n aligned up to the next 8-byte boundary.
// Used for block sizes, which must keep every header 8-byte aligned. Wraps
// for n > MaxUint64-7; callers bound n before aligning.
//
// Example:
//
//	Align8U64(1)  = 8
//	Align8U64(8)  = 8
//	Align8U64(9)  = 16
//	Align8U64(16) = 16
func Align8U64(n uint64) uint64 {
	return (n + AlignmentMask) &^ AlignmentMask
}

// IsAligned reports whether n sits on an 8-byte boundary.
func IsAligned(n uint64) bool {
	return n&AlignmentMask == 0
}
