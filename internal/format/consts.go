// Package format defines the in-arena block header layout used by the
// allocator. Every block, free or occupied, starts with a fixed 32-byte
// header; the helpers here read and write its fields in place so higher-level
// packages never hand-compute field offsets.
package format

const (
	// HeaderSize is the size of the block header in bytes.
	//
	// Layout (little-endian):
	//
	//	Offset  Size  Description
	//	0x00    8     Extent: total block size including this header.
	//	0x08    4     Occupied flag (0 = free, 1 = occupied).
	//	0x0C    4     Reserved, always zero.
	//	0x10    8     Next link (arena offset of a header, or NilLink).
	//	0x18    8     Prev link (arena offset of a header, or NilLink).
	HeaderSize = 0x20

	// ExtentOffset is the offset of the extent field within a header.
	ExtentOffset = 0x00

	// FlagsOffset is the offset of the occupied flag within a header.
	FlagsOffset = 0x08

	// NextOffset is the offset of the next link within a header.
	NextOffset = 0x10

	// PrevOffset is the offset of the prev link within a header.
	PrevOffset = 0x18

	// Alignment is the boundary every block size is rounded up to.
	Alignment = 8

	// AlignmentMask is the bitmask used for aligning to 8-byte boundaries (Alignment - 1).
	AlignmentMask = Alignment - 1

	// MinPayload is the smallest payload a block may carry.
	MinPayload = 8

	// MinBlockSize is the smallest block the allocator will create, header included.
	// Splits that would leave a remainder below this size hand out the whole block.
	MinBlockSize = HeaderSize + MinPayload

	// NilLink marks an absent next/prev link.
	NilLink = ^uint64(0)

	// FlagOccupied is the value stored in the flag field of an occupied block.
	FlagOccupied = 1

	// DefaultArenaSize is the arena length used when none is configured (1 MiB).
	DefaultArenaSize = 1024 * 1024
)
