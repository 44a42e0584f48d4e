package alloc

import (
	"github.com/joshuapare/memkit/arena"
	"github.com/joshuapare/memkit/internal/format"
)

// directory tracks which blocks are available and how blocks relate.
// Implementations never touch occupancy flags; the entry points do.
type directory interface {
	// reset discards all state and starts over with first as the only block.
	reset(first arena.Header)

	// find returns the first available block of at least required bytes.
	find(required uint64) (arena.Header, bool)

	// split carves required bytes off the front of h, leaving the rest as a
	// new free block. Returns false when the block was left whole.
	split(h arena.Header, required uint64) bool

	// link makes h available for search.
	link(h arena.Header)

	// unlink withdraws h from search.
	unlink(h arena.Header)

	// coalesce merges h with a free successor, then into a free predecessor.
	coalesce(h arena.Header) (forward, backward bool)

	// head returns the block search starts from.
	head() (arena.Header, bool)

	// available lists the offsets of searchable blocks in search order,
	// stopping after limit entries.
	available(limit int) []uint64

	layout() Layout
}

func newDirectory(l Layout, ar *arena.Arena) directory {
	if l == LayoutConflated {
		return &conflatedDir{ar: ar}
	}
	return newSplitDir(ar)
}

// canSplit reports whether h can give up required bytes and still leave a
// minimal block whose header lies inside the arena.
func canSplit(ar *arena.Arena, h arena.Header, required uint64) (arena.Header, bool) {
	if h.Extent() < required+format.MinBlockSize {
		return arena.Header{}, false
	}
	return ar.HeaderAt(h.Offset() + required)
}

// maxWalk bounds list walks. No arena can hold more headers than this.
func maxWalk(ar *arena.Arena) int {
	return int(ar.Len()/format.Alignment) + 1
}
