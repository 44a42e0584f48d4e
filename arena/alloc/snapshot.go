package alloc

import (
	"fmt"

	"github.com/joshuapare/memkit/arena"
	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/format"
)

// Usage summarizes the physical block walk.
type Usage struct {
	TotalBytes  uint64 `json:"total_bytes"`
	UsedBytes   uint64 `json:"used_bytes"`
	FreeBytes   uint64 `json:"free_bytes"`
	UsedBlocks  int    `json:"used_blocks"`
	FreeBlocks  int    `json:"free_blocks"`
	LargestFree uint64 `json:"largest_free"`
}

// BlockInfo is a decoded copy of one header.
type BlockInfo struct {
	Offset   uint64 `json:"offset"`
	Extent   uint64 `json:"extent"`
	Occupied bool   `json:"occupied"`
	Next     uint64 `json:"next"` // format.NilLink when absent
	Prev     uint64 `json:"prev"`
}

// Payload returns the pointer the block's payload starts at.
func (b BlockInfo) Payload() arena.Ptr { return arena.Ptr(b.Offset + format.HeaderSize) }

// Snapshot is a point-in-time copy of the directory.
type Snapshot struct {
	ArenaLen uint64 `json:"arena_len"`
	Layout   Layout `json:"layout"`

	// Head is the offset search starts from, or format.NilLink.
	Head uint64 `json:"head"`

	// Blocks lists every block in address order, found by stepping from
	// offset 0 by extent.
	Blocks []BlockInfo `json:"blocks"`

	// Available lists searchable blocks in search order: the free index for
	// the split layout, the chain from head for the conflated one.
	Available []uint64 `json:"available"`

	// WalkError is set when the physical walk could not reach the arena end.
	WalkError string `json:"walk_error,omitempty"`
}

// walkPhysical visits blocks from offset 0, stepping by extent. It stops with
// ErrWalkStalled on a header that does not fit or an extent that is zero or
// runs past the arena.
func walkPhysical(ar *arena.Arena, fn func(h arena.Header)) error {
	var off uint64
	for off < ar.Len() {
		h, ok := ar.HeaderAt(off)
		if !ok {
			return fmt.Errorf("%w: %d trailing bytes at 0x%X", ErrWalkStalled, ar.Len()-off, off)
		}
		ext := h.Extent()
		if ext == 0 {
			return fmt.Errorf("%w: zero extent at 0x%X", ErrWalkStalled, off)
		}
		end, ok := buf.AddU64(off, ext)
		if !ok || end > ar.Len() {
			return fmt.Errorf("%w: extent %d at 0x%X runs past arena end %d", ErrWalkStalled, ext, off, ar.Len())
		}
		fn(h)
		off = end
	}
	return nil
}

// Usage walks the arena and totals used and free space. Blocks past a stall
// are not counted.
func (a *Allocator) Usage() Usage {
	var u Usage
	if a.ar == nil {
		return u
	}
	u.TotalBytes = a.ar.Len()
	_ = walkPhysical(a.ar, func(h arena.Header) {
		ext := h.Extent()
		if h.Occupied() {
			u.UsedBytes += ext
			u.UsedBlocks++
			return
		}
		u.FreeBytes += ext
		u.FreeBlocks++
		u.LargestFree = max(u.LargestFree, ext)
	})
	return u
}

// Snapshot copies the directory state. An uninitialized allocator yields an
// empty snapshot carrying only the layout.
func (a *Allocator) Snapshot() Snapshot {
	s := Snapshot{Layout: a.cfg.Layout, Head: format.NilLink}
	if a.ar == nil {
		return s
	}
	s.ArenaLen = a.ar.Len()
	if h, ok := a.dir.head(); ok {
		s.Head = h.Offset()
	}
	err := walkPhysical(a.ar, func(h arena.Header) {
		r := h.Raw()
		s.Blocks = append(s.Blocks, BlockInfo{
			Offset:   h.Offset(),
			Extent:   r.Extent,
			Occupied: r.Occupied,
			Next:     r.Next,
			Prev:     r.Prev,
		})
	})
	if err != nil {
		s.WalkError = err.Error()
	}
	s.Available = a.dir.available(maxWalk(a.ar))
	return s
}
