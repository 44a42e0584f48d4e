package verify

import (
	"fmt"

	"github.com/joshuapare/memkit/arena/alloc"
	"github.com/joshuapare/memkit/internal/format"
)

// ValidationError describes the first invariant a snapshot violates.
type ValidationError struct {
	Type    string
	Message string
	Offset  int64
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates every invariant the snapshot's layout promises.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(s alloc.Snapshot) error {
	if err := Coverage(s); err != nil {
		return err
	}
	if s.Layout != alloc.LayoutSplit {
		return nil
	}
	if err := PhysicalChain(s); err != nil {
		return err
	}
	if err := Coalesced(s); err != nil {
		return err
	}
	return FreeIndex(s)
}

// Coverage validates that the blocks tile the arena exactly.
func Coverage(s alloc.Snapshot) error {
	if s.WalkError != "" {
		return &ValidationError{Type: "Coverage", Message: s.WalkError, Offset: -1}
	}
	if len(s.Blocks) == 0 {
		return &ValidationError{Type: "Coverage", Message: "no blocks", Offset: -1}
	}

	var pos uint64
	for _, b := range s.Blocks {
		if b.Offset != pos {
			return &ValidationError{
				Type:    "Coverage",
				Message: fmt.Sprintf("gap or overlap: block at 0x%X, expected 0x%X", b.Offset, pos),
				Offset:  int64(b.Offset),
			}
		}
		if !format.IsAligned(b.Offset) {
			return &ValidationError{
				Type:    "Coverage",
				Message: "block offset not 8-byte aligned",
				Offset:  int64(b.Offset),
			}
		}
		if b.Extent < format.MinBlockSize {
			return &ValidationError{
				Type:    "Coverage",
				Message: fmt.Sprintf("extent %d below minimum %d", b.Extent, format.MinBlockSize),
				Offset:  int64(b.Offset),
				Details: map[string]any{"extent": b.Extent},
			}
		}
		pos += b.Extent
	}

	if pos != s.ArenaLen {
		return &ValidationError{
			Type:    "Coverage",
			Message: fmt.Sprintf("blocks cover %d bytes, arena is %d", pos, s.ArenaLen),
			Offset:  -1,
			Details: map[string]any{"covered": pos, "arena_len": s.ArenaLen},
		}
	}
	return nil
}

// PhysicalChain validates that next/prev links follow address order.
func PhysicalChain(s alloc.Snapshot) error {
	for i, b := range s.Blocks {
		wantPrev, wantNext := format.NilLink, format.NilLink
		if i > 0 {
			wantPrev = s.Blocks[i-1].Offset
		}
		if i < len(s.Blocks)-1 {
			wantNext = s.Blocks[i+1].Offset
		}
		if b.Prev != wantPrev {
			return &ValidationError{
				Type:    "PhysicalChain",
				Message: fmt.Sprintf("prev link %s, expected %s", link(b.Prev), link(wantPrev)),
				Offset:  int64(b.Offset),
			}
		}
		if b.Next != wantNext {
			return &ValidationError{
				Type:    "PhysicalChain",
				Message: fmt.Sprintf("next link %s, expected %s", link(b.Next), link(wantNext)),
				Offset:  int64(b.Offset),
			}
		}
	}
	return nil
}

// Coalesced validates that no two adjacent blocks are both free.
func Coalesced(s alloc.Snapshot) error {
	for i := 1; i < len(s.Blocks); i++ {
		prev, cur := s.Blocks[i-1], s.Blocks[i]
		if !prev.Occupied && !cur.Occupied {
			return &ValidationError{
				Type:    "Coalesced",
				Message: fmt.Sprintf("adjacent free blocks at 0x%X and 0x%X", prev.Offset, cur.Offset),
				Offset:  int64(prev.Offset),
			}
		}
	}
	return nil
}

// FreeIndex validates that the availability list is exactly the set of free
// blocks in ascending address order.
func FreeIndex(s alloc.Snapshot) error {
	var free []uint64
	for _, b := range s.Blocks {
		if !b.Occupied {
			free = append(free, b.Offset)
		}
	}

	if len(free) != len(s.Available) {
		return &ValidationError{
			Type:    "FreeIndex",
			Message: fmt.Sprintf("%d free blocks, %d indexed", len(free), len(s.Available)),
			Offset:  -1,
			Details: map[string]any{"free": free, "indexed": s.Available},
		}
	}
	for i, off := range free {
		if s.Available[i] != off {
			return &ValidationError{
				Type:    "FreeIndex",
				Message: fmt.Sprintf("index entry %d is 0x%X, expected 0x%X", i, s.Available[i], off),
				Offset:  int64(off),
			}
		}
	}

	wantHead := format.NilLink
	if len(free) > 0 {
		wantHead = free[0]
	}
	if s.Head != wantHead {
		return &ValidationError{
			Type:    "FreeIndex",
			Message: fmt.Sprintf("head %s, expected %s", link(s.Head), link(wantHead)),
			Offset:  -1,
		}
	}
	return nil
}

func link(v uint64) string {
	if v == format.NilLink {
		return "nil"
	}
	return fmt.Sprintf("0x%X", v)
}
