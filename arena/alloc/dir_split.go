package alloc

import (
	"github.com/google/btree"

	"github.com/joshuapare/memkit/arena"
)

const freeIndexDegree = 16

// offsetItem keys the free index by block offset.
type offsetItem uint64

func (o offsetItem) Less(than btree.Item) bool { return o < than.(offsetItem) }

// splitDir keeps next/prev as the address-ordered physical chain and stores
// availability in a B-tree of free block offsets.
type splitDir struct {
	ar   *arena.Arena
	free *btree.BTree
}

func newSplitDir(ar *arena.Arena) *splitDir {
	return &splitDir{ar: ar, free: btree.New(freeIndexDegree)}
}

func (d *splitDir) layout() Layout { return LayoutSplit }

func (d *splitDir) reset(first arena.Header) {
	d.free.Clear(false)
	d.free.ReplaceOrInsert(offsetItem(first.Offset()))
}

func (d *splitDir) find(required uint64) (arena.Header, bool) {
	var found arena.Header
	d.free.Ascend(func(i btree.Item) bool {
		h, ok := d.ar.HeaderAt(uint64(i.(offsetItem)))
		if ok && h.Extent() >= required {
			found = h
			return false
		}
		return true
	})
	return found, found.Valid()
}

func (d *splitDir) split(h arena.Header, required uint64) bool {
	tail, ok := canSplit(d.ar, h, required)
	if !ok {
		return false
	}
	next, hasNext := h.Next()

	tail.Init(h.Extent() - required)
	tail.SetPrev(h)
	if hasNext {
		tail.SetNext(next)
		next.SetPrev(tail)
	}
	h.SetNext(tail)
	h.SetExtent(required)

	d.free.ReplaceOrInsert(offsetItem(tail.Offset()))
	return true
}

func (d *splitDir) link(h arena.Header) {
	d.free.ReplaceOrInsert(offsetItem(h.Offset()))
}

func (d *splitDir) unlink(h arena.Header) {
	d.free.Delete(offsetItem(h.Offset()))
}

func (d *splitDir) coalesce(h arena.Header) (forward, backward bool) {
	if next, ok := h.Next(); ok && !next.Occupied() {
		d.absorb(h, next)
		forward = true
	}
	if prev, ok := h.Prev(); ok && !prev.Occupied() {
		d.absorb(prev, h)
		backward = true
	}
	return forward, backward
}

// absorb grows into by the extent of its physical successor victim.
func (d *splitDir) absorb(into, victim arena.Header) {
	d.free.Delete(offsetItem(victim.Offset()))
	into.SetExtent(into.Extent() + victim.Extent())
	after, ok := victim.Next()
	into.SetNext(after)
	if ok {
		after.SetPrev(into)
	}
}

func (d *splitDir) head() (arena.Header, bool) {
	first := d.free.Min()
	if first == nil {
		return arena.Header{}, false
	}
	return d.ar.HeaderAt(uint64(first.(offsetItem)))
}

func (d *splitDir) available(limit int) []uint64 {
	out := make([]uint64, 0, min(d.free.Len(), limit))
	d.free.Ascend(func(i btree.Item) bool {
		if len(out) >= limit {
			return false
		}
		out = append(out, uint64(i.(offsetItem)))
		return true
	})
	return out
}
