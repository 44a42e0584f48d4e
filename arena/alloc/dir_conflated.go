package alloc

import "github.com/joshuapare/memkit/arena"

// conflatedDir uses next/prev both as the physical chain and as a LIFO free
// list rooted at hd. Operations follow the classic textbook allocator step by
// step, including its desynchronization of the two roles.
type conflatedDir struct {
	ar *arena.Arena
	hd arena.Header
}

func (d *conflatedDir) layout() Layout { return LayoutConflated }

func (d *conflatedDir) reset(first arena.Header) { d.hd = first }

func (d *conflatedDir) find(required uint64) (arena.Header, bool) {
	if !d.hd.Valid() {
		return arena.Header{}, false
	}
	limit := maxWalk(d.ar)
	for cur, ok := d.hd, true; ok && limit > 0; cur, ok = cur.Next() {
		limit--
		if cur.Occupied() || cur.Extent() < required {
			continue
		}
		// The payload must not run past the arena, whatever the header claims.
		if cur.Offset()+required > d.ar.Len() {
			continue
		}
		return cur, true
	}
	return arena.Header{}, false
}

func (d *conflatedDir) split(h arena.Header, required uint64) bool {
	tail, ok := canSplit(d.ar, h, required)
	if !ok {
		return false
	}
	next, hasNext := h.Next()

	tail.Init(h.Extent() - required)
	tail.SetPrev(h)
	if hasNext {
		tail.SetNext(next)
	}
	h.SetExtent(required)
	h.SetNext(tail)
	if hasNext {
		next.SetPrev(tail)
	}
	return true
}

func (d *conflatedDir) link(h arena.Header) {
	h.SetNext(d.hd)
	h.SetPrev(arena.Header{})
	if d.hd.Valid() {
		d.hd.SetPrev(h)
	}
	d.hd = h
}

func (d *conflatedDir) unlink(h arena.Header) {
	next, hasNext := h.Next()
	prev, hasPrev := h.Prev()
	if hasPrev {
		prev.SetNext(next)
	} else {
		d.hd = next
	}
	if hasNext {
		next.SetPrev(prev)
	}
}

func (d *conflatedDir) coalesce(h arena.Header) (forward, backward bool) {
	if next, ok := h.Next(); ok && !next.Occupied() {
		h.SetExtent(h.Extent() + next.Extent())
		after, hasAfter := next.Next()
		h.SetNext(after)
		if hasAfter {
			after.SetPrev(h)
		}
		forward = true
	}
	if prev, ok := h.Prev(); ok && !prev.Occupied() {
		prev.SetExtent(prev.Extent() + h.Extent())
		next, hasNext := h.Next()
		prev.SetNext(next)
		if hasNext {
			next.SetPrev(prev)
		}
		backward = true
	}
	return forward, backward
}

func (d *conflatedDir) head() (arena.Header, bool) { return d.hd, d.hd.Valid() }

func (d *conflatedDir) available(limit int) []uint64 {
	var out []uint64
	if !d.hd.Valid() {
		return out
	}
	limit = min(limit, maxWalk(d.ar))
	for cur, ok := d.hd, true; ok && len(out) < limit; cur, ok = cur.Next() {
		out = append(out, cur.Offset())
	}
	return out
}
