// Package arena models the single fixed-size memory region an allocator
// manages, and the intrusive block headers laid over it.
//
// # Overview
//
// An Arena is a byte region with a start (offset 0) and a length. It owns
// nothing else and never grows. Every block inside it, free or occupied,
// begins with a 32-byte header:
//
//	Offset  Size  Field
//	0x00    8     extent   (block size including the header)
//	0x08    4     occupied (0 free, 1 occupied)
//	0x0C    4     reserved
//	0x10    8     next link (arena offset of a header)
//	0x18    8     prev link
//
// Header is a cursor over those bytes, not a copy: setters write through to
// the arena immediately.
//
// # Pointers
//
// Ptr is an arena-relative offset. A payload pointer always sits HeaderSize
// bytes past its header, so the zero offset can never be a payload and Nil
// (0) doubles as "no allocation".
//
//	a, err := arena.New(make([]byte, 1<<20))
//	if err != nil {
//	    return err
//	}
//	h, _ := a.HeaderAt(0)
//	h.Init(a.Len())
//	p := h.Payload() // Ptr(32)
//
// # Bounds
//
// Every accessor is bounds-safe. Link values that decode to an offset whose
// header would not fit in the arena are reported as absent, so even a damaged
// chain cannot index outside the region.
//
// # Thread Safety
//
// Arena and Header are not safe for concurrent use. Callers serialize access
// externally (see package locked).
package arena
