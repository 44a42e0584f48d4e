package arena

import "github.com/joshuapare/memkit/internal/format"

// Header is a cursor over one block header inside an arena.
// The zero Header is invalid; obtain headers from Arena.HeaderAt.
type Header struct {
	a   *Arena
	off uint64
}

// Offset returns the arena offset of the header.
func (h Header) Offset() uint64 { return h.off }

// Valid reports whether h refers to a header.
func (h Header) Valid() bool { return h.a != nil }

// Same reports whether h and o are the same header.
func (h Header) Same(o Header) bool { return h.a == o.a && h.off == o.off }

// Payload returns the pointer just past the header.
func (h Header) Payload() Ptr { return Ptr(h.off + format.HeaderSize) }

// Init writes a fresh free header of the given extent with no links.
func (h Header) Init(extent uint64) {
	format.WriteHeader(h.a.data, h.off, format.RawHeader{
		Extent: extent,
		Next:   format.NilLink,
		Prev:   format.NilLink,
	})
}

// Raw returns a decoded copy of the header fields.
func (h Header) Raw() format.RawHeader {
	r, _ := format.ParseHeader(h.a.data, h.off)
	return r
}

// Extent returns the total block size including the header.
func (h Header) Extent() uint64 {
	return format.ReadU64(h.a.data, int(h.off)+format.ExtentOffset)
}

// SetExtent updates the block size.
func (h Header) SetExtent(n uint64) {
	format.PutU64(h.a.data, int(h.off)+format.ExtentOffset, n)
}

// End returns the offset one past the block.
func (h Header) End() uint64 { return h.off + h.Extent() }

// PayloadSize returns the usable bytes behind the header.
func (h Header) PayloadSize() uint64 {
	ext := h.Extent()
	if ext < format.HeaderSize {
		return 0
	}
	return ext - format.HeaderSize
}

// Occupied reports whether the block is handed out.
func (h Header) Occupied() bool {
	return format.ReadU32(h.a.data, int(h.off)+format.FlagsOffset) == format.FlagOccupied
}

// SetOccupied flips the occupancy flag.
func (h Header) SetOccupied(v bool) {
	var flag uint32
	if v {
		flag = format.FlagOccupied
	}
	format.PutU32(h.a.data, int(h.off)+format.FlagsOffset, flag)
}

// NextLink returns the raw next link value.
func (h Header) NextLink() uint64 {
	return format.ReadU64(h.a.data, int(h.off)+format.NextOffset)
}

// PrevLink returns the raw prev link value.
func (h Header) PrevLink() uint64 {
	return format.ReadU64(h.a.data, int(h.off)+format.PrevOffset)
}

// Next follows the next link.
func (h Header) Next() (Header, bool) { return h.follow(h.NextLink()) }

// Prev follows the prev link.
func (h Header) Prev() (Header, bool) { return h.follow(h.PrevLink()) }

// SetNext points the next link at n; an invalid n clears the link.
func (h Header) SetNext(n Header) {
	format.PutU64(h.a.data, int(h.off)+format.NextOffset, linkOf(n))
}

// SetPrev points the prev link at p; an invalid p clears the link.
func (h Header) SetPrev(p Header) {
	format.PutU64(h.a.data, int(h.off)+format.PrevOffset, linkOf(p))
}

func (h Header) follow(link uint64) (Header, bool) {
	if link == format.NilLink {
		return Header{}, false
	}
	return h.a.HeaderAt(link)
}

func linkOf(h Header) uint64 {
	if !h.Valid() {
		return format.NilLink
	}
	return h.off
}
