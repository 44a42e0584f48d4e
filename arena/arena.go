package arena

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/format"
)

// Ptr is an arena-relative address.
type Ptr uint64

// Nil is the "no allocation" pointer.
const Nil Ptr = 0

// Arena is a fixed-length byte region addressed by offset.
type Arena struct {
	data []byte
}

// New lays an arena over region. The region must hold at least one minimal block.
func New(region []byte) (*Arena, error) {
	if len(region) < format.MinBlockSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrRegionTooSmall, len(region), format.MinBlockSize)
	}
	return &Arena{data: region}, nil
}

// Bytes returns the whole region.
func (a *Arena) Bytes() []byte { return a.data }

// Len returns the region length in bytes.
func (a *Arena) Len() uint64 { return uint64(len(a.data)) }

// Contains reports whether p addresses a byte inside the arena.
func (a *Arena) Contains(p Ptr) bool {
	return uint64(p) < a.Len()
}

// HeaderAt returns a cursor over the header at off, or false if a full
// header does not fit there.
func (a *Arena) HeaderAt(off uint64) (Header, bool) {
	if !format.HasHeader(a.data, off) {
		return Header{}, false
	}
	return Header{a: a, off: off}, true
}

// HeaderFor recovers the header that precedes payload p.
func (a *Arena) HeaderFor(p Ptr) (Header, bool) {
	if p == Nil || uint64(p) < format.HeaderSize {
		return Header{}, false
	}
	return a.HeaderAt(uint64(p) - format.HeaderSize)
}

// Payload returns n bytes starting at p, truncated at the arena end.
// Returns nil for Nil or an out-of-range p.
func (a *Arena) Payload(p Ptr, n uint64) []byte {
	if p == Nil {
		return nil
	}
	return buf.Clamp(a.data, uint64(p), n)
}
