package format

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/buf"
)

// RawHeader is a decoded copy of a block header.
type RawHeader struct {
	Extent   uint64
	Occupied bool
	Next     uint64 // NilLink when absent
	Prev     uint64 // NilLink when absent
}

// HasHeader reports whether a full header starting at off fits in b.
func HasHeader(b []byte, off uint64) bool {
	if off > uint64(len(b)) {
		return false
	}
	return buf.Has(b, int(off), HeaderSize)
}

// ParseHeader decodes the header at off.
func ParseHeader(b []byte, off uint64) (RawHeader, error) {
	if _, err := buf.CheckRange(uint64(len(b)), off, HeaderSize); err != nil {
		return RawHeader{}, fmt.Errorf("header at 0x%X: %w: %v", off, ErrTruncated, err)
	}
	o := int(off)
	return RawHeader{
		Extent:   ReadU64(b, o+ExtentOffset),
		Occupied: ReadU32(b, o+FlagsOffset) == FlagOccupied,
		Next:     ReadU64(b, o+NextOffset),
		Prev:     ReadU64(b, o+PrevOffset),
	}, nil
}

// WriteHeader encodes h at off. The caller guarantees the header fits.
func WriteHeader(b []byte, off uint64, h RawHeader) {
	o := int(off)
	PutU64(b, o+ExtentOffset, h.Extent)
	var flag uint32
	if h.Occupied {
		flag = FlagOccupied
	}
	PutU32(b, o+FlagsOffset, flag)
	PutU32(b, o+FlagsOffset+4, 0)
	PutU64(b, o+NextOffset, h.Next)
	PutU64(b, o+PrevOffset, h.Prev)
}
