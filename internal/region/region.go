// Package region acquires the backing memory an arena is laid over.
//
// A region is obtained once, at allocator start-up, and stays at a fixed
// address for the life of the arena. Two sources are supported:
//
//   - SourceHeap: a Go-heap byte slice (portable, zeroed).
//   - SourceMmap: an anonymous private mapping (unix) or a committed
//     VirtualAlloc range (windows). Pages are zero-filled by the OS.
package region

import (
	"errors"
	"fmt"
)

// Source names where a region's bytes come from.
type Source string

const (
	// SourceHeap allocates the region as an ordinary Go byte slice.
	SourceHeap Source = "heap"

	// SourceMmap maps the region directly from the OS.
	SourceMmap Source = "mmap"
)

var (
	// ErrUnsupported indicates the source is not available on this platform.
	ErrUnsupported = errors.New("region: source not supported on this platform")

	// ErrBadSize indicates a non-positive region size.
	ErrBadSize = errors.New("region: size must be positive")

	// ErrUnknownSource indicates a source name that is not recognised.
	ErrUnknownSource = errors.New("region: unknown source")
)

// Region is a contiguous, fixed-length byte range.
type Region struct {
	data    []byte
	release func([]byte) error
	src     Source
}

// Acquire obtains size bytes from src.
func Acquire(src Source, size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	switch src {
	case SourceHeap, "":
		return &Region{data: make([]byte, size), src: SourceHeap}, nil
	case SourceMmap:
		data, err := mapAnon(size)
		if err != nil {
			return nil, fmt.Errorf("region: map %d bytes: %w", size, err)
		}
		return &Region{data: data, release: unmapAnon, src: SourceMmap}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, src)
	}
}

// Valid reports whether src names a known source.
func Valid(src Source) bool {
	return src == "" || src == SourceHeap || src == SourceMmap
}

// Bytes returns the region's backing bytes. Nil after Close.
func (r *Region) Bytes() []byte { return r.data }

// Len returns the region length in bytes.
func (r *Region) Len() int { return len(r.data) }

// Source returns where the region came from.
func (r *Region) Source() Source { return r.src }

// Close hands the bytes back to their owner. Calling Close twice is a no-op.
func (r *Region) Close() error {
	if r == nil || r.data == nil {
		return nil
	}
	data := r.data
	r.data = nil
	if r.release == nil {
		return nil
	}
	return r.release(data)
}
