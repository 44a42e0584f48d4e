package alloc

import "errors"

var (
	// ErrBadLayout indicates a layout name other than "split" or "conflated".
	ErrBadLayout = errors.New("alloc: unknown layout")

	// ErrBadRegion indicates a region source that is not recognised.
	ErrBadRegion = errors.New("alloc: unknown region source")

	// ErrArenaTooSmall indicates an arena size below the minimum block size.
	ErrArenaTooSmall = errors.New("alloc: arena size below minimum block size")

	// ErrWalkStalled indicates the physical block walk hit a header it cannot step past.
	ErrWalkStalled = errors.New("alloc: physical walk stalled")
)
