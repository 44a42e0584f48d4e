package memkit

import (
	"sync"

	"github.com/joshuapare/memkit/arena"
	"github.com/joshuapare/memkit/arena/alloc"
	"github.com/joshuapare/memkit/arena/locked"
)

// Ptr is an arena-relative address.
type Ptr = arena.Ptr

// Nil is the "no allocation" pointer.
const Nil = arena.Nil

var (
	mu  sync.Mutex
	def *locked.Allocator
)

// Default returns the shared allocator, creating it on first use.
func Default() *locked.Allocator {
	mu.Lock()
	defer mu.Unlock()
	if def == nil {
		// DefaultConfig always validates.
		a, _ := alloc.New(alloc.DefaultConfig())
		def = locked.New(a)
	}
	return def
}

// SetDefault replaces the shared allocator and returns the previous one,
// which may be nil. Passing nil makes the next call build a fresh default.
func SetDefault(l *locked.Allocator) *locked.Allocator {
	mu.Lock()
	defer mu.Unlock()
	prev := def
	def = l
	return prev
}

// Malloc allocates size bytes from the shared arena.
func Malloc(size uint64) Ptr { return Default().Malloc(size) }

// Free releases p back to the shared arena.
func Free(p Ptr) { Default().Free(p) }

// Calloc allocates count*size zeroed bytes from the shared arena.
func Calloc(count, size uint64) Ptr { return Default().Calloc(count, size) }

// Realloc resizes p within the shared arena.
func Realloc(p Ptr, size uint64) Ptr { return Default().Realloc(p, size) }

// Payload returns the usable bytes of the occupied block at p.
func Payload(p Ptr) []byte { return Default().Payload(p) }
