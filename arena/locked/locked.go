// Package locked serializes access to an allocator with a mutex so one arena
// can be shared between goroutines.
//
// Payload slices returned by Payload alias arena memory; the caller must not
// touch them after the block is freed by any goroutine. Use With to run a
// compound operation (allocate then fill, for example) under one lock.
package locked

import (
	"sync"

	"github.com/joshuapare/memkit/arena"
	"github.com/joshuapare/memkit/arena/alloc"
)

// Allocator is a mutex-protected wrapper around alloc.Allocator.
// All operations are safe for concurrent use.
type Allocator struct {
	mu sync.Mutex
	a  *alloc.Allocator
}

// New wraps a. The caller gives up direct access to a.
func New(a *alloc.Allocator) *Allocator {
	return &Allocator{a: a}
}

// Malloc thread-safely allocates size bytes.
func (l *Allocator) Malloc(size uint64) arena.Ptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Malloc(size)
}

// Free thread-safely releases p.
func (l *Allocator) Free(p arena.Ptr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Free(p)
}

// Calloc thread-safely allocates count*size zeroed bytes.
func (l *Allocator) Calloc(count, size uint64) arena.Ptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Calloc(count, size)
}

// Realloc thread-safely resizes p.
func (l *Allocator) Realloc(p arena.Ptr, size uint64) arena.Ptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Realloc(p, size)
}

// Payload thread-safely looks up the payload of p.
func (l *Allocator) Payload(p arena.Ptr) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Payload(p)
}

// Stats thread-safely copies the counters.
func (l *Allocator) Stats() alloc.Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

// Usage thread-safely walks the arena.
func (l *Allocator) Usage() alloc.Usage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Usage()
}

// Snapshot thread-safely copies the directory.
func (l *Allocator) Snapshot() alloc.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Snapshot()
}

// With runs fn with the lock held.
func (l *Allocator) With(fn func(a *alloc.Allocator)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.a)
}

// Close thread-safely releases the wrapped allocator's region.
func (l *Allocator) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Close()
}
