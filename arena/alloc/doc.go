// Package alloc implements a first-fit block allocator over a single,
// fixed-size arena.
//
// # Overview
//
// The allocator hands out variable-sized payloads carved from one contiguous
// region. It never grows and never returns memory to the region's owner.
// Every block carries a 32-byte intrusive header (see package arena); the
// allocator keeps a directory of those blocks and serves the classic
// allocation family on top of it:
//
//   - Malloc(size): first fit, split when the remainder can stand alone
//   - Free(p): mark free, make available, coalesce with free neighbours
//   - Calloc(count, size): Malloc(count*size) followed by zero-fill
//   - Realloc(p, size): keep in place when it fits, otherwise move
//
// None of the entry points return errors. Exhaustion, a zero size, an
// invalid pointer and a failed lazy initialization all yield arena.Nil.
//
// # Sizing
//
// A request of n bytes occupies Align8(n + 32) bytes, and never less than
// MinBlockSize (40). A block is split only when the piece left over is at
// least MinBlockSize; otherwise the caller gets the whole block.
//
// # Layouts
//
// Two directory layouts are available through Config.Layout.
//
// LayoutSplit (default) keeps the header links as the address-ordered
// physical chain and tracks availability in a separate B-tree free index
// keyed by offset. Search is address-ordered first fit. After every
// operation the chain tiles the arena, no two free blocks are adjacent and
// the free index holds exactly the free blocks.
//
// LayoutConflated reuses the same link pair as both physical chain and LIFO
// free list, exactly like the classic textbook allocator this package is
// modelled on. The two roles interfere: after a few frees the links no longer
// describe physical neighbours and coalescing may merge non-adjacent blocks.
// It exists for behavioural parity tests. All accesses stay inside the
// arena, but structural invariants are not guaranteed.
//
// # Usage Example
//
//	a, err := alloc.New(alloc.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	p := a.Malloc(100)
//	if p == arena.Nil {
//	    return errors.New("out of memory")
//	}
//	copy(a.Payload(p), "hello")
//	p = a.Realloc(p, 400)
//	a.Free(p)
//
// # Initialization
//
// New returns an allocator without an arena. The first Malloc, Calloc or
// Realloc(Nil, n) acquires a region of Config.ArenaSize bytes from
// Config.Region and lays the arena over it. Init or NewWithRegion install a
// caller-owned region instead. Free before initialization is a no-op.
//
// # Logging
//
// Debug events (initialization, exhaustion, ignored frees, splits, coalesces)
// go to Config.Logger. When no logger is configured and MEMKIT_LOG_ALLOC is
// set in the environment, a development logger on stderr is used.
//
// # Thread Safety
//
// Allocator is NOT safe for concurrent use. Wrap it with package locked or
// serialize calls externally.
package alloc
