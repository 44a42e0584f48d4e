/*
Package memkit provides process-wide Malloc, Free, Calloc and Realloc
functions over one shared, mutex-protected arena.

# Quick Start

	p := memkit.Malloc(100)
	if p == memkit.Nil {
	    log.Fatal("out of memory")
	}
	copy(memkit.Payload(p), "hello")
	p = memkit.Realloc(p, 400)
	memkit.Free(p)

# Default Instance

The default allocator is created on first use with alloc.DefaultConfig: a
1 MiB heap-backed arena and the split layout. Its region is acquired by the
first allocating call.

Use Default to reach the wrapped allocator for stats or snapshots, and
SetDefault to install a differently configured one:

	a, err := alloc.New(&alloc.Config{ArenaSize: 64 << 10, Layout: alloc.LayoutConflated})
	if err != nil {
	    return err
	}
	prev := memkit.SetDefault(locked.New(a))
	defer memkit.SetDefault(prev)

# Independent Arenas

The package-level functions all share one arena. Code that wants isolated
arenas, for example one per test, builds its own with alloc.New or
alloc.NewWithRegion and calls the methods directly.

# Thread Safety

All functions are safe for concurrent use.
*/
package memkit
