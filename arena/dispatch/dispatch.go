// Package dispatch maps small integer operation codes onto the four
// allocation entry points, for callers that can only pass a code and a block
// of machine words.
//
//	t := dispatch.New(a)
//	p := t.Dispatch(dispatch.SysMalloc, []uint64{100})
//	t.Dispatch(dispatch.SysFree, []uint64{uint64(p)})
//
// Results are pointer-sized: an arena offset for the allocating calls, 0 for
// free, Failure for an unknown code.
package dispatch

import "github.com/joshuapare/memkit/arena"

// Operation codes.
const (
	SysMalloc  = 100
	SysFree    = 101
	SysCalloc  = 102
	SysRealloc = 103
)

// Failure is returned for an unknown code.
const Failure int64 = -1

// Allocator is the operation surface a table dispatches to.
type Allocator interface {
	Malloc(size uint64) arena.Ptr
	Free(p arena.Ptr)
	Calloc(count, size uint64) arena.Ptr
	Realloc(p arena.Ptr, size uint64) arena.Ptr
}

// Handler runs one operation. An argument block shorter than the operation
// needs yields 0.
type Handler func(a Allocator, args []uint64) int64

// Entry is one row of the code table.
type Entry struct {
	Code    int
	Name    string
	Handler Handler
}

var entries = []Entry{
	{SysMalloc, "malloc", sysMalloc},
	{SysFree, "free", sysFree},
	{SysCalloc, "calloc", sysCalloc},
	{SysRealloc, "realloc", sysRealloc},
}

func sysMalloc(a Allocator, args []uint64) int64 {
	if len(args) < 1 {
		return 0
	}
	return int64(a.Malloc(args[0]))
}

func sysFree(a Allocator, args []uint64) int64 {
	if len(args) >= 1 {
		a.Free(arena.Ptr(args[0]))
	}
	return 0
}

func sysCalloc(a Allocator, args []uint64) int64 {
	if len(args) < 2 {
		return 0
	}
	return int64(a.Calloc(args[0], args[1]))
}

func sysRealloc(a Allocator, args []uint64) int64 {
	if len(args) < 2 {
		return 0
	}
	return int64(a.Realloc(arena.Ptr(args[0]), args[1]))
}

// Lookup returns the handler registered for code.
func Lookup(code int) (Handler, bool) {
	for _, e := range entries {
		if e.Code == code {
			return e.Handler, true
		}
	}
	return nil, false
}

// Name returns the operation name for code, or "unknown".
func Name(code int) string {
	for _, e := range entries {
		if e.Code == code {
			return e.Name
		}
	}
	return "unknown"
}

// Entries returns a copy of the code table.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Table dispatches codes to one allocator.
type Table struct {
	a Allocator
}

// New binds a table to a.
func New(a Allocator) *Table { return &Table{a: a} }

// Dispatch runs the operation for code with args.
func (t *Table) Dispatch(code int, args []uint64) int64 {
	h, ok := Lookup(code)
	if !ok {
		return Failure
	}
	return h(t.a, args)
}
