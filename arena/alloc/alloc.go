package alloc

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/joshuapare/memkit/arena"
	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/internal/region"
)

// Allocator serves Malloc/Free/Calloc/Realloc from one arena.
type Allocator struct {
	cfg Config
	log *zap.Logger

	ar  *arena.Arena
	dir directory

	// owned is the region acquired on lazy init; nil when the caller
	// supplied the bytes.
	owned *region.Region

	stats Stats
}

// New builds an allocator that acquires its arena on first use.
// A nil cfg means DefaultConfig.
func New(cfg *Config) (*Allocator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := cfg.normalized()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Allocator{cfg: c, log: c.logger()}, nil
}

// NewWithRegion builds an allocator over a caller-owned region.
func NewWithRegion(mem []byte, cfg *Config) (*Allocator, error) {
	a, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := a.Init(mem); err != nil {
		return nil, err
	}
	return a, nil
}

// Init lays the arena over mem. It is a no-op when the allocator is already
// initialized. On error the allocator stays uninitialized.
func (a *Allocator) Init(mem []byte) error {
	if a.ar != nil {
		return nil
	}
	ar, err := arena.New(mem)
	if err != nil {
		return fmt.Errorf("alloc: init: %w", err)
	}
	a.install(ar)
	return nil
}

func (a *Allocator) install(ar *arena.Arena) {
	first, _ := ar.HeaderAt(0)
	first.Init(ar.Len())
	a.ar = ar
	a.dir = newDirectory(a.cfg.Layout, ar)
	a.dir.reset(first)
	a.log.Debug("arena initialized",
		zap.Uint64("size", ar.Len()),
		zap.String("layout", string(a.cfg.Layout)))
}

// ensureInit acquires and installs a region on first use.
func (a *Allocator) ensureInit() bool {
	if a.ar != nil {
		return true
	}
	r, err := region.Acquire(a.cfg.Region, a.cfg.ArenaSize)
	if err != nil {
		a.log.Debug("lazy init failed", zap.Error(err))
		return false
	}
	ar, err := arena.New(r.Bytes())
	if err != nil {
		_ = r.Close()
		a.log.Debug("lazy init failed", zap.Error(err))
		return false
	}
	a.owned = r
	a.install(ar)
	return true
}

// Initialized reports whether an arena is installed.
func (a *Allocator) Initialized() bool { return a.ar != nil }

// Arena returns the installed arena, or nil before initialization.
func (a *Allocator) Arena() *arena.Arena { return a.ar }

// Layout returns the directory layout in use.
func (a *Allocator) Layout() Layout { return a.cfg.Layout }

// Close releases a region acquired on lazy init and returns the allocator to
// the uninitialized state. A caller-supplied region is left alone.
func (a *Allocator) Close() error {
	a.ar = nil
	a.dir = nil
	if a.owned == nil {
		return nil
	}
	r := a.owned
	a.owned = nil
	return r.Close()
}

// requiredExtent converts a request into a block extent: header added,
// floored at MinBlockSize, rounded up to the alignment.
func requiredExtent(size uint64) uint64 {
	total := size + format.HeaderSize
	if total < format.MinBlockSize {
		total = format.MinBlockSize
	}
	return format.Align8U64(total)
}

// Malloc returns a pointer to at least size bytes, or arena.Nil.
func (a *Allocator) Malloc(size uint64) arena.Ptr {
	a.stats.AllocCalls++
	if !a.ensureInit() {
		a.stats.AllocFailures++
		return arena.Nil
	}
	if size == 0 {
		return arena.Nil
	}
	if size > a.ar.Len() {
		a.stats.AllocFailures++
		a.log.Debug("request larger than arena", zap.Uint64("size", size))
		return arena.Nil
	}

	total := requiredExtent(size)
	h, ok := a.dir.find(total)
	if !ok {
		a.stats.AllocFailures++
		a.log.Debug("arena exhausted", zap.Uint64("size", size), zap.Uint64("required", total))
		return arena.Nil
	}

	if a.dir.split(h, total) {
		a.stats.SplitCount++
		if ce := a.log.Check(zapcore.DebugLevel, "split"); ce != nil {
			ce.Write(zap.Uint64("offset", h.Offset()),
				zap.Uint64("kept", total),
				zap.Uint64("tail", h.Offset()+total))
		}
	}
	h.SetOccupied(true)
	a.dir.unlink(h)

	a.stats.BytesAllocated += h.Extent()
	return h.Payload()
}

// Free releases a block. Nil, an uninitialized allocator and pointers whose
// header does not lie inside the arena are ignored.
func (a *Allocator) Free(p arena.Ptr) {
	a.stats.FreeCalls++
	if p == arena.Nil || a.ar == nil {
		return
	}
	h, ok := a.ar.HeaderFor(p)
	if !ok {
		a.stats.FreeIgnored++
		a.log.Debug("free ignored", zap.Uint64("ptr", uint64(p)))
		return
	}

	a.stats.BytesFreed += h.Extent()
	h.SetOccupied(false)
	a.dir.link(h)

	fwd, back := a.dir.coalesce(h)
	if fwd {
		a.stats.CoalesceForward++
	}
	if back {
		a.stats.CoalesceBackward++
	}
	if fwd || back {
		if ce := a.log.Check(zapcore.DebugLevel, "coalesce"); ce != nil {
			ce.Write(zap.Uint64("offset", h.Offset()), zap.Bool("forward", fwd), zap.Bool("backward", back))
		}
	}
}

// Calloc allocates count*size zeroed bytes. The product wraps on overflow
// unless Config.CheckCallocOverflow is set.
func (a *Allocator) Calloc(count, size uint64) arena.Ptr {
	a.stats.CallocCalls++
	n, ok := buf.MulU64(count, size)
	if !ok && a.cfg.CheckCallocOverflow {
		a.stats.AllocFailures++
		a.log.Debug("calloc overflow", zap.Uint64("count", count), zap.Uint64("size", size))
		return arena.Nil
	}
	p := a.Malloc(n)
	if p != arena.Nil {
		clear(a.ar.Payload(p, n))
	}
	return p
}

// Realloc resizes the block at p. A block that already holds size bytes is
// returned unchanged; otherwise the payload moves to a new block and the old
// one is freed. When the new allocation fails the old block is untouched and
// Nil is returned.
func (a *Allocator) Realloc(p arena.Ptr, size uint64) arena.Ptr {
	a.stats.ReallocCalls++
	if p == arena.Nil {
		return a.Malloc(size)
	}
	if size == 0 {
		a.Free(p)
		return arena.Nil
	}
	if a.ar == nil {
		return arena.Nil
	}
	h, ok := a.ar.HeaderFor(p)
	if !ok {
		return arena.Nil
	}

	old := h.PayloadSize()
	if size <= old {
		a.stats.ReallocInPlace++
		return p
	}

	np := a.Malloc(size)
	if np == arena.Nil {
		return arena.Nil
	}
	copy(a.ar.Payload(np, old), a.ar.Payload(p, old))
	a.Free(p)
	a.stats.ReallocMoved++
	return np
}

// Payload returns the usable bytes of the occupied block at p, or nil. A p
// at or past the arena end addresses no payload.
func (a *Allocator) Payload(p arena.Ptr) []byte {
	if a.ar == nil || !a.ar.Contains(p) {
		return nil
	}
	h, ok := a.ar.HeaderFor(p)
	if !ok || !h.Occupied() {
		return nil
	}
	return a.ar.Payload(p, h.PayloadSize())
}

// UsableSize returns the payload capacity of the block at p, or 0.
func (a *Allocator) UsableSize(p arena.Ptr) uint64 {
	if a.ar == nil || !a.ar.Contains(p) {
		return 0
	}
	h, ok := a.ar.HeaderFor(p)
	if !ok {
		return 0
	}
	return h.PayloadSize()
}
