package main

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/joshuapare/memkit/arena"
	"github.com/joshuapare/memkit/arena/alloc"
	"github.com/joshuapare/memkit/arena/printer"
	"github.com/joshuapare/memkit/arena/verify"
	"github.com/joshuapare/memkit/internal/script"
)

// stepResult records the outcome of one script statement.
type stepResult struct {
	Line   int             `json:"line"`
	Stmt   string          `json:"stmt"`
	Ptr    *uint64         `json:"ptr,omitempty"`
	Detail string          `json:"detail,omitempty"`
	Stats  *alloc.Stats    `json:"stats,omitempty"`
	Usage  *alloc.Usage    `json:"usage,omitempty"`
	Dump   *alloc.Snapshot `json:"dump,omitempty"`
}

// runner executes parsed statements against one allocator, binding names to
// pointers as it goes.
type runner struct {
	a     *alloc.Allocator
	names map[string]arena.Ptr
	text  io.Writer // receives stats and dump output in text mode; nil in JSON mode
	dump  printer.Options
}

func newRunner(a *alloc.Allocator, text io.Writer) *runner {
	return &runner{
		a:     a,
		names: make(map[string]arena.Ptr),
		text:  text,
		dump:  printer.DefaultOptions(),
	}
}

// lookup resolves a bound name.
func (r *runner) lookup(st script.Stmt) (arena.Ptr, error) {
	p, ok := r.names[st.Ref]
	if !ok {
		return arena.Nil, fmt.Errorf("line %d: %q is not bound", st.Line, st.Ref)
	}
	return p, nil
}

// payload resolves a name to its payload and checks it can hold n bytes.
func (r *runner) payload(st script.Stmt, n uint64) ([]byte, error) {
	p, err := r.lookup(st)
	if err != nil {
		return nil, err
	}
	if p == arena.Nil {
		return nil, fmt.Errorf("line %d: %q is nil", st.Line, st.Ref)
	}
	data := r.a.Payload(p)
	if uint64(len(data)) < n {
		return nil, fmt.Errorf("line %d: %q holds %d bytes, need %d", st.Line, st.Ref, len(data), n)
	}
	return data[:n], nil
}

func (r *runner) bind(st script.Stmt, p arena.Ptr, res *stepResult) {
	r.names[st.Target] = p
	v := uint64(p)
	res.Ptr = &v
	if p == arena.Nil {
		res.Detail = "nil"
	}
}

// exec runs one statement.
func (r *runner) exec(st script.Stmt) (stepResult, error) {
	res := stepResult{Line: st.Line, Stmt: st.String()}
	log.Debug("exec", zap.Int("line", st.Line), zap.String("stmt", res.Stmt))

	switch st.Op {
	case script.OpAlloc:
		r.bind(st, r.a.Malloc(st.Args[0]), &res)

	case script.OpCalloc:
		r.bind(st, r.a.Calloc(st.Args[0], st.Args[1]), &res)

	case script.OpRealloc:
		p, err := r.lookup(st)
		if err != nil {
			return res, err
		}
		np := r.a.Realloc(p, st.Args[0])
		if np == arena.Nil && st.Args[0] != 0 {
			// Failed move: the old block is still live under its old name.
			v := uint64(np)
			res.Ptr, res.Detail = &v, "nil (old block kept)"
			if st.Target != st.Ref {
				r.names[st.Target] = arena.Nil
			}
			break
		}
		r.bind(st, np, &res)
		if st.Target != st.Ref && np != p {
			delete(r.names, st.Ref)
		}

	case script.OpFree:
		p, err := r.lookup(st)
		if err != nil {
			return res, err
		}
		r.a.Free(p)
		delete(r.names, st.Ref)

	case script.OpFill:
		data, err := r.payload(st, st.Args[1])
		if err != nil {
			return res, err
		}
		for i := range data {
			data[i] = byte(st.Args[0])
		}

	case script.OpExpect:
		data, err := r.payload(st, st.Args[1])
		if err != nil {
			return res, err
		}
		want := bytes.Repeat([]byte{byte(st.Args[0])}, len(data))
		if i := firstDiff(data, want); i >= 0 {
			return res, fmt.Errorf("line %d: %q byte %d is 0x%02X, want 0x%02X", st.Line, st.Ref, i, data[i], want[i])
		}

	case script.OpVerify:
		if err := verify.AllInvariants(r.a.Snapshot()); err != nil {
			return res, fmt.Errorf("line %d: verify: %w", st.Line, err)
		}

	case script.OpStats:
		s, u := r.a.Stats(), r.a.Usage()
		if r.text != nil {
			r.a.PrintStats(r.text)
		} else {
			res.Stats, res.Usage = &s, &u
		}

	case script.OpDump:
		if r.text != nil {
			if err := printer.New(r.text, r.dump).Print(r.a); err != nil {
				return res, err
			}
		} else {
			snap := r.a.Snapshot()
			res.Dump = &snap
		}
	}
	return res, nil
}

func firstDiff(a, b []byte) int {
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return -1
}
