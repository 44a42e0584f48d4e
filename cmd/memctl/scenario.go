package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/memkit/arena"
	"github.com/joshuapare/memkit/arena/alloc"
	"github.com/joshuapare/memkit/arena/dispatch"
	"github.com/joshuapare/memkit/arena/verify"
)

func init() {
	rootCmd.AddCommand(newScenarioCmd())
}

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Run the built-in allocator self-check",
		Long: `The scenario command replays a fixed sequence of allocations against a
fresh arena: basic allocation, calloc, realloc, fragmentation, edge cases and
the operation-code table. With the split layout the block directory is
verified after every check.

Example:
  memctl scenario
  memctl scenario --layout conflated
  memctl scenario --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(args)
		},
	}
	return cmd
}

// check is one named step of the self-check.
type check struct {
	name string
	fn   func(a *alloc.Allocator) error
}

type checkResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

var scenarioChecks = []check{
	{"basic", checkBasic},
	{"calloc", checkCalloc},
	{"realloc", checkRealloc},
	{"fragmentation", checkFragmentation},
	{"edge cases", checkEdgeCases},
	{"dispatch", checkDispatch},
}

var errScenarioFailed = errors.New("scenario failed")

func runScenario(args []string) error {
	a, err := newAllocator()
	if err != nil {
		return err
	}
	defer a.Close()

	results := runChecks(a, scenarioChecks)

	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}

	if jsonOut {
		if err := printJSON(map[string]any{
			"layout": a.Layout(),
			"checks": results,
			"stats":  a.Stats(),
		}); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.OK {
				printInfo("ok    %s\n", r.Name)
			} else {
				printInfo("FAIL  %s: %s\n", r.Name, r.Error)
			}
		}
		printInfo("\n%d/%d checks passed (layout %s)\n", len(results)-failed, len(results), a.Layout())
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d checks", errScenarioFailed, failed, len(results))
	}
	return nil
}

// runChecks runs every check in order against a. A panicking check is
// recorded as a failure.
func runChecks(a *alloc.Allocator, checks []check) []checkResult {
	results := make([]checkResult, 0, len(checks))
	for _, c := range checks {
		err := runCheck(a, c)
		if err == nil && a.Layout() == alloc.LayoutSplit {
			err = verify.AllInvariants(a.Snapshot())
		}
		r := checkResult{Name: c.name, OK: err == nil}
		if err != nil {
			r.Error = err.Error()
			log.Warn("check failed", zap.String("check", c.name), zap.Error(err))
		}
		results = append(results, r)
	}
	return results
}

func runCheck(a *alloc.Allocator, c check) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.fn(a)
}

// fill writes b into the first n payload bytes of p.
func fill(a *alloc.Allocator, p arena.Ptr, b byte, n int) error {
	data := a.Payload(p)
	if len(data) < n {
		return fmt.Errorf("block 0x%X holds %d bytes, need %d", p, len(data), n)
	}
	copy(data, bytes.Repeat([]byte{b}, n))
	return nil
}

func checkBasic(a *alloc.Allocator) error {
	p1 := a.Malloc(100)
	if p1 == arena.Nil {
		return errors.New("malloc(100) failed")
	}
	p2 := a.Malloc(200)
	if p2 == arena.Nil {
		return errors.New("malloc(200) failed")
	}
	if err := fill(a, p1, 'A', 100); err != nil {
		return err
	}
	if err := fill(a, p2, 'B', 200); err != nil {
		return err
	}
	if a.Payload(p1)[0] != 'A' || a.Payload(p2)[0] != 'B' {
		return errors.New("payload bytes overwritten")
	}
	a.Free(p1)
	a.Free(p2)
	return nil
}

func checkCalloc(a *alloc.Allocator) error {
	const count, size = 10, 4
	p := a.Calloc(count, size)
	if p == arena.Nil {
		return errors.New("calloc(10, 4) failed")
	}
	data := a.Payload(p)[:count*size]
	for i, b := range data {
		if b != 0 {
			return fmt.Errorf("byte %d is 0x%02X, want 0", i, b)
		}
	}
	for i := range data {
		data[i] = byte(i)
	}
	a.Free(p)
	return nil
}

func checkRealloc(a *alloc.Allocator) error {
	p := a.Malloc(10)
	if p == arena.Nil {
		return errors.New("malloc(10) failed")
	}
	copy(a.Payload(p), "hello")

	grown := a.Realloc(p, 20)
	if grown == arena.Nil {
		return errors.New("realloc to 20 failed")
	}
	if got := string(a.Payload(grown)[:5]); got != "hello" {
		return fmt.Errorf("after grow payload is %q, want %q", got, "hello")
	}
	copy(a.Payload(grown)[5:], " world")
	if got := string(a.Payload(grown)[:11]); got != "hello world" {
		return fmt.Errorf("payload is %q, want %q", got, "hello world")
	}

	shrunk := a.Realloc(grown, 5)
	if shrunk == arena.Nil {
		return errors.New("realloc to 5 failed")
	}
	if got := string(a.Payload(shrunk)[:4]); got != "hell" {
		return fmt.Errorf("after shrink payload is %q, want %q", got, "hell")
	}
	a.Free(shrunk)
	return nil
}

func checkFragmentation(a *alloc.Allocator) error {
	var ptrs [10]arena.Ptr
	for i := range ptrs {
		if ptrs[i] = a.Malloc(50); ptrs[i] == arena.Nil {
			return fmt.Errorf("malloc(50) #%d failed", i)
		}
	}
	for i := 0; i < len(ptrs); i += 2 {
		a.Free(ptrs[i])
	}
	large := a.Malloc(200)
	if large == arena.Nil {
		return errors.New("malloc(200) failed with fragmented arena")
	}
	for i := 1; i < len(ptrs); i += 2 {
		a.Free(ptrs[i])
	}
	a.Free(large)
	return nil
}

func checkEdgeCases(a *alloc.Allocator) error {
	if p := a.Malloc(0); p != arena.Nil {
		return fmt.Errorf("malloc(0) = 0x%X, want nil", p)
	}
	a.Free(arena.Nil)
	if !a.Initialized() {
		return errors.New("arena not initialized")
	}
	if p := a.Malloc(a.Arena().Len()); p != arena.Nil {
		return fmt.Errorf("malloc of the whole arena = 0x%X, want nil", p)
	}
	return nil
}

func checkDispatch(a *alloc.Allocator) error {
	t := dispatch.New(a)

	r := t.Dispatch(dispatch.SysMalloc, []uint64{100})
	if r == 0 {
		return errors.New("malloc code returned nil")
	}
	if got := t.Dispatch(dispatch.SysFree, []uint64{uint64(r)}); got != 0 {
		return fmt.Errorf("free code returned %d, want 0", got)
	}

	c := t.Dispatch(dispatch.SysCalloc, []uint64{10, 4})
	if c == 0 {
		return errors.New("calloc code returned nil")
	}
	rr := t.Dispatch(dispatch.SysRealloc, []uint64{uint64(c), 200})
	if rr == 0 {
		return errors.New("realloc code returned nil")
	}
	t.Dispatch(dispatch.SysFree, []uint64{uint64(rr)})

	if got := t.Dispatch(999, nil); got != dispatch.Failure {
		return fmt.Errorf("unknown code returned %d, want %d", got, dispatch.Failure)
	}
	return nil
}
