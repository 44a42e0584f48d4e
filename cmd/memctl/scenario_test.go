package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/memkit/arena/alloc"
)

func TestScenarioCommand(t *testing.T) {
	resetFlags(t)
	output, err := captureOutput(t, func() error {
		return runScenario(nil)
	})
	if err != nil {
		t.Fatalf("scenario failed: %v\nOutput: %s", err, output)
	}
	assertContains(t, output, []string{
		"ok    basic",
		"ok    calloc",
		"ok    realloc",
		"ok    fragmentation",
		"ok    edge cases",
		"ok    dispatch",
		"6/6 checks passed (layout split)",
	})
	assertNotContains(t, output, []string{"FAIL"})
}

func TestScenarioCommand_JSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	output, err := captureOutput(t, func() error {
		return runScenario(nil)
	})
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"layout": "split"`, `"name": "dispatch"`, `"ok": true`})
}

func TestScenarioCommand_SmallArena(t *testing.T) {
	resetFlags(t)
	arenaSize = 4096
	output, err := captureOutput(t, func() error {
		return runScenario(nil)
	})
	if err != nil {
		t.Fatalf("scenario failed: %v\nOutput: %s", err, output)
	}
	assertContains(t, output, []string{"6/6 checks passed"})
}

func TestRunChecks_RecordsFailures(t *testing.T) {
	a, err := alloc.New(alloc.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	results := runChecks(a, []check{
		{"passes", func(*alloc.Allocator) error { return nil }},
		{"fails", func(*alloc.Allocator) error { return errors.New("boom") }},
		{"panics", func(*alloc.Allocator) error { panic("bad index") }},
	})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if !results[0].OK {
		t.Errorf("passes: got failure %q", results[0].Error)
	}
	if results[1].OK || results[1].Error != "boom" {
		t.Errorf("fails: got %+v", results[1])
	}
	if results[2].OK || !strings.Contains(results[2].Error, "panic: bad index") {
		t.Errorf("panics: got %+v", results[2])
	}
}

func TestNewAllocator_ConfigAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memkit.toml")
	body := "arena_size = 8192\nlayout = \"conflated\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		size       int
		layout     string
		wantLen    uint64
		wantLayout alloc.Layout
	}{
		{name: "from file", wantLen: 8192, wantLayout: alloc.LayoutConflated},
		{name: "size override", size: 2048, wantLen: 2048, wantLayout: alloc.LayoutConflated},
		{name: "layout override", layout: "split", wantLen: 8192, wantLayout: alloc.LayoutSplit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			configPath = path
			arenaSize = tt.size
			layoutName = tt.layout

			a, err := newAllocator()
			if err != nil {
				t.Fatalf("newAllocator: %v", err)
			}
			defer a.Close()

			if a.Layout() != tt.wantLayout {
				t.Errorf("layout = %s, want %s", a.Layout(), tt.wantLayout)
			}
			if p := a.Malloc(16); p == 0 {
				t.Fatal("malloc failed")
			}
			if got := a.Arena().Len(); got != tt.wantLen {
				t.Errorf("arena len = %d, want %d", got, tt.wantLen)
			}
		})
	}
}

func TestNewAllocator_BadLayout(t *testing.T) {
	resetFlags(t)
	layoutName = "buddy"
	if _, err := newAllocator(); !errors.Is(err, alloc.ErrBadLayout) {
		t.Fatalf("expected ErrBadLayout, got %v", err)
	}
}
