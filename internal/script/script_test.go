package script

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse_AllStatements(t *testing.T) {
	src := `
# set up
a = alloc 100
b = calloc 10 0x4   # ten words
fill a 'A' 100
a = realloc a 0x200
expect a 65 100
free b
verify
stats
dump
`
	got, err := ParseString(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Stmt{
		{Line: 3, Op: OpAlloc, Target: "a", Args: []uint64{100}},
		{Line: 4, Op: OpCalloc, Target: "b", Args: []uint64{10, 4}},
		{Line: 5, Op: OpFill, Ref: "a", Args: []uint64{'A', 100}},
		{Line: 6, Op: OpRealloc, Target: "a", Ref: "a", Args: []uint64{0x200}},
		{Line: 7, Op: OpExpect, Ref: "a", Args: []uint64{65, 100}},
		{Line: 8, Op: OpFree, Ref: "b"},
		{Line: 9, Op: OpVerify},
		{Line: 10, Op: OpStats},
		{Line: 11, Op: OpDump},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"unknown statement", "launch rocket", 1},
		{"unassigned alloc", "alloc 10", 1},
		{"bad size", "a = alloc ten", 1},
		{"negative size", "a = alloc -1", 1},
		{"missing size", "a = alloc", 1},
		{"missing op", "a =", 1},
		{"bad name", "1a = alloc 8", 1},
		{"calloc arity", "a = calloc 1", 1},
		{"realloc name", "a = realloc 9 8", 1},
		{"byte too big", "a = alloc 8\nfill a 256 1", 2},
		{"fill arity", "fill a 1", 1},
		{"free arity", "free", 1},
		{"verify operands", "verify now", 1},
		{"assign free", "x = free a", 1},
		{"line number after comments", "# one\n\n# three\nbogus", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if perr.Line != tt.line {
				t.Errorf("line = %d, want %d", perr.Line, tt.line)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"0x10", 16, true},
		{"0XfF", 255, true},
		{"18446744073709551615", 1<<64 - 1, true},
		{"18446744073709551616", 0, false},
		{"0x", 0, false},
		{"-5", 0, false},
		{"1e3", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseNumber(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStmt_String(t *testing.T) {
	st := Stmt{Op: OpRealloc, Target: "a", Ref: "b", Args: []uint64{64}}
	if got := st.String(); got != "a = realloc b 64" {
		t.Errorf("String() = %q", got)
	}
	if got := (Stmt{Op: OpVerify}).String(); got != "verify" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseError_Message(t *testing.T) {
	err := &ParseError{Line: 7, Text: "bogus", Msg: "unknown statement"}
	if got := err.Error(); got != `script: line 7: unknown statement: "bogus"` {
		t.Errorf("Error() = %q", got)
	}
}
