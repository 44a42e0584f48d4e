// Package script parses the line-oriented operation scripts memctl runs
// against an allocator.
//
// One statement per line; '#' starts a comment:
//
//	a = alloc 100
//	b = calloc 10 4
//	fill a 'A' 100
//	a = realloc a 0x200
//	expect a 'A' 100
//	free b
//	verify
//	stats
//	dump
//
// Numbers are decimal or 0x-prefixed hex. A byte operand may also be a
// single character in single quotes.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Op names a statement kind.
type Op string

const (
	OpAlloc   Op = "alloc"
	OpCalloc  Op = "calloc"
	OpRealloc Op = "realloc"
	OpFree    Op = "free"
	OpFill    Op = "fill"
	OpExpect  Op = "expect"
	OpVerify  Op = "verify"
	OpStats   Op = "stats"
	OpDump    Op = "dump"
)

const commentPrefix = "#"

// Stmt is one parsed statement.
type Stmt struct {
	Line int
	Op   Op

	// Target is the name bound by alloc, calloc and realloc.
	Target string

	// Ref is the name operand of realloc, free, fill and expect.
	Ref string

	// Args holds numeric operands in source order: the size for alloc and
	// realloc, count and size for calloc, byte and count for fill and expect.
	Args []uint64
}

// String renders s back in script syntax.
func (s Stmt) String() string {
	parts := []string{}
	if s.Target != "" {
		parts = append(parts, s.Target, "=")
	}
	parts = append(parts, string(s.Op))
	if s.Ref != "" {
		parts = append(parts, s.Ref)
	}
	for _, a := range s.Args {
		parts = append(parts, strconv.FormatUint(a, 10))
	}
	return strings.Join(parts, " ")
}

// ParseError reports a malformed line.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("script: line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Parse reads statements from r.
func Parse(r io.Reader) ([]Stmt, error) {
	scanner := bufio.NewScanner(r)
	var stmts []Stmt
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.Index(text, commentPrefix); i >= 0 {
			text = text[:i]
		}
		trim := strings.TrimSpace(text)
		if trim == "" {
			continue
		}
		st, msg := parseLine(trim)
		if msg != "" {
			return nil, &ParseError{Line: line, Text: trim, Msg: msg}
		}
		st.Line = line
		stmts = append(stmts, st)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return stmts, nil
}

// ParseString parses a script held in memory.
func ParseString(s string) ([]Stmt, error) {
	return Parse(strings.NewReader(s))
}

// parseLine returns the statement or a non-empty error message.
func parseLine(line string) (Stmt, string) {
	fields := strings.Fields(line)

	if len(fields) >= 2 && fields[1] == "=" {
		if !validName(fields[0]) {
			return Stmt{}, "invalid name"
		}
		return parseAssign(fields[0], fields[2:])
	}

	op := Op(fields[0])
	args := fields[1:]
	switch op {
	case OpFree:
		if len(args) != 1 {
			return Stmt{}, "free takes one name"
		}
		if !validName(args[0]) {
			return Stmt{}, "invalid name"
		}
		return Stmt{Op: op, Ref: args[0]}, ""

	case OpFill, OpExpect:
		if len(args) != 3 {
			return Stmt{}, fmt.Sprintf("%s takes a name, a byte and a count", op)
		}
		if !validName(args[0]) {
			return Stmt{}, "invalid name"
		}
		b, ok := parseByte(args[1])
		if !ok {
			return Stmt{}, "invalid byte"
		}
		n, ok := parseNumber(args[2])
		if !ok {
			return Stmt{}, "invalid count"
		}
		return Stmt{Op: op, Ref: args[0], Args: []uint64{b, n}}, ""

	case OpVerify, OpStats, OpDump:
		if len(args) != 0 {
			return Stmt{}, fmt.Sprintf("%s takes no operands", op)
		}
		return Stmt{Op: op}, ""

	case OpAlloc, OpCalloc, OpRealloc:
		return Stmt{}, fmt.Sprintf("%s result must be assigned to a name", op)
	}
	return Stmt{}, "unknown statement"
}

func parseAssign(target string, rhs []string) (Stmt, string) {
	if len(rhs) == 0 {
		return Stmt{}, "missing operation"
	}
	op, args := Op(rhs[0]), rhs[1:]
	st := Stmt{Op: op, Target: target}

	switch op {
	case OpAlloc:
		if len(args) != 1 {
			return Stmt{}, "alloc takes one size"
		}
	case OpCalloc:
		if len(args) != 2 {
			return Stmt{}, "calloc takes a count and a size"
		}
	case OpRealloc:
		if len(args) != 2 {
			return Stmt{}, "realloc takes a name and a size"
		}
		if !validName(args[0]) {
			return Stmt{}, "invalid name"
		}
		st.Ref, args = args[0], args[1:]
	default:
		return Stmt{}, fmt.Sprintf("cannot assign result of %q", op)
	}

	for _, a := range args {
		n, ok := parseNumber(a)
		if !ok {
			return Stmt{}, "invalid size"
		}
		st.Args = append(st.Args, n)
	}
	return st, ""
}

func parseNumber(s string) (uint64, bool) {
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, false
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	n, err := strconv.ParseUint(s, base, 64)
	return n, err == nil
}

func parseByte(s string) (uint64, bool) {
	if len(s) == 3 && s[0] == '\'' && s[2] == '\'' {
		return uint64(s[1]), true
	}
	n, ok := parseNumber(s)
	if !ok || n > 0xFF {
		return 0, false
	}
	return n, true
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
