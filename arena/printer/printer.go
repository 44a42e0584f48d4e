// Package printer renders an allocator's block directory as a text table or
// JSON, with an optional preview of each occupied payload.
package printer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/memkit/arena"
	"github.com/joshuapare/memkit/arena/alloc"
	"github.com/joshuapare/memkit/internal/format"
)

const (
	DefaultMaxPayloadBytes = 16
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs an aligned, human-readable table.
	FormatText Format = "text"

	// FormatJSON outputs one JSON document.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// MaxPayloadBytes limits how many payload bytes of each occupied block
	// are previewed. Set to 0 to disable the preview.
	// Default: 16
	MaxPayloadBytes int

	// ShowLinks includes the raw next/prev links of every header.
	// Default: true
	ShowLinks bool

	// ShowAvailable lists the blocks search would visit, in order.
	// Default: false
	ShowAvailable bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:          FormatText,
		MaxPayloadBytes: DefaultMaxPayloadBytes,
		ShowLinks:       true,
	}
}

// Source is what a Printer reads. *alloc.Allocator and *locked.Allocator
// both satisfy it.
type Source interface {
	Snapshot() alloc.Snapshot
	Payload(p arena.Ptr) []byte
}

// Printer handles formatted output of a block directory.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer writing to w.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	if err := p.Print(a); err != nil {
//	    return err
//	}
func New(w io.Writer, opts Options) *Printer {
	return &Printer{writer: w, opts: opts}
}

// Print renders src.
func (p *Printer) Print(src Source) error {
	s := src.Snapshot()
	switch p.opts.Format {
	case "", FormatText:
		return p.printText(s, src)
	case FormatJSON:
		return p.printJSON(s, src)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}

// preview returns up to MaxPayloadBytes of b.
func (p *Printer) preview(src Source, b alloc.BlockInfo) []byte {
	if p.opts.MaxPayloadBytes <= 0 || !b.Occupied {
		return nil
	}
	data := src.Payload(b.Payload())
	if len(data) > p.opts.MaxPayloadBytes {
		data = data[:p.opts.MaxPayloadBytes]
	}
	return data
}

// latin1 decodes b as ISO 8859-1 and masks non-printable runes with '.'.
func latin1(b []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		decoded = b
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return '.'
	}, string(decoded))
}

func link(v uint64) string {
	if v == format.NilLink {
		return "nil"
	}
	return fmt.Sprintf("0x%X", v)
}
