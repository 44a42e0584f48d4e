package printer

import (
	"encoding/hex"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/joshuapare/memkit/arena/alloc"
)

// printText prints the directory as an aligned table.
func (p *Printer) printText(s alloc.Snapshot, src Source) error {
	if s.ArenaLen == 0 {
		_, err := fmt.Fprintf(p.writer, "arena: not initialized (layout %s)\n", s.Layout)
		return err
	}

	fmt.Fprintf(p.writer, "arena: %d bytes, layout %s, head %s, %d blocks\n",
		s.ArenaLen, s.Layout, link(s.Head), len(s.Blocks))

	tw := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"OFFSET", "EXTENT", "STATE"}
	if p.opts.ShowLinks {
		header = append(header, "NEXT", "PREV")
	}
	if p.opts.MaxPayloadBytes > 0 {
		header = append(header, "PAYLOAD")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, b := range s.Blocks {
		state := "free"
		if b.Occupied {
			state = "used"
		}
		row := []string{fmt.Sprintf("0x%08X", b.Offset), fmt.Sprintf("%d", b.Extent), state}
		if p.opts.ShowLinks {
			row = append(row, link(b.Next), link(b.Prev))
		}
		if p.opts.MaxPayloadBytes > 0 {
			data := p.preview(src, b)
			if len(data) > 0 {
				row = append(row, fmt.Sprintf("%s |%s|", hex.EncodeToString(data), latin1(data)))
			} else {
				row = append(row, "-")
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if p.opts.ShowAvailable {
		offs := make([]string, len(s.Available))
		for i, off := range s.Available {
			offs[i] = fmt.Sprintf("0x%X", off)
		}
		fmt.Fprintf(p.writer, "available: [%s]\n", strings.Join(offs, " "))
	}
	if s.WalkError != "" {
		fmt.Fprintf(p.writer, "walk error: %s\n", s.WalkError)
	}
	return nil
}
