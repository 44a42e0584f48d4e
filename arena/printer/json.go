package printer

import (
	"encoding/hex"
	"encoding/json"

	"github.com/joshuapare/memkit/arena/alloc"
)

// jsonDirectory is the JSON rendering of a snapshot.
type jsonDirectory struct {
	ArenaLen  uint64      `json:"arena_len"`
	Layout    string      `json:"layout"`
	Head      string      `json:"head"`
	Blocks    []jsonBlock `json:"blocks"`
	Available []uint64    `json:"available,omitempty"`
	WalkError string      `json:"walk_error,omitempty"`
}

// jsonBlock is one header in JSON format.
type jsonBlock struct {
	Offset      uint64 `json:"offset"`
	Extent      uint64 `json:"extent"`
	Occupied    bool   `json:"occupied"`
	Next        string `json:"next,omitempty"`
	Prev        string `json:"prev,omitempty"`
	PayloadHex  string `json:"payload_hex,omitempty"`
	PayloadText string `json:"payload_text,omitempty"`
}

// printJSON prints the directory as one indented JSON document.
func (p *Printer) printJSON(s alloc.Snapshot, src Source) error {
	out := jsonDirectory{
		ArenaLen:  s.ArenaLen,
		Layout:    string(s.Layout),
		Head:      link(s.Head),
		Blocks:    make([]jsonBlock, 0, len(s.Blocks)),
		WalkError: s.WalkError,
	}
	if p.opts.ShowAvailable {
		out.Available = s.Available
	}

	for _, b := range s.Blocks {
		jb := jsonBlock{Offset: b.Offset, Extent: b.Extent, Occupied: b.Occupied}
		if p.opts.ShowLinks {
			jb.Next, jb.Prev = link(b.Next), link(b.Prev)
		}
		if data := p.preview(src, b); len(data) > 0 {
			jb.PayloadHex = hex.EncodeToString(data)
			jb.PayloadText = latin1(data)
		}
		out.Blocks = append(out.Blocks, jb)
	}

	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
