package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/arena/alloc"
)

func newTestSource(t *testing.T) *alloc.Allocator {
	t.Helper()
	a, err := alloc.NewWithRegion(make([]byte, 1024), nil)
	require.NoError(t, err)

	p := a.Malloc(20)
	copy(a.Payload(p), []byte("Caf\xe9\x00hi"))
	_ = a.Malloc(40)
	return a
}

func TestLatin1(t *testing.T) {
	require.Equal(t, "Café.hi", latin1([]byte("Caf\xe9\x00hi")))
	require.Equal(t, "..", latin1([]byte{0x01, 0x7f}))
	require.Equal(t, "", latin1(nil))
}

func TestPrint_Text(t *testing.T) {
	var out bytes.Buffer
	opts := DefaultOptions()
	opts.ShowAvailable = true
	require.NoError(t, New(&out, opts).Print(newTestSource(t)))

	text := out.String()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 6, "summary, column header, three blocks, available list")

	require.Equal(t, "arena: 1024 bytes, layout split, head 0x80, 3 blocks", lines[0])
	require.Contains(t, lines[1], "OFFSET")
	require.Contains(t, lines[1], "PAYLOAD")
	require.Contains(t, lines[2], "0x00000000")
	require.Contains(t, lines[2], "used")
	require.Contains(t, lines[2], "436166e90068690000000000000000")
	require.Contains(t, lines[2], "|Café.hi")
	require.Contains(t, lines[4], "free")
	require.Contains(t, lines[4], "-")
	require.Equal(t, "available: [0x80]", lines[5])
}

func TestPrint_TextNoPreviewNoLinks(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, New(&out, Options{Format: FormatText}).Print(newTestSource(t)))

	text := out.String()
	require.NotContains(t, text, "PAYLOAD")
	require.NotContains(t, text, "NEXT")
	require.NotContains(t, text, "available")
}

func TestPrint_Uninitialized(t *testing.T) {
	a, err := alloc.New(nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, New(&out, DefaultOptions()).Print(a))
	require.Equal(t, "arena: not initialized (layout split)\n", out.String())
}

func TestPrint_JSON(t *testing.T) {
	var out bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.MaxPayloadBytes = 4
	require.NoError(t, New(&out, opts).Print(newTestSource(t)))

	var doc jsonDirectory
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Equal(t, uint64(1024), doc.ArenaLen)
	require.Equal(t, "split", doc.Layout)
	require.Equal(t, "0x80", doc.Head)
	require.Len(t, doc.Blocks, 3)

	first := doc.Blocks[0]
	require.True(t, first.Occupied)
	require.Equal(t, uint64(56), first.Extent)
	require.Equal(t, "436166e9", first.PayloadHex)
	require.Equal(t, "Café", first.PayloadText)
	require.Equal(t, "0x38", first.Next)
	require.Equal(t, "nil", first.Prev)

	last := doc.Blocks[2]
	require.False(t, last.Occupied)
	require.Empty(t, last.PayloadHex)
	require.Empty(t, doc.Available, "available list is opt-in")
}

func TestPrint_UnknownFormat(t *testing.T) {
	err := New(&bytes.Buffer{}, Options{Format: "xml"}).Print(newTestSource(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown format")
}
