package printer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/joshuapare/elheap/heap"
	"github.com/joshuapare/elheap/heap/verify"
	"github.com/joshuapare/elheap/internal/testutil"
)

func newHeap(t *testing.T) *heap.Heap {
	t.Helper()
	return testutil.SetupHeapWith(t, heap.DefaultConfig())
}

func relative() Options {
	opts := DefaultOptions()
	opts.Relative = true
	return opts
}

func TestPrintStats_Text_Fresh(t *testing.T) {
	h := newHeap(t)
	var buf bytes.Buffer
	require.NoError(t, New(&buf, relative()).PrintStats(h))

	want := `HEAP STATS (overhead per block: 40)
heap_start:  0x0
heap_end:    0x1000
total_bytes: 4,096
AVAILABLE LIST: {length:   1  bytes: 4,096}
  [  0] head @ 0x0 {state: a  size: 4,056}
USED LIST: {length:   0  bytes:     0}
HEAP BLOCKS:
[  0] @ 0x0
  state:      a
  size:       4056 (total: 0x1000)
  prev:       begin
  next:       end
  user:       0x20
  foot:       0xff8
  foot->size: 4056
`
	assert.Equal(t, want, buf.String())
}

func TestPrintStats_Text_AfterAlloc(t *testing.T) {
	h := newHeap(t)
	_, err := h.Alloc(128)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, relative()).PrintStats(h))
	out := buf.String()

	assert.Contains(t, out, "AVAILABLE LIST: {length:   1  bytes: 3,928}\n  [  0] head @ 0xa8 {state: a  size: 3,888}\n")
	assert.Contains(t, out, "USED LIST: {length:   1  bytes:   168}\n  [  0] head @ 0x0 {state: u  size:   128}\n")
	assert.Contains(t, out, "[  1] @ 0xa8\n  state:      a\n")
	assert.Equal(t, 2, strings.Count(out, "foot->size:"))
}

func TestPrintStats_Text_Sections(t *testing.T) {
	h := newHeap(t)
	opts := relative()
	opts.ShowLists = false
	opts.ShowBlocks = false

	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintStats(h))
	assert.NotContains(t, buf.String(), "LIST")
	assert.NotContains(t, buf.String(), "HEAP BLOCKS")
	assert.Contains(t, buf.String(), "total_bytes: 4,096")
}

func TestPrintStats_Text_Language(t *testing.T) {
	h := testutil.SetupHeap(t, 1<<20, 1<<20)

	opts := relative()
	opts.Language = language.German

	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintStats(h))
	assert.Contains(t, buf.String(), "total_bytes: 1.048.576")
}

func TestPrintStats_Text_AbsoluteAddresses(t *testing.T) {
	h := newHeap(t)
	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).PrintStats(h))

	lines := strings.Split(buf.String(), "\n")
	require.Greater(t, len(lines), 1)
	assert.Equal(t, fmt.Sprintf("heap_start:  %#x", h.Base()), lines[1])
}

func TestPrintStats_JSON(t *testing.T) {
	h := newHeap(t)
	a, err := h.Alloc(64)
	require.NoError(t, err)
	require.NoError(t, h.Free(a))

	opts := relative()
	opts.Format = FormatJSON
	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintStats(h))

	var got struct {
		Base      uintptr `json:"base"`
		HeapBytes int     `json:"heap_bytes"`
		Available struct {
			Length int `json:"length"`
			Bytes  int `json:"bytes"`
		} `json:"available"`
		Blocks []struct {
			State string `json:"state"`
			Size  int    `json:"size"`
			Prev  int    `json:"prev"`
		} `json:"blocks"`
		Counters heap.Counters `json:"counters"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, uintptr(0), got.Base)
	assert.Equal(t, 4096, got.HeapBytes)
	assert.Equal(t, 1, got.Available.Length)
	assert.Equal(t, 4096, got.Available.Bytes)
	require.Len(t, got.Blocks, 1)
	assert.Equal(t, "a", got.Blocks[0].State)
	assert.Equal(t, 4056, got.Blocks[0].Size)
	assert.Equal(t, heap.LinkBegin, got.Blocks[0].Prev)
	assert.Equal(t, 1, got.Counters.Merges)
	assert.Equal(t, 1, got.Counters.Splits)
}

func TestPrintList(t *testing.T) {
	h := newHeap(t)
	_, err := h.Alloc(8)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, relative()).PrintList(h.Used()))
	assert.Equal(t, "USED: {length:   1  bytes:    48}\n  [  0] head @ 0x0 {state: u  size:     8}\n", buf.String())

	opts := relative()
	opts.Format = FormatJSON
	buf.Reset()
	require.NoError(t, New(&buf, opts).PrintList(h.Available()))
	assert.Contains(t, buf.String(), `"name": "available"`)
}

func TestUnknownFormat(t *testing.T) {
	h := newHeap(t)
	opts := DefaultOptions()
	opts.Format = "reg"
	require.Error(t, New(&bytes.Buffer{}, opts).PrintStats(h))
}

func TestPrintLayout(t *testing.T) {
	h := newHeap(t)
	_, err := h.Alloc(128)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).PrintLayout(h.Bytes()))
	assert.Equal(t, `IMAGE (4,096 bytes, overhead per block: 40)
[  0] @ 0x0 {state: u  size:   128}
[  1] @ 0xa8 {state: a  size: 3,888}
available: 1 blocks, 3,928 bytes
used:      1 blocks, 168 bytes
`, buf.String())

	opts := DefaultOptions()
	opts.Format = FormatJSON
	buf.Reset()
	require.NoError(t, New(&buf, opts).PrintLayout(h.Bytes()))
	assert.Contains(t, buf.String(), `"offset": 168`)
	assert.Contains(t, buf.String(), `"state": "u"`)
}

func TestPrintLayout_Corrupt(t *testing.T) {
	img := make([]byte, 64)
	err := New(&bytes.Buffer{}, DefaultOptions()).PrintLayout(img)
	var verr *verify.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Layout", verr.Type)
}
