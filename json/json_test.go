package json_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/mdedit"
	mdjson "github.com/fwojciec/mdedit/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() mdedit.Decorations {
	return mdedit.Decorations{
		Path:   "notes/a.md",
		Length: 42,
		Regions: mdedit.NewRegionSet([]mdedit.Region{
			{From: 0, To: 0, Kind: mdedit.CodeBlockLine},
			{From: 10, To: 13, Kind: mdedit.CodeBlockInline},
			{From: 20, To: 20, Kind: mdedit.BlockquoteLine},
			{From: 22, To: 40, Kind: mdedit.AutolinkSpan},
		}),
		Spans: []mdedit.Span{
			{From: 0, To: 7, Class: "cm-heading1"},
			{From: 22, To: 40, Class: "token string"},
		},
	}
}

func TestMarshalDecorations_RoundTrip(t *testing.T) {
	t.Parallel()

	d := sample()
	data, err := mdjson.MarshalDecorations(d)
	require.NoError(t, err)

	got, err := mdjson.UnmarshalDecorations(data)
	require.NoError(t, err)

	assert.Equal(t, d.Path, got.Path)
	assert.Equal(t, d.Length, got.Length)
	assert.Equal(t, d.Regions.Regions(), got.Regions.Regions())
	assert.Equal(t, d.Spans, got.Spans)
}

func TestMarshalDecorations_V1Envelope(t *testing.T) {
	t.Parallel()

	data, err := mdjson.MarshalDecorations(sample())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, "1", string(raw["version"]))
	assert.Contains(t, raw, "path")
	assert.Contains(t, raw, "length")
	assert.Contains(t, raw, "spans")

	var regions []map[string]any
	require.NoError(t, json.Unmarshal(raw["regions"], &regions))
	require.Len(t, regions, 4)
	assert.Equal(t, "codeblock-line", regions[0]["kind"])
	assert.Equal(t, "codeblock-inline", regions[1]["kind"])
	assert.Equal(t, "blockquote-line", regions[2]["kind"])
	assert.Equal(t, "autolink", regions[3]["kind"])
}

func TestMarshalDecorations_Empty(t *testing.T) {
	t.Parallel()

	data, err := mdjson.MarshalDecorations(mdedit.Decorations{Path: "empty.md"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"regions": []`)
	assert.Contains(t, string(data), `"spans": []`)

	got, err := mdjson.UnmarshalDecorations(data)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Regions.Len())
	assert.Empty(t, got.Spans)
}

func TestMarshalDecorations_UnknownKind(t *testing.T) {
	t.Parallel()

	d := mdedit.Decorations{Regions: mdedit.NewRegionSet([]mdedit.Region{{Kind: mdedit.RegionKind(99)}})}
	_, err := mdjson.MarshalDecorations(d)
	assert.Error(t, err)
}

func TestUnmarshalDecorations_UnknownKind(t *testing.T) {
	t.Parallel()
	data := []byte(`{"version": 1, "regions": [{"kind": "sparkle", "from": 0, "to": 1}], "spans": []}`)
	_, err := mdjson.UnmarshalDecorations(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sparkle")
}

func TestUnmarshalDecorations_UnsupportedVersion(t *testing.T) {
	t.Parallel()
	data := []byte(`{"version": 99, "regions": [], "spans": []}`)
	_, err := mdjson.UnmarshalDecorations(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported envelope version")
}

func TestSave_And_Load(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")

	require.NoError(t, mdjson.Save(path, sample()))

	_, err := os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	got, err := mdjson.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "notes/a.md", got.Path)
	assert.Equal(t, 4, got.Regions.Len())
}

func TestLoad_NonexistentFile(t *testing.T) {
	t.Parallel()
	_, err := mdjson.Load("/nonexistent/path/a.json")
	assert.Error(t, err)
}

func TestSave_CreatesParentDirectories(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "a.json")

	require.NoError(t, mdjson.Save(path, mdedit.Decorations{Path: "nested.md"}))

	got, err := mdjson.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "nested.md", got.Path)
}
