package mdedit_test

import (
	"testing"

	"github.com/fwojciec/mdedit"
	"github.com/stretchr/testify/assert"
)

func TestDocument(t *testing.T) {
	t.Parallel()

	t.Run("lines", func(t *testing.T) {
		t.Parallel()
		doc := mdedit.NewDocument("a\nbc\n")
		assert.Equal(t, 3, doc.Lines())
		assert.Equal(t, mdedit.Line{Number: 1, From: 0, To: 1, Text: "a"}, doc.Line(1))
		assert.Equal(t, mdedit.Line{Number: 2, From: 2, To: 4, Text: "bc"}, doc.Line(2))
		assert.Equal(t, mdedit.Line{Number: 3, From: 5, To: 5, Text: ""}, doc.Line(3))
	})

	t.Run("line numbers are clamped", func(t *testing.T) {
		t.Parallel()
		doc := mdedit.NewDocument("a\nb")
		assert.Equal(t, 1, doc.Line(0).Number)
		assert.Equal(t, 2, doc.Line(9).Number)
	})

	t.Run("empty document has one line", func(t *testing.T) {
		t.Parallel()
		doc := mdedit.NewDocument("")
		assert.Equal(t, 1, doc.Lines())
		assert.Equal(t, mdedit.Line{Number: 1}, doc.LineAt(0))
	})

	t.Run("line at offset", func(t *testing.T) {
		t.Parallel()
		doc := mdedit.NewDocument("a\nbc\n")
		assert.Equal(t, 1, doc.LineAt(0).Number)
		assert.Equal(t, 1, doc.LineAt(1).Number)
		assert.Equal(t, 2, doc.LineAt(2).Number)
		assert.Equal(t, 2, doc.LineAt(4).Number)
		assert.Equal(t, 3, doc.LineAt(5).Number)
		assert.Equal(t, 3, doc.LineAt(99).Number)
		assert.Equal(t, 1, doc.LineAt(-1).Number)
	})

	t.Run("lengths in bytes and characters", func(t *testing.T) {
		t.Parallel()
		doc := mdedit.NewDocument("héllo")
		assert.Equal(t, 6, doc.Len())
		assert.Equal(t, 5, doc.RuneCount())
		assert.Equal(t, "héllo", doc.String())
	})

	t.Run("slice and contains", func(t *testing.T) {
		t.Parallel()
		doc := mdedit.NewDocument("abcdef")
		assert.Equal(t, "bcd", doc.Slice(1, 4))
		assert.Equal(t, "ef", doc.Slice(4, 99))
		assert.Equal(t, "", doc.Slice(5, 2))
		assert.True(t, doc.Contains(0, 6))
		assert.True(t, doc.Contains(3, 3))
		assert.False(t, doc.Contains(4, 3))
		assert.False(t, doc.Contains(0, 7))
		assert.False(t, doc.Contains(-1, 2))
	})
}
