package mdedit

import (
	"sort"
	"unicode/utf8"
)

// Line is one line of a Document. From and To are byte offsets; To excludes
// the line break.
type Line struct {
	Number int // 1-based
	From   int
	To     int
	Text   string
}

// Document is an immutable text with a line index. Offsets are byte offsets
// into the UTF-8 text.
type Document struct {
	text   string
	starts []int
}

// NewDocument indexes text.
func NewDocument(text string) *Document {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Document{text: text, starts: starts}
}

// String returns the full text.
func (d *Document) String() string { return d.text }

// Len returns the length in bytes.
func (d *Document) Len() int { return len(d.text) }

// RuneCount returns the length in characters.
func (d *Document) RuneCount() int { return utf8.RuneCountInString(d.text) }

// Lines returns the number of lines. An empty document has one line.
func (d *Document) Lines() int { return len(d.starts) }

// Line returns line n (1-based). n is clamped into range.
func (d *Document) Line(n int) Line {
	if n < 1 {
		n = 1
	}
	if n > len(d.starts) {
		n = len(d.starts)
	}
	from := d.starts[n-1]
	to := len(d.text)
	if n < len(d.starts) {
		to = d.starts[n] - 1
	}
	return Line{Number: n, From: from, To: to, Text: d.text[from:to]}
}

// LineAt returns the line containing offset. Offsets are clamped into
// [0, Len()].
func (d *Document) LineAt(offset int) Line {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	n := sort.Search(len(d.starts), func(i int) bool { return d.starts[i] > offset })
	return d.Line(n)
}

// Slice returns text[from:to], clamped into bounds.
func (d *Document) Slice(from, to int) string {
	from = clamp(from, 0, len(d.text))
	to = clamp(to, from, len(d.text))
	return d.text[from:to]
}

// Contains reports whether [from, to] is a valid range in the document.
func (d *Document) Contains(from, to int) bool {
	return from >= 0 && from <= to && to <= len(d.text)
}

func clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}
