package textarea

import (
	"unicode"

	rw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// segment is one soft-wrapped row of a line. Whitespace is shown as plain
// spaces. offsets holds the byte offset of each rune relative to the start
// of the line; the trailing cursor cell maps to the end of the line.
type segment struct {
	runes   []rune
	offsets []int
}

// wrapCache caches segments per line content. Changing the width drops
// every entry.
type wrapCache struct {
	entries map[string][]segment
	width   int
}

func newWrapCache() *wrapCache {
	return &wrapCache{entries: make(map[string][]segment)}
}

func (c *wrapCache) get(runes []rune, width int) ([]segment, bool) {
	if width != c.width {
		return nil, false
	}
	v, ok := c.entries[string(runes)]
	return v, ok
}

func (c *wrapCache) set(runes []rune, width int, segs []segment) {
	if width != c.width {
		c.entries = make(map[string][]segment)
		c.width = width
	}
	c.entries[string(runes)] = segs
}

func (c *wrapCache) invalidate() {
	c.entries = make(map[string][]segment)
	c.width = 0
}

// wrap splits a line into rows no wider than width, breaking at spaces and
// inside words longer than a row. Rows keep the line's rune order, so the
// n-th rune across all rows is the n-th rune of the line.
func wrap(line []rune, width int) []segment {
	rows := wrapRows(line, width)

	starts := make([]int, len(line)+1)
	for i, r := range line {
		starts[i+1] = starts[i] + runeLen(r)
	}

	segs := make([]segment, len(rows))
	pos := 0
	for i, row := range rows {
		offsets := make([]int, len(row))
		for j := range offsets {
			offsets[j] = starts[min(pos+j, len(line))]
		}
		pos += len(row)
		segs[i] = segment{runes: row, offsets: offsets}
	}
	return segs
}

func wrapRows(line []rune, width int) [][]rune {
	if width <= 0 {
		return [][]rune{line}
	}

	var (
		rows   = [][]rune{{}}
		word   []rune
		spaces int
	)
	// flush moves the pending word and spaces onto the last row, or onto a
	// new one.
	flush := func(newRow bool) {
		if newRow {
			rows = append(rows, []rune{})
		}
		last := len(rows) - 1
		rows[last] = append(rows[last], word...)
		for ; spaces > 0; spaces-- {
			rows[last] = append(rows[last], ' ')
		}
		word = nil
	}
	rowWidth := func() int { return uniseg.StringWidth(string(rows[len(rows)-1])) }

	for _, r := range line {
		if unicode.IsSpace(r) {
			spaces++
		} else {
			word = append(word, r)
		}

		switch {
		case spaces > 0:
			flush(rowWidth()+uniseg.StringWidth(string(word))+spaces > width)
		case len(word) > 0 && uniseg.StringWidth(string(word))+rw.RuneWidth(word[len(word)-1]) > width:
			// The word alone overflows a row; break it here.
			if len(rows[len(rows)-1]) > 0 {
				rows = append(rows, []rune{})
			}
			rows[len(rows)-1] = append(rows[len(rows)-1], word...)
			word = nil
		}
	}

	// One extra space leaves room for the cursor past the last rune.
	spaces++
	flush(rowWidth()+uniseg.StringWidth(string(word))+spaces-1 >= width)
	return rows
}
