package mdedit

import (
	"fmt"
	"strings"
)

// Change replaces the old-document range [From, To) with Insert.
type Change struct {
	From   int
	To     int
	Insert string
}

// ChangeSet is an ordered list of non-overlapping changes, all expressed in
// old-document offsets. It is the position transform for one edit.
type ChangeSet struct {
	changes []Change
}

// NewChangeSet validates and returns a change set. Changes must be sorted by
// From, non-overlapping and in bounds for a document of oldLen bytes.
// No-op changes are dropped.
func NewChangeSet(oldLen int, changes ...Change) (ChangeSet, error) {
	out := make([]Change, 0, len(changes))
	pos := 0
	for i, c := range changes {
		if c.From < pos || c.From > c.To || c.To > oldLen {
			return ChangeSet{}, fmt.Errorf("change %d [%d,%d) against length %d: %w", i, c.From, c.To, oldLen, ErrInvalidChange)
		}
		pos = c.To
		if c.From == c.To && c.Insert == "" {
			continue
		}
		out = append(out, c)
	}
	return ChangeSet{changes: out}, nil
}

// ReplaceAll returns the change set that replaces all of before with after.
func ReplaceAll(before, after string) ChangeSet {
	if before == after {
		return ChangeSet{}
	}
	return ChangeSet{changes: []Change{{From: 0, To: len(before), Insert: after}}}
}

// Changes returns a copy of the changes.
func (cs ChangeSet) Changes() []Change {
	return append([]Change(nil), cs.changes...)
}

// Empty reports whether the change set changes nothing.
func (cs ChangeSet) Empty() bool { return len(cs.changes) == 0 }

// NewLen returns the document length after applying cs to a document of
// oldLen bytes.
func (cs ChangeSet) NewLen(oldLen int) int {
	n := oldLen
	for _, c := range cs.changes {
		n += len(c.Insert) - (c.To - c.From)
	}
	return n
}

// Apply applies cs to text. Text must be the document cs was built against.
func (cs ChangeSet) Apply(text string) string {
	if cs.Empty() {
		return text
	}
	var b strings.Builder
	b.Grow(cs.NewLen(len(text)))
	pos := 0
	for _, c := range cs.changes {
		b.WriteString(text[pos:c.From])
		b.WriteString(c.Insert)
		pos = c.To
	}
	b.WriteString(text[pos:])
	return b.String()
}

// MapPos maps an old-document offset into the new document. At an insertion
// point or the start of a replaced range, assoc < 0 keeps the position
// before the inserted text and assoc >= 0 moves it after. The second result
// is false when pos lay strictly inside a replaced range.
func (cs ChangeSet) MapPos(pos, assoc int) (int, bool) {
	delta := 0
	for _, c := range cs.changes {
		if pos < c.From {
			break
		}
		if pos > c.To {
			delta += len(c.Insert) - (c.To - c.From)
			continue
		}
		base := c.From + delta
		if pos == c.To && c.From < c.To {
			return base + len(c.Insert), true
		}
		inside := pos > c.From
		if assoc < 0 {
			return base, !inside
		}
		return base + len(c.Insert), !inside
	}
	return pos + delta, true
}
