// Package diffmatchpatch implements [mdedit.Differ] with go-diff. Edits made
// by the text widget arrive as whole-value snapshots; the differ recovers the
// minimal change set between them so decorations away from the edit keep
// their positions.
package diffmatchpatch

import (
	"time"

	"github.com/fwojciec/mdedit"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultTimeout bounds a single diff. On timeout go-diff returns a valid but
// coarser diff.
const DefaultTimeout = 100 * time.Millisecond

// Interface compliance check.
var _ mdedit.Differ = (*Differ)(nil)

// Differ computes change sets from before/after snapshots.
type Differ struct {
	dmp    *diffmatchpatch.DiffMatchPatch
	logger mdedit.Logger
}

// NewDiffer returns a Differ. A nil logger discards diagnostics.
func NewDiffer(timeout time.Duration, logger mdedit.Logger) *Differ {
	if logger == nil {
		logger = mdedit.NopLogger{}
	}
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = timeout
	return &Differ{dmp: dmp, logger: logger}
}

// Diff returns the change set turning before into after. Adjacent deletions
// and insertions are merged into single replacements.
func (d *Differ) Diff(before, after string) mdedit.ChangeSet {
	if before == after {
		return mdedit.ChangeSet{}
	}
	diffs := d.dmp.DiffMain(before, after, false)

	var changes []mdedit.Change
	pos := 0
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			pos += len(diff.Text)
		case diffmatchpatch.DiffDelete:
			changes = merge(changes, mdedit.Change{From: pos, To: pos + len(diff.Text)})
			pos += len(diff.Text)
		case diffmatchpatch.DiffInsert:
			changes = merge(changes, mdedit.Change{From: pos, To: pos, Insert: diff.Text})
		}
	}

	cs, err := mdedit.NewChangeSet(len(before), changes...)
	if err != nil {
		d.logger.Warn("diff produced an invalid change set; replacing the document", "error", err)
		return mdedit.ReplaceAll(before, after)
	}
	return cs
}

func merge(changes []mdedit.Change, c mdedit.Change) []mdedit.Change {
	if n := len(changes); n > 0 && changes[n-1].To == c.From {
		changes[n-1].To = c.To
		changes[n-1].Insert += c.Insert
		return changes
	}
	return append(changes, c)
}
