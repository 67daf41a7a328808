package bubbletea

import "github.com/fwojciec/mdedit"

// MapSpans exports mapSpans for testing.
func MapSpans(spans []mdedit.Span, change mdedit.ChangeSet) []mdedit.Span {
	return mapSpans(spans, change)
}
