package mdedit

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrMaxLength indicates an edit would grow the document past the
	// configured maximum length. The document is left unchanged.
	ErrMaxLength = errors.New("document exceeds max length")

	// ErrReadOnly indicates an edit was attempted on a read-only editor.
	ErrReadOnly = errors.New("editor is read-only")

	// ErrUnknownListener indicates a listener kind other than "input" or
	// "selection".
	ErrUnknownListener = errors.New("unknown listener kind")

	// ErrInvalidChange indicates a change set that is unsorted, overlapping
	// or out of bounds.
	ErrInvalidChange = errors.New("invalid change")
)
