// Package mock provides test doubles for mdedit interfaces using function fields.
package mock

import "github.com/fwojciec/mdedit"

// Interface compliance checks.
var (
	_ mdedit.Parser        = (*Parser)(nil)
	_ mdedit.CodeTokenizer = (*CodeTokenizer)(nil)
	_ mdedit.Differ        = (*Differ)(nil)
	_ mdedit.Logger        = (*Logger)(nil)
)

// Parser is a test double for mdedit.Parser.
// Set ParseFn before calling Parse.
type Parser struct {
	ParseFn func(source string) (*mdedit.Tree, error)
}

// Parse delegates to ParseFn.
func (p *Parser) Parse(source string) (*mdedit.Tree, error) {
	return p.ParseFn(source)
}

// CodeTokenizer is a test double for mdedit.CodeTokenizer.
// Set TokenizeFn before calling Tokenize.
type CodeTokenizer struct {
	TokenizeFn func(language, code string) []mdedit.Token
}

// Tokenize delegates to TokenizeFn.
func (t *CodeTokenizer) Tokenize(language, code string) []mdedit.Token {
	return t.TokenizeFn(language, code)
}

// Differ is a test double for mdedit.Differ.
// Set DiffFn before calling Diff.
type Differ struct {
	DiffFn func(before, after string) mdedit.ChangeSet
}

// Diff delegates to DiffFn.
func (d *Differ) Diff(before, after string) mdedit.ChangeSet {
	return d.DiffFn(before, after)
}

// Logger is a test double for mdedit.Logger.
// Unset function fields are no-ops, so a zero Logger discards everything.
type Logger struct {
	DebugFn func(msg string, fields ...any)
	WarnFn  func(msg string, fields ...any)
}

// Debug delegates to DebugFn.
func (l *Logger) Debug(msg string, fields ...any) {
	if l.DebugFn != nil {
		l.DebugFn(msg, fields...)
	}
}

// Warn delegates to WarnFn.
func (l *Logger) Warn(msg string, fields ...any) {
	if l.WarnFn != nil {
		l.WarnFn(msg, fields...)
	}
}
