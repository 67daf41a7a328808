// Package goldmark implements [mdedit.Parser] with goldmark, producing
// syntax trees whose nodes carry exact byte extents and highlighting tags.
package goldmark

import (
	"regexp"

	"github.com/fwojciec/mdedit"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// mailtoRE widens Linkify's email match to take in a "mailto:" or
// "mailto: " prefix, so the autolink covers the whole address.
var mailtoRE = regexp.MustCompile(`^(?:mailto: ?)?[\w.+-]+@[\w-]+(?:\.[\w-]+)+`)

// Interface compliance check.
var _ mdedit.Parser = (*Parser)(nil)

// Parser parses CommonMark with the strikethrough and linkify extensions.
// Fenced code contents are tokenized with Tokenizer when set.
type Parser struct {
	Tokenizer mdedit.CodeTokenizer
	Logger    mdedit.Logger

	md goldmark.Markdown
}

// Option configures a Parser.
type Option func(*Parser)

// WithTokenizer highlights fenced code contents with t.
func WithTokenizer(t mdedit.CodeTokenizer) Option {
	return func(p *Parser) { p.Tokenizer = t }
}

// WithLogger reports skipped nodes to l.
func WithLogger(l mdedit.Logger) Option {
	return func(p *Parser) { p.Logger = l }
}

// NewParser returns a Parser. It is stateless between calls.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.NewLinkify(extension.WithLinkifyEmailRegexp(mailtoRE)),
			),
		),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.Logger == nil {
		p.Logger = mdedit.NopLogger{}
	}
	return p
}

// Parse parses source into a syntax tree. It never fails for well-formed
// UTF-8; the error return satisfies mdedit.Parser.
func (p *Parser) Parse(source string) (*mdedit.Tree, error) {
	src := []byte(source)
	root := p.md.Parser().Parse(text.NewReader(src))
	b := &treeBuilder{
		src:    src,
		doc:    mdedit.NewDocument(source),
		tok:    p.Tokenizer,
		logger: p.Logger,
	}
	return &mdedit.Tree{Root: &mdedit.Node{
		Type:     mdedit.NodeDocument,
		From:     0,
		To:       len(src),
		Children: b.blocks(root, 1),
	}}, nil
}
