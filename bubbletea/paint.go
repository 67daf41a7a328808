package bubbletea

import (
	"strings"

	"github.com/fwojciec/mdedit"
	"github.com/fwojciec/mdedit/bubbletea/textarea"
)

// painter resolves the style of every byte of a document from its regions
// and highlight spans. Line decorations are outermost, then spans in tree
// order, then span regions.
type painter struct {
	keys   []string
	lines  map[int]string
	styles map[string]textarea.Style
}

func newPainter(doc *mdedit.Document, regions mdedit.RegionSet, spans []mdedit.Span, styles Styles) *painter {
	// One slot per byte plus the end of the document, so a line end can be
	// styled like its line.
	classes := make([][]string, doc.Len()+1)
	p := &painter{
		keys:   make([]string, len(classes)),
		lines:  make(map[int]string),
		styles: make(map[string]textarea.Style),
	}

	add := func(from, to int, class string) {
		from = max(from, 0)
		to = min(to, len(classes))
		for i := from; i < to; i++ {
			classes[i] = append(classes[i], class)
		}
	}

	all := regions.Regions()
	lines := make(map[int][]string)
	for _, r := range all {
		if !r.Kind.IsLine() {
			continue
		}
		line := doc.LineAt(r.From)
		add(line.From, line.To+1, r.Kind.Class())
		lines[line.From] = append(lines[line.From], r.Kind.Class())
	}
	for from, cs := range lines {
		p.lines[from] = p.intern(styles, cs...)
	}
	for _, s := range spans {
		add(s.From, s.To, s.Class)
	}
	for _, r := range all {
		if !r.Kind.IsLine() {
			add(r.From, r.To, r.Kind.Class())
		}
	}

	for i, cs := range classes {
		if len(cs) > 0 {
			p.keys[i] = p.intern(styles, cs...)
		}
	}
	return p
}

// intern returns the key for a class list, registering its composed style.
func (p *painter) intern(styles Styles, classes ...string) string {
	key := strings.Join(classes, ";")
	if _, ok := p.styles[key]; !ok {
		p.styles[key] = textarea.Style{Key: key, Style: styles.Compose(classes...)}
	}
	return key
}

func (p *painter) styleAt(offset int) textarea.Style {
	if offset < 0 || offset >= len(p.keys) {
		return textarea.Style{}
	}
	return p.styles[p.keys[offset]]
}

func (p *painter) lineStyleAt(offset int) textarea.Style {
	return p.styles[p.lines[offset]]
}
