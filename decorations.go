package mdedit

import "fmt"

// Decorations is everything drawn over one document: its regions and its
// highlight spans.
type Decorations struct {
	Path    string
	Length  int
	Regions RegionSet
	Spans   []Span
}

// Decorate parses source once and computes its decorations. It is the batch
// counterpart of an editor's first render.
func Decorate(p Parser, b *Builder, h *Highlighter, path, source string) (Decorations, error) {
	tree, err := p.Parse(source)
	if err != nil {
		return Decorations{}, fmt.Errorf("parse %s: %w", path, err)
	}
	doc := NewDocument(source)
	return Decorations{
		Path:    path,
		Length:  doc.Len(),
		Regions: NewRegionSet(b.Build(tree, doc)),
		Spans:   h.Highlight(tree, doc),
	}, nil
}
