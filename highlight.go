package mdedit

// Span is a classed range of the document, [From, To).
type Span struct {
	From  int
	To    int
	Class string
}

// Highlighter assigns classes to tagged tree nodes using a table resolved
// once per configuration.
type Highlighter struct {
	classes map[*Tag]string
}

// NewHighlighter resolves every default tag through c.
func NewHighlighter(c *Classifier) *Highlighter {
	return &Highlighter{classes: c.ClassTable(DefaultTags())}
}

// Class returns the resolved class for tag, or "".
func (h *Highlighter) Class(tag *Tag) string {
	if tag == nil {
		return ""
	}
	return h.classes[tag]
}

// Highlight returns spans for every tagged node with a class, in pre-order.
// Outer nodes come before the nodes nested in them; empty or out-of-range
// nodes are skipped.
func (h *Highlighter) Highlight(tree *Tree, doc *Document) []Span {
	var out []Span
	tree.Iterate(func(n *Node) bool {
		if n.From >= n.To || !doc.Contains(n.From, n.To) {
			return true
		}
		if cls := h.Class(n.Tag); cls != "" {
			out = append(out, Span{From: n.From, To: n.To, Class: cls})
		}
		return true
	})
	return out
}
