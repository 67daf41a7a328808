package mdedit

// Pass is one decoration rule applied to every visited node.
type Pass int

const (
	PassCodeBlock  Pass = iota // fenced code blocks, one region per line
	PassInlineCode             // inline code spans
	PassBlockquote             // blockquotes, one region per line
	PassAutolink               // bare URLs that pass MatchesAutolink
)

// String implements fmt.Stringer.
func (p Pass) String() string {
	switch p {
	case PassCodeBlock:
		return "codeblock"
	case PassInlineCode:
		return "inline-code"
	case PassBlockquote:
		return "blockquote"
	case PassAutolink:
		return "autolink"
	default:
		return "unknown"
	}
}

// DefaultPasses returns the passes an editor enables. The autolink pass only
// runs in autolink-only mode.
func DefaultPasses(onlyAutolink bool) []Pass {
	passes := []Pass{PassCodeBlock, PassInlineCode, PassBlockquote}
	if onlyAutolink {
		passes = append(passes, PassAutolink)
	}
	return passes
}

// visit appends the regions p emits for n.
func (p Pass) visit(doc *Document, n *Node, out []Region) []Region {
	switch p {
	case PassCodeBlock:
		if n.Is(NodeFencedCode) {
			out = appendLines(doc, n, CodeBlockLine, out)
		}
	case PassInlineCode:
		if n.Is(NodeInlineCode) {
			out = append(out, Region{From: n.From, To: n.To, Kind: CodeBlockInline})
		}
	case PassBlockquote:
		if n.Is(NodeBlockquote) {
			out = appendLines(doc, n, BlockquoteLine, out)
		}
	case PassAutolink:
		if n.Is(NodeURL) && MatchesAutolink(doc.Slice(n.From, n.To)) {
			out = append(out, Region{From: n.From, To: n.To, Kind: AutolinkSpan})
		}
	}
	return out
}

func appendLines(doc *Document, n *Node, kind RegionKind, out []Region) []Region {
	first := doc.LineAt(n.From).Number
	last := doc.LineAt(n.To).Number
	for i := first; i <= last; i++ {
		from := doc.Line(i).From
		out = append(out, Region{From: from, To: from, Kind: kind})
	}
	return out
}

// Builder turns a syntax tree into decoration regions.
type Builder struct {
	passes []Pass
	logger Logger
}

// NewBuilder returns a Builder running passes in order. A nil logger
// discards diagnostics.
func NewBuilder(passes []Pass, logger Logger) *Builder {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Builder{passes: append([]Pass(nil), passes...), logger: logger}
}

// Passes returns the enabled passes.
func (b *Builder) Passes() []Pass { return append([]Pass(nil), b.passes...) }

// Build walks tree once, testing each node against every pass. Nodes whose
// offsets fall outside doc are skipped; their children are still visited.
// The result is sorted by From.
func (b *Builder) Build(tree *Tree, doc *Document) []Region {
	var out []Region
	tree.Iterate(func(n *Node) bool {
		if !doc.Contains(n.From, n.To) {
			b.logger.Warn("skipping node with invalid offsets",
				"type", n.Type, "from", n.From, "to", n.To, "len", doc.Len())
			return true
		}
		for _, p := range b.passes {
			out = p.visit(doc, n, out)
		}
		return true
	})
	return NewRegionSet(out).Regions()
}
