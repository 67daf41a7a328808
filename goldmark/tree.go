package goldmark

import (
	"bytes"
	"strings"

	"github.com/fwojciec/mdedit"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	atxHeadings = [...]mdedit.NodeType{
		mdedit.NodeATXHeading1, mdedit.NodeATXHeading2, mdedit.NodeATXHeading3,
		mdedit.NodeATXHeading4, mdedit.NodeATXHeading5, mdedit.NodeATXHeading6,
	}
	setextHeadings = [...]mdedit.NodeType{mdedit.NodeSetextHeading1, mdedit.NodeSetextHeading2}
)

// treeBuilder converts a goldmark AST into an mdedit tree. goldmark records
// content segments only, so markers (fences, backticks, brackets, quote
// marks) are recovered from the source around them.
type treeBuilder struct {
	src    []byte
	doc    *mdedit.Document
	tok    mdedit.CodeTokenizer
	logger mdedit.Logger
}

// blocks converts the block children of parent. cursor is the first line the
// children may start on.
func (b *treeBuilder) blocks(parent ast.Node, cursor int) []*mdedit.Node {
	var out []*mdedit.Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		n := b.block(c, cursor)
		if n == nil {
			continue
		}
		out = append(out, n)
		cursor = b.doc.LineAt(n.To).Number + 1
	}
	return out
}

func (b *treeBuilder) block(node ast.Node, cursor int) *mdedit.Node {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return b.leaf(n, mdedit.NodeParagraph, nil)

	case *ast.Heading:
		return b.heading(n, cursor)

	case *ast.ThematicBreak:
		line, ok := b.nextLine(cursor, isContentLine)
		if !ok {
			return nil
		}
		from := line.From + max(0, strings.IndexAny(line.Text, "-*_"))
		return &mdedit.Node{Type: mdedit.NodeHorizontalRule, From: from, To: line.To, Tag: mdedit.TagContentSeparator}

	case *ast.FencedCodeBlock:
		return b.fencedCode(n, cursor)

	case *ast.CodeBlock:
		lo, hi, ok := b.lineRange(n.Lines())
		if !ok {
			return nil
		}
		return &mdedit.Node{
			Type: mdedit.NodeCodeBlock, From: lo, To: hi,
			Children: []*mdedit.Node{{Type: mdedit.NodeCodeText, From: lo, To: hi, Tag: mdedit.TagMonospace}},
		}

	case *ast.HTMLBlock:
		lo, hi, ok := b.lineRange(n.Lines())
		if !ok {
			return nil
		}
		if n.HasClosure() {
			hi = max(hi, trimBreak(b.src, n.ClosureLine.Start, n.ClosureLine.Stop))
		}
		return &mdedit.Node{Type: mdedit.NodeHTMLBlock, From: lo, To: hi}

	case *ast.Blockquote:
		return b.blockquote(n, cursor)

	case *ast.List:
		typ := mdedit.NodeBulletList
		if n.IsOrdered() {
			typ = mdedit.NodeOrderedList
		}
		return b.container(n, typ, mdedit.TagList, cursor)

	case *ast.ListItem:
		return b.container(n, mdedit.NodeListItem, nil, cursor)

	default:
		b.logger.Debug("skipping block", "kind", node.Kind().String())
		return nil
	}
}

func (b *treeBuilder) leaf(n ast.Node, typ mdedit.NodeType, tag *mdedit.Tag) *mdedit.Node {
	lo, hi, ok := b.lineRange(n.Lines())
	if !ok {
		return nil
	}
	return &mdedit.Node{Type: typ, From: lo, To: hi, Tag: tag, Children: b.inlines(n)}
}

// container spans whole lines, from the first child's line to the last's.
func (b *treeBuilder) container(n ast.Node, typ mdedit.NodeType, tag *mdedit.Tag, cursor int) *mdedit.Node {
	children := b.blocks(n, cursor)
	var first, last mdedit.Line
	if len(children) > 0 {
		first = b.doc.LineAt(children[0].From)
		last = b.doc.LineAt(children[len(children)-1].To)
	} else {
		l, ok := b.nextLine(cursor, isContentLine)
		if !ok {
			return nil
		}
		first, last = l, l
	}
	return &mdedit.Node{Type: typ, From: first.From, To: last.To, Tag: tag, Children: children}
}

func (b *treeBuilder) heading(n *ast.Heading, cursor int) *mdedit.Node {
	level := min(max(n.Level, 1), 6)
	lines := n.Lines()

	var line mdedit.Line
	prefixEnd := 0
	if lines.Len() > 0 {
		line = b.doc.LineAt(lines.At(0).Start)
		prefixEnd = lines.At(0).Start
	} else {
		l, ok := b.nextLine(cursor, isContentLine)
		if !ok {
			return nil
		}
		line, prefixEnd = l, l.To
	}

	if hash := bytes.IndexByte(b.src[line.From:prefixEnd], '#'); hash >= 0 {
		from := line.From + hash
		marks := from
		for marks < line.To && b.src[marks] == '#' {
			marks++
		}
		children := []*mdedit.Node{{Type: mdedit.NodeHeaderMark, From: from, To: marks, Tag: mdedit.TagProcessingInstruction}}
		return &mdedit.Node{
			Type: atxHeadings[level-1], From: from, To: line.To,
			Tag: mdedit.HeadingTag(level), Children: append(children, b.inlines(n)...),
		}
	}

	lo, hi, ok := b.lineRange(lines)
	if !ok {
		return nil
	}
	node := &mdedit.Node{
		Type: setextHeadings[min(level, 2)-1], From: lo, To: hi,
		Tag: mdedit.HeadingTag(level), Children: b.inlines(n),
	}
	next := b.doc.LineAt(hi).Number + 1
	if underline := b.doc.Line(next); underline.Number == next && isSetextUnderline(underline.Text) {
		from := underline.From + strings.IndexAny(underline.Text, "=-")
		to := underline.From + len(strings.TrimRight(underline.Text, " \t\r"))
		node.To = underline.To
		node.Children = append(node.Children, &mdedit.Node{
			Type: mdedit.NodeHeaderMark, From: from, To: to, Tag: mdedit.TagProcessingInstruction,
		})
	}
	return node
}

// fencedCode spans the opening fence line through the closing fence line.
// goldmark drops the closing fence, so it is matched on the line after the
// last content line.
func (b *treeBuilder) fencedCode(n *ast.FencedCodeBlock, cursor int) *mdedit.Node {
	lines := n.Lines()
	var open mdedit.Line
	switch {
	case n.Info != nil:
		open = b.doc.LineAt(n.Info.Segment.Start)
	case lines.Len() > 0:
		open = b.doc.Line(b.doc.LineAt(lines.At(0).Start).Number - 1)
	default:
		l, ok := b.nextLine(cursor, isFenceLine)
		if !ok {
			return nil
		}
		open = l
	}
	marker, width, at, ok := fence(open.Text)
	if !ok {
		b.logger.Warn("fenced code without an opening fence", "line", open.Number)
		return nil
	}

	from := open.From + at
	node := &mdedit.Node{Type: mdedit.NodeFencedCode, From: from, To: open.To}
	node.Children = append(node.Children, &mdedit.Node{
		Type: mdedit.NodeCodeMark, From: from, To: from + width, Tag: mdedit.TagProcessingInstruction,
	})
	if n.Info != nil && n.Info.Segment.Stop > n.Info.Segment.Start {
		node.Children = append(node.Children, &mdedit.Node{
			Type: mdedit.NodeCodeInfo, From: n.Info.Segment.Start, To: n.Info.Segment.Stop, Tag: mdedit.TagLabelName,
		})
	}

	last := open
	if lines.Len() > 0 {
		end := lines.At(lines.Len() - 1)
		last = b.doc.LineAt(max(end.Start, end.Stop-1))
		node.Children = append(node.Children, &mdedit.Node{
			Type: mdedit.NodeCodeText, From: lines.At(0).Start, To: last.To,
			Tag: mdedit.TagMonospace, Children: b.codeTokens(n),
		})
	}
	node.To = last.To

	next := last.Number + 1
	if closing := b.doc.Line(next); closing.Number == next && closesFence(closing.Text, marker, width) {
		mark := closing.From + strings.IndexByte(closing.Text, marker)
		run := mark
		for run < closing.To && b.src[run] == marker {
			run++
		}
		node.Children = append(node.Children, &mdedit.Node{
			Type: mdedit.NodeCodeMark, From: mark, To: run, Tag: mdedit.TagProcessingInstruction,
		})
		node.To = closing.To
	}
	return node
}

// codeTokens tokenizes the code lines as one string and maps the tokens back
// onto the source segments they came from.
func (b *treeBuilder) codeTokens(n *ast.FencedCodeBlock) []*mdedit.Node {
	if b.tok == nil {
		return nil
	}
	lang := string(n.Language(b.src))
	if lang == "" {
		return nil
	}
	lines := n.Lines()
	starts := make([]int, lines.Len())
	var code strings.Builder
	for i := range lines.Len() {
		seg := lines.At(i)
		starts[i] = code.Len()
		code.Write(b.src[seg.Start:seg.Stop])
	}

	var out []*mdedit.Node
	for _, t := range b.tok.Tokenize(lang, code.String()) {
		if t.Len <= 0 || t.Tag == nil {
			continue
		}
		from, to := t.Offset, t.Offset+t.Len
		for i, start := range starts {
			seg := lines.At(i)
			lo, hi := max(from, start), min(to, start+seg.Stop-seg.Start)
			if lo >= hi {
				continue
			}
			out = append(out, &mdedit.Node{
				Type: mdedit.NodeCodeToken, From: seg.Start + lo - start, To: seg.Start + hi - start, Tag: t.Tag,
			})
		}
	}
	return out
}

// blockquote covers every line of the quote, including marker-only lines
// before and after its content.
func (b *treeBuilder) blockquote(n *ast.Blockquote, cursor int) *mdedit.Node {
	children := b.blocks(n, cursor)
	var first, last int
	if len(children) > 0 {
		first = b.doc.LineAt(children[0].From).Number
		last = b.doc.LineAt(children[len(children)-1].To).Number
	} else {
		l, ok := b.nextLine(cursor, isQuoteOnly)
		if !ok {
			return nil
		}
		first, last = l.Number, l.Number
	}
	for first-1 >= cursor && isQuoteOnly(b.doc.Line(first-1).Text) {
		first--
	}
	for last < b.doc.Lines() && isQuoteOnly(b.doc.Line(last+1).Text) {
		last++
	}
	return &mdedit.Node{
		Type: mdedit.NodeBlockquote, From: b.doc.Line(first).From, To: b.doc.Line(last).To,
		Tag: mdedit.TagQuote, Children: children,
	}
}

func (b *treeBuilder) inlines(parent ast.Node) []*mdedit.Node {
	nodes, _, _, _ := b.inlineChildren(parent)
	return nodes
}

// inlineChildren converts the inline children of parent and returns the
// union of their extents.
func (b *treeBuilder) inlineChildren(parent ast.Node) (nodes []*mdedit.Node, lo, hi int, ok bool) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		kids, clo, chi, cok := b.inline(c)
		nodes = append(nodes, kids...)
		if !cok {
			continue
		}
		if !ok {
			lo, hi, ok = clo, chi, true
			continue
		}
		lo, hi = min(lo, clo), max(hi, chi)
	}
	return nodes, lo, hi, ok
}

// inline converts one inline node and returns its full extent, markers
// included.
func (b *treeBuilder) inline(node ast.Node) ([]*mdedit.Node, int, int, bool) {
	switch n := node.(type) {
	case *ast.Text:
		return nil, n.Segment.Start, n.Segment.Stop, true

	case *ast.String:
		return nil, 0, 0, false

	case *ast.CodeSpan:
		_, lo, hi, ok := b.inlineChildren(n)
		if !ok {
			return nil, 0, 0, false
		}
		from, to, found := b.delimited(lo, hi, '`', 0, true)
		if !found {
			b.skip(n, lo)
			return nil, lo, hi, true
		}
		return []*mdedit.Node{{Type: mdedit.NodeInlineCode, From: from, To: to, Tag: mdedit.TagMonospace}}, from, to, true

	case *ast.Emphasis:
		kids, lo, hi, ok := b.inlineChildren(n)
		if !ok {
			return kids, 0, 0, false
		}
		marker := byte('*')
		if lo > 0 && b.src[lo-1] == '_' {
			marker = '_'
		}
		from, to, found := b.delimited(lo, hi, marker, n.Level, false)
		if !found {
			b.skip(n, lo)
			return kids, lo, hi, true
		}
		typ, tag := mdedit.NodeEmphasis, mdedit.TagEmphasis
		if n.Level >= 2 {
			typ, tag = mdedit.NodeStrongEmphasis, mdedit.TagStrong
		}
		return []*mdedit.Node{{Type: typ, From: from, To: to, Tag: tag, Children: kids}}, from, to, true

	case *east.Strikethrough:
		kids, lo, hi, ok := b.inlineChildren(n)
		if !ok {
			return kids, 0, 0, false
		}
		from, to, found := b.delimited(lo, hi, '~', 2, false)
		if !found {
			b.skip(n, lo)
			return kids, lo, hi, true
		}
		return []*mdedit.Node{{
			Type: mdedit.NodeStrikethrough, From: from, To: to, Tag: mdedit.TagStrikethrough, Children: kids,
		}}, from, to, true

	case *ast.Link:
		return b.link(n, mdedit.NodeLink, false)

	case *ast.Image:
		return b.link(n, mdedit.NodeImage, true)

	case *ast.AutoLink:
		return b.autolink(n)

	case *ast.RawHTML:
		if n.Segments.Len() == 0 {
			return nil, 0, 0, false
		}
		lo, hi := n.Segments.At(0).Start, n.Segments.At(n.Segments.Len()-1).Stop
		return []*mdedit.Node{{Type: mdedit.NodeHTMLTag, From: lo, To: hi}}, lo, hi, true

	default:
		return b.inlineChildren(n)
	}
}

// delimited extends [lo, hi) over the delimiter runs around it. Runs must
// have equal length on both sides, at most limit when limit is positive. With
// pad, one space or line break on each side between content and delimiter is
// absorbed first.
func (b *treeBuilder) delimited(lo, hi int, marker byte, limit int, pad bool) (int, int, bool) {
	src := b.src
	from, to := lo, hi
	if pad && from >= 2 && isPad(src[from-1]) && src[from-2] == marker &&
		to+1 < len(src) && isPad(src[to]) && src[to+1] == marker {
		from--
		to++
	}
	open := 0
	for from > 0 && src[from-1] == marker && (limit <= 0 || open < limit) {
		from--
		open++
	}
	closing := 0
	for to < len(src) && src[to] == marker && closing < open {
		to++
		closing++
	}
	if open == 0 || closing != open {
		return lo, hi, false
	}
	return from, to, true
}

// link spans "[label]" plus any "(destination)" or "[reference]" tail.
func (b *treeBuilder) link(n ast.Node, typ mdedit.NodeType, image bool) ([]*mdedit.Node, int, int, bool) {
	kids, lo, hi, ok := b.inlineChildren(n)
	if !ok {
		b.skip(n, 0)
		return kids, 0, 0, false
	}
	from := lo - 1
	if image {
		from--
	}
	if from < 0 || b.src[lo-1] != '[' || (image && b.src[from] != '!') || hi >= len(b.src) || b.src[hi] != ']' {
		b.skip(n, lo)
		return kids, lo, hi, true
	}
	to, dstFrom, dstTo := b.linkTail(hi)
	node := &mdedit.Node{Type: typ, From: from, To: to, Tag: mdedit.TagLink, Children: kids}
	if dstTo > dstFrom {
		node.Children = append(node.Children, &mdedit.Node{
			Type: mdedit.NodeLinkURL, From: dstFrom, To: dstTo, Tag: mdedit.TagURL,
		})
	}
	return []*mdedit.Node{node}, from, to, true
}

// linkTail scans past the closing bracket at closeAt and returns the end of
// the link and the destination range, if any.
func (b *treeBuilder) linkTail(closeAt int) (end, dstFrom, dstTo int) {
	src := b.src
	i := closeAt + 1
	if i >= len(src) {
		return i, 0, 0
	}
	switch src[i] {
	case '(':
		i = skipSpace(src, i+1)
		if i < len(src) && src[i] == '<' {
			dstFrom = i + 1
			j := bytes.IndexByte(src[dstFrom:], '>')
			if j < 0 {
				return closeAt + 1, 0, 0
			}
			dstTo = dstFrom + j
			i = dstTo + 1
		} else {
			dstFrom = i
			depth := 0
		dest:
			for ; i < len(src); i++ {
				switch c := src[i]; {
				case c == '\\':
					i++
				case c == '(':
					depth++
				case c == ')':
					if depth == 0 {
						break dest
					}
					depth--
				case c == ' ' || c == '\t' || c == '\n' || c == '\r':
					break dest
				}
			}
			i = min(i, len(src))
			dstTo = i
		}
		for i < len(src) && src[i] != ')' {
			switch src[i] {
			case '"', '\'':
				if j := bytes.IndexByte(src[i+1:], src[i]); j >= 0 {
					i += j + 1
				}
			case '(':
				if j := bytes.IndexByte(src[i+1:], ')'); j >= 0 {
					i += j + 1
				}
			case '\\':
				i++
			}
			i++
		}
		return min(i+1, len(src)), dstFrom, dstTo
	case '[':
		if j := bytes.IndexByte(src[i+1:], ']'); j >= 0 {
			return i + j + 2, 0, 0
		}
	}
	return closeAt + 1, 0, 0
}

// autolink locates the label inside the source. The label is a subslice of
// the parsed buffer, so its offset follows from the capacities.
func (b *treeBuilder) autolink(n *ast.AutoLink) ([]*mdedit.Node, int, int, bool) {
	label := n.Label(b.src)
	from := cap(b.src) - cap(label)
	to := from + len(label)
	if len(label) == 0 || from < 0 || to > len(b.src) || !bytes.Equal(b.src[from:to], label) {
		b.logger.Warn("autolink position not recoverable", "url", string(label))
		return nil, 0, 0, false
	}
	url := &mdedit.Node{Type: mdedit.NodeURL, From: from, To: to, Tag: mdedit.TagURL}
	if from > 0 && to < len(b.src) && b.src[from-1] == '<' && b.src[to] == '>' {
		return []*mdedit.Node{{
			Type: mdedit.NodeAutolink, From: from - 1, To: to + 1, Children: []*mdedit.Node{url},
		}}, from - 1, to + 1, true
	}
	return []*mdedit.Node{url}, from, to, true
}

func (b *treeBuilder) skip(n ast.Node, at int) {
	b.logger.Warn("skipping node with unrecoverable extent", "kind", n.Kind().String(), "offset", at)
}

// lineRange returns the extent of a block's line segments without the
// trailing line break.
func (b *treeBuilder) lineRange(lines *text.Segments) (int, int, bool) {
	if lines == nil || lines.Len() == 0 {
		return 0, 0, false
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)
	lo := min(first.Start, len(b.src))
	hi := max(lo, trimBreak(b.src, last.Start, min(last.Stop, len(b.src))))
	return lo, hi, true
}

func (b *treeBuilder) nextLine(cursor int, match func(string) bool) (mdedit.Line, bool) {
	for n := max(cursor, 1); n <= b.doc.Lines(); n++ {
		if l := b.doc.Line(n); match(l.Text) {
			return l, true
		}
	}
	return mdedit.Line{}, false
}

func trimBreak(src []byte, start, stop int) int {
	for stop > start && (src[stop-1] == '\n' || src[stop-1] == '\r') {
		stop--
	}
	return stop
}

func skipSpace(src []byte, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
		i++
	}
	return i
}

func isPad(c byte) bool { return c == ' ' || c == '\n' }

func isContentLine(s string) bool { return strings.TrimSpace(s) != "" }

func isQuoteOnly(s string) bool {
	return strings.Contains(s, ">") && strings.Trim(s, " \t>") == ""
}

func isFenceLine(s string) bool {
	_, _, _, ok := fence(s)
	return ok
}

func isSetextUnderline(s string) bool {
	t := strings.TrimRight(strings.TrimLeft(s, " \t>"), " \t\r")
	return t != "" && (strings.Trim(t, "=") == "" || strings.Trim(t, "-") == "")
}

// fence finds an opening fence run of three or more backticks or tildes.
func fence(s string) (marker byte, width, at int, ok bool) {
	at = strings.IndexAny(s, "`~")
	if at < 0 {
		return 0, 0, 0, false
	}
	marker = s[at]
	width = len(s[at:]) - len(strings.TrimLeft(s[at:], string(marker)))
	return marker, width, at, width >= 3
}

func closesFence(s string, marker byte, width int) bool {
	t := strings.TrimSpace(strings.TrimLeft(s, " \t>"))
	return len(t) >= width && strings.Trim(t, string(marker)) == ""
}
