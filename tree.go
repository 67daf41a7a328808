// Package mdedit defines the domain types of a Markdown editing component:
// syntax trees, decoration regions, the decoration engine and the tag
// classifier that maps highlighting categories to presentation classes.
// Subpackages bind these types to goldmark, chroma, Bubble Tea and friends.
package mdedit

// NodeType names a syntax-tree node category.
type NodeType string

// Node types produced by Markdown parsers.
const (
	NodeDocument       NodeType = "Document"
	NodeParagraph      NodeType = "Paragraph"
	NodeATXHeading1    NodeType = "ATXHeading1"
	NodeATXHeading2    NodeType = "ATXHeading2"
	NodeATXHeading3    NodeType = "ATXHeading3"
	NodeATXHeading4    NodeType = "ATXHeading4"
	NodeATXHeading5    NodeType = "ATXHeading5"
	NodeATXHeading6    NodeType = "ATXHeading6"
	NodeSetextHeading1 NodeType = "SetextHeading1"
	NodeSetextHeading2 NodeType = "SetextHeading2"
	NodeHeaderMark     NodeType = "HeaderMark"
	NodeFencedCode     NodeType = "FencedCode"
	NodeCodeBlock      NodeType = "CodeBlock"
	NodeCodeInfo       NodeType = "CodeInfo"
	NodeCodeText       NodeType = "CodeText"
	NodeCodeMark       NodeType = "CodeMark"
	NodeCodeToken      NodeType = "CodeToken"
	NodeBlockquote     NodeType = "Blockquote"
	NodeQuoteMark      NodeType = "QuoteMark"
	NodeBulletList     NodeType = "BulletList"
	NodeOrderedList    NodeType = "OrderedList"
	NodeListItem       NodeType = "ListItem"
	NodeHorizontalRule NodeType = "HorizontalRule"
	NodeHTMLBlock      NodeType = "HTMLBlock"
	NodeEmphasis       NodeType = "Emphasis"
	NodeStrongEmphasis NodeType = "StrongEmphasis"
	NodeStrikethrough  NodeType = "Strikethrough"
	NodeInlineCode     NodeType = "InlineCode"
	NodeLink           NodeType = "Link"
	NodeImage          NodeType = "Image"
	NodeLinkURL        NodeType = "LinkURL" // destination of [text](url)
	NodeAutolink       NodeType = "Autolink"
	NodeURL            NodeType = "URL" // bare URL or e-mail address
	NodeHTMLTag        NodeType = "HTMLTag"
)

// Node is one node of a parsed document. From and To are byte offsets into
// the parsed source, To exclusive. Tag is the highlighting category, or nil.
type Node struct {
	Type     NodeType
	From     int
	To       int
	Tag      *Tag
	Children []*Node
}

// Is reports whether the node has type t.
func (n *Node) Is(t NodeType) bool {
	return n != nil && n.Type == t
}

// Tree is an immutable syntax tree. A new tree is produced per parse.
type Tree struct {
	Root *Node
}

// Iterate walks the tree in pre-order. Returning false from enter skips the
// node's children.
func (t *Tree) Iterate(enter func(n *Node) bool) {
	if t == nil || t.Root == nil {
		return
	}
	iterate(t.Root, enter)
}

func iterate(n *Node, enter func(n *Node) bool) {
	if n == nil {
		return
	}
	if !enter(n) {
		return
	}
	for _, c := range n.Children {
		iterate(c, enter)
	}
}

// Parser turns Markdown source into a syntax tree.
type Parser interface {
	Parse(source string) (*Tree, error)
}

// Token is one highlighted token inside a code block. Offset is relative to
// the start of the code passed to the tokenizer.
type Token struct {
	Offset int
	Len    int
	Tag    *Tag
}

// CodeTokenizer highlights fenced code contents for a language. It returns
// nil when the language is unknown.
type CodeTokenizer interface {
	Tokenize(language, code string) []Token
}

// Differ computes the change set turning before into after.
type Differ interface {
	Diff(before, after string) ChangeSet
}
