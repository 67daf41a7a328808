package mdedit_test

import (
	"testing"

	"github.com/fwojciec/mdedit"
	"github.com/fwojciec/mdedit/mock"
	"github.com/stretchr/testify/assert"
)

func node(typ mdedit.NodeType, from, to int, children ...*mdedit.Node) *mdedit.Node {
	return &mdedit.Node{Type: typ, From: from, To: to, Children: children}
}

func docTree(src string, children ...*mdedit.Node) (*mdedit.Document, *mdedit.Tree) {
	return mdedit.NewDocument(src), &mdedit.Tree{Root: node(mdedit.NodeDocument, 0, len(src), children...)}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("plain paragraph yields nothing", func(t *testing.T) {
		t.Parallel()
		doc, tree := docTree("hello", node(mdedit.NodeParagraph, 0, 5))
		b := mdedit.NewBuilder(mdedit.DefaultPasses(true), nil)
		assert.Empty(t, b.Build(tree, doc))
	})

	t.Run("fenced code yields one region per line", func(t *testing.T) {
		t.Parallel()
		src := "```\na\n```\nafter"
		doc, tree := docTree(src, node(mdedit.NodeFencedCode, 0, 9), node(mdedit.NodeParagraph, 10, 15))
		b := mdedit.NewBuilder(mdedit.DefaultPasses(false), nil)
		assert.Equal(t, []mdedit.Region{
			{From: 0, To: 0, Kind: mdedit.CodeBlockLine},
			{From: 4, To: 4, Kind: mdedit.CodeBlockLine},
			{From: 6, To: 6, Kind: mdedit.CodeBlockLine},
		}, b.Build(tree, doc))
	})

	t.Run("inline code yields its span", func(t *testing.T) {
		t.Parallel()
		doc, tree := docTree("a `b` c", node(mdedit.NodeParagraph, 0, 7, node(mdedit.NodeInlineCode, 2, 5)))
		b := mdedit.NewBuilder(mdedit.DefaultPasses(false), nil)
		assert.Equal(t, []mdedit.Region{{From: 2, To: 5, Kind: mdedit.CodeBlockInline}}, b.Build(tree, doc))
	})

	t.Run("blockquote marks every line", func(t *testing.T) {
		t.Parallel()
		doc, tree := docTree("> a\n> b", node(mdedit.NodeBlockquote, 0, 7))
		b := mdedit.NewBuilder(mdedit.DefaultPasses(false), nil)
		assert.Equal(t, []int{0, 4}, mdedit.NewRegionSet(b.Build(tree, doc)).Lines(mdedit.BlockquoteLine))
	})

	t.Run("autolink pass checks the URL pattern", func(t *testing.T) {
		t.Parallel()
		src := "http://a.io and b.io"
		doc, tree := docTree(src, node(mdedit.NodeParagraph, 0, len(src),
			node(mdedit.NodeURL, 0, 11),
			node(mdedit.NodeURL, 16, 20),
		))
		with := mdedit.NewBuilder(mdedit.DefaultPasses(true), nil)
		assert.Equal(t, []mdedit.Region{{From: 0, To: 11, Kind: mdedit.AutolinkSpan}}, with.Build(tree, doc))

		without := mdedit.NewBuilder(mdedit.DefaultPasses(false), nil)
		assert.Empty(t, without.Build(tree, doc))
	})

	t.Run("link destinations are not autolinks", func(t *testing.T) {
		t.Parallel()
		src := "[t](http://a.io)"
		doc, tree := docTree(src, node(mdedit.NodeLink, 0, len(src), node(mdedit.NodeLinkURL, 4, 15)))
		b := mdedit.NewBuilder(mdedit.DefaultPasses(true), nil)
		assert.Empty(t, b.Build(tree, doc))
	})

	t.Run("malformed nodes are skipped but their children visited", func(t *testing.T) {
		t.Parallel()
		var warnings int
		logger := &mock.Logger{WarnFn: func(string, ...any) { warnings++ }}
		doc, tree := docTree("`x`", node(mdedit.NodeBlockquote, 0, 99, node(mdedit.NodeInlineCode, 0, 3)))
		b := mdedit.NewBuilder(mdedit.DefaultPasses(false), logger)
		assert.Equal(t, []mdedit.Region{{From: 0, To: 3, Kind: mdedit.CodeBlockInline}}, b.Build(tree, doc))
		assert.Equal(t, 1, warnings)
	})

	t.Run("nested regions come out ordered", func(t *testing.T) {
		t.Parallel()
		src := "> ```\n> x\n> ```"
		doc, tree := docTree(src, node(mdedit.NodeBlockquote, 0, len(src), node(mdedit.NodeFencedCode, 2, len(src))))
		regions := mdedit.NewBuilder(mdedit.DefaultPasses(false), nil).Build(tree, doc)
		assert.Len(t, regions, 6)
		for i := 1; i < len(regions); i++ {
			assert.LessOrEqual(t, regions[i-1].From, regions[i].From)
		}
	})

	t.Run("building twice gives the same result", func(t *testing.T) {
		t.Parallel()
		doc, tree := docTree("> q\n`c`", node(mdedit.NodeBlockquote, 0, 3), node(mdedit.NodeInlineCode, 4, 7))
		b := mdedit.NewBuilder(mdedit.DefaultPasses(true), nil)
		assert.Equal(t, b.Build(tree, doc), b.Build(tree, doc))
	})

	t.Run("nil tree yields nothing", func(t *testing.T) {
		t.Parallel()
		b := mdedit.NewBuilder(mdedit.DefaultPasses(true), nil)
		assert.Empty(t, b.Build(nil, mdedit.NewDocument("x")))
	})
}

func TestBuilder_Passes(t *testing.T) {
	t.Parallel()
	b := mdedit.NewBuilder(mdedit.DefaultPasses(true), nil)
	passes := b.Passes()
	assert.Equal(t, []mdedit.Pass{
		mdedit.PassCodeBlock, mdedit.PassInlineCode, mdedit.PassBlockquote, mdedit.PassAutolink,
	}, passes)
	passes[0] = mdedit.PassAutolink
	assert.Equal(t, mdedit.PassCodeBlock, b.Passes()[0])
	assert.Equal(t, "inline-code", mdedit.PassInlineCode.String())
}
