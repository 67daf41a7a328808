package chroma_test

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/mdedit"
	mdchroma "github.com/fwojciec/mdedit/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenizer() *mdchroma.Tokenizer {
	return mdchroma.NewTokenizer(mdchroma.DefaultExpiration, mdchroma.DefaultCleanupInterval, nil)
}

func TestTokenizer_Tokenize(t *testing.T) {
	t.Parallel()

	t.Run("unknown language yields nothing", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, newTokenizer().Tokenize("no-such-language", "x"))
	})

	t.Run("empty code yields nothing", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, newTokenizer().Tokenize("go", ""))
	})

	t.Run("string literal is tagged", func(t *testing.T) {
		t.Parallel()
		code := "x := \"hi\"\n"
		tokens := newTokenizer().Tokenize("go", code)
		require.NotEmpty(t, tokens)

		var found bool
		for _, tok := range tokens {
			if code[tok.Offset:tok.Offset+tok.Len] == `"hi"` {
				found = true
				assert.Equal(t, "string", tok.Tag.Name())
			}
		}
		assert.True(t, found, "no token for the string literal")
	})

	t.Run("tokens stay inside the code", func(t *testing.T) {
		t.Parallel()
		code := "func main() {\n\t// hi\n\treturn 1.5\n}"
		for _, tok := range newTokenizer().Tokenize("go", code) {
			assert.GreaterOrEqual(t, tok.Offset, 0)
			assert.Positive(t, tok.Len)
			assert.LessOrEqual(t, tok.Offset+tok.Len, len(code))
			assert.NotNil(t, tok.Tag)
		}
	})

	t.Run("results are cached", func(t *testing.T) {
		t.Parallel()
		tok := newTokenizer()
		first := tok.Tokenize("python", "print('x')\n")
		assert.Equal(t, 1, tok.Len())
		second := tok.Tokenize("python", "print('x')\n")
		assert.Equal(t, first, second)
		assert.Equal(t, 1, tok.Len())

		tok.Flush()
		assert.Equal(t, 0, tok.Len())
	})
}

func TestTagFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tt   chroma.TokenType
		want string
	}{
		{chroma.CommentSingle, "lineComment"},
		{chroma.Comment, "comment"},
		{chroma.KeywordDeclaration, "definitionKeyword"},
		{chroma.KeywordReserved, "keyword"},
		{chroma.LiteralStringDouble, "string"},
		{chroma.LiteralStringEscape, "escape"},
		{chroma.LiteralNumberHex, "number"},
		{chroma.NameFunction, "function"},
		{chroma.NameOther, "variableName"},
		{chroma.Operator, "operator"},
		{chroma.Punctuation, "punctuation"},
	}
	for _, tc := range tests {
		t.Run(tc.tt.String(), func(t *testing.T) {
			t.Parallel()
			tag := mdchroma.TagFor(tc.tt)
			require.NotNil(t, tag)
			assert.Equal(t, tc.want, tag.Name())
			assert.Same(t, mdedit.DefaultTags().Lookup(tc.want), tag)
		})
	}

	t.Run("text has no tag", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, mdchroma.TagFor(chroma.Text))
		assert.Nil(t, mdchroma.TagFor(chroma.TextWhitespace))
	})
}
