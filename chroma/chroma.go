// Package chroma implements [mdedit.CodeTokenizer] with chroma lexers.
// Results are cached per language and code, so re-parsing a document after an
// edit outside a code block does not re-lex it.
package chroma

import (
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/mdedit"
	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Interface compliance check.
var _ mdedit.CodeTokenizer = (*Tokenizer)(nil)

// Tokenizer lexes fenced code and maps chroma token types onto the default
// tag set.
type Tokenizer struct {
	cache  *gocache.Cache
	logger mdedit.Logger
}

// NewTokenizer returns a Tokenizer whose cache entries expire after
// expiration. A nil logger discards diagnostics.
func NewTokenizer(expiration, cleanupInterval time.Duration, logger mdedit.Logger) *Tokenizer {
	if logger == nil {
		logger = mdedit.NopLogger{}
	}
	return &Tokenizer{
		cache:  gocache.New(expiration, cleanupInterval),
		logger: logger,
	}
}

// Tokenize returns tokens for code, or nil when no lexer matches language.
func (t *Tokenizer) Tokenize(language, code string) []mdedit.Token {
	if language == "" || code == "" {
		return nil
	}
	key := language + "\x00" + code
	if v, found := t.cache.Get(key); found {
		if tokens, ok := v.([]mdedit.Token); ok {
			t.logger.Debug("token cache hit", "language", language)
			return tokens
		}
		t.logger.Warn("wrong type in token cache", "language", language)
	}

	tokens := t.tokenize(language, code)
	t.cache.SetDefault(key, tokens)
	return tokens
}

// Len returns the number of cached entries, expired ones included.
func (t *Tokenizer) Len() int { return t.cache.ItemCount() }

// Flush drops every cached entry.
func (t *Tokenizer) Flush() { t.cache.Flush() }

func (t *Tokenizer) tokenize(language, code string) []mdedit.Token {
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		t.logger.Warn("tokenise failed", "language", language, "error", err)
		return nil
	}

	var out []mdedit.Token
	offset := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		n := len(tok.Value)
		// Lexers may append a final newline the code did not have.
		if offset+n > len(code) {
			n = len(code) - offset
		}
		if n <= 0 {
			break
		}
		if tag := TagFor(tok.Type); tag != nil {
			out = append(out, mdedit.Token{Offset: offset, Len: n, Tag: tag})
		}
		offset += n
	}
	return out
}

// Exact types, then subcategories, then categories, from most to least
// specific.
var (
	typeTags = map[chroma.TokenType]string{
		chroma.CommentSingle:        "lineComment",
		chroma.CommentHashbang:      "lineComment",
		chroma.CommentMultiline:     "blockComment",
		chroma.CommentPreproc:       "meta",
		chroma.CommentPreprocFile:   "string",
		chroma.KeywordType:          "typeName",
		chroma.KeywordConstant:      "bool",
		chroma.KeywordDeclaration:   "definitionKeyword",
		chroma.KeywordNamespace:     "moduleKeyword",
		chroma.NameAttribute:        "attributeName",
		chroma.NameBuiltin:          "standard",
		chroma.NameBuiltinPseudo:    "self",
		chroma.NameClass:            "className",
		chroma.NameConstant:         "constant",
		chroma.NameDecorator:        "annotation",
		chroma.NameFunction:         "function",
		chroma.NameFunctionMagic:    "function",
		chroma.NameLabel:            "labelName",
		chroma.NameNamespace:        "namespace",
		chroma.NameProperty:         "propertyName",
		chroma.NameTag:              "tagName",
		chroma.LiteralStringEscape:  "escape",
		chroma.LiteralStringRegex:   "regexp",
		chroma.LiteralStringDoc:     "docString",
		chroma.LiteralStringChar:    "character",
		chroma.LiteralNumberFloat:   "float",
		chroma.LiteralNumberInteger: "integer",
		chroma.OperatorWord:         "operatorKeyword",
		chroma.GenericInserted:      "inserted",
		chroma.GenericDeleted:       "deleted",
		chroma.GenericHeading:       "heading",
		chroma.GenericSubheading:    "heading",
		chroma.GenericEmph:          "emphasis",
		chroma.GenericStrong:        "strong",
		chroma.GenericError:         "invalid",
		chroma.Error:                "invalid",
	}
	subCategoryTags = map[chroma.TokenType]string{
		chroma.LiteralString: "string",
		chroma.LiteralNumber: "number",
	}
	categoryTags = map[chroma.TokenType]string{
		chroma.Comment:     "comment",
		chroma.Keyword:     "keyword",
		chroma.Name:        "variableName",
		chroma.Literal:     "literal",
		chroma.Operator:    "operator",
		chroma.Punctuation: "punctuation",
	}
)

// TagFor returns the default tag for a chroma token type, or nil for text
// and whitespace.
func TagFor(tt chroma.TokenType) *mdedit.Tag {
	name, ok := typeTags[tt]
	if !ok {
		name, ok = subCategoryTags[tt.SubCategory()]
	}
	if !ok {
		name = categoryTags[tt.Category()]
	}
	if name == "" {
		return nil
	}
	return mdedit.DefaultTags().Lookup(name)
}
