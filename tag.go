package mdedit

// Tag identifies a highlighting category. Tags are compared by identity:
// two tags with the same name from different tables are different tags.
type Tag struct {
	name string
}

// Name returns the tag's category name, e.g. "definitionKeyword".
func (t *Tag) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// String implements fmt.Stringer.
func (t *Tag) String() string { return t.Name() }

// tagNames is the category vocabulary in table order. It mirrors the tag set
// Markdown-aware highlighters conventionally expose, so style sheets written
// against "cm-<name>" classes carry over.
var tagNames = []string{
	"comment", "lineComment", "blockComment", "docComment",
	"name", "variableName", "typeName", "tagName", "propertyName",
	"attributeName", "className", "labelName", "namespace", "macroName",
	"literal", "string", "docString", "character", "attributeValue",
	"number", "integer", "float", "bool", "regexp", "escape", "color", "url",
	"keyword", "self", "null", "atom", "unit", "modifier",
	"operatorKeyword", "controlKeyword", "definitionKeyword", "moduleKeyword",
	"operator", "derefOperator", "arithmeticOperator", "logicOperator",
	"bitwiseOperator", "compareOperator", "updateOperator",
	"definitionOperator", "typeOperator", "controlOperator",
	"punctuation", "separator", "bracket", "angleBracket", "squareBracket",
	"paren", "brace",
	"content", "heading", "heading1", "heading2", "heading3", "heading4",
	"heading5", "heading6", "contentSeparator", "list", "quote", "emphasis",
	"strong", "link", "monospace", "strikethrough",
	"inserted", "deleted", "changed", "invalid",
	"meta", "documentMeta", "annotation", "processingInstruction",
	"definition", "constant", "function", "standard", "local", "special",
}

// TagSet is an immutable, ordered table of tags.
type TagSet struct {
	tags   []*Tag
	byName map[string]*Tag
}

// NewTagSet builds a table from names. Duplicate names keep the first tag.
func NewTagSet(names ...string) *TagSet {
	s := &TagSet{byName: make(map[string]*Tag, len(names))}
	for _, n := range names {
		if _, ok := s.byName[n]; ok || n == "" {
			continue
		}
		t := &Tag{name: n}
		s.tags = append(s.tags, t)
		s.byName[n] = t
	}
	return s
}

var defaultTags = NewTagSet(tagNames...)

// DefaultTags returns the shared table of all built-in tags.
func DefaultTags() *TagSet { return defaultTags }

// Lookup returns the tag with the given name, or nil.
func (s *TagSet) Lookup(name string) *Tag {
	if s == nil {
		return nil
	}
	return s.byName[name]
}

// MustLookup is Lookup for names known to exist. It panics otherwise and is
// meant for package-level tables.
func (s *TagSet) MustLookup(name string) *Tag {
	t := s.Lookup(name)
	if t == nil {
		panic("mdedit: unknown tag " + name)
	}
	return t
}

// Tags returns the tags in table order. The slice is a copy.
func (s *TagSet) Tags() []*Tag {
	if s == nil {
		return nil
	}
	return append([]*Tag(nil), s.tags...)
}

// Len returns the number of tags.
func (s *TagSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tags)
}

// IgnoreSet is an immutable set of tags that get no class under the default
// policy.
type IgnoreSet struct {
	members map[*Tag]struct{}
}

// NewIgnoreSet builds a set from tags. Nil tags are dropped.
func NewIgnoreSet(tags ...*Tag) *IgnoreSet {
	s := &IgnoreSet{members: make(map[*Tag]struct{}, len(tags))}
	for _, t := range tags {
		if t != nil {
			s.members[t] = struct{}{}
		}
	}
	return s
}

// Contains reports whether t is in the set.
func (s *IgnoreSet) Contains(t *Tag) bool {
	if s == nil || t == nil {
		return false
	}
	_, ok := s.members[t]
	return ok
}

// Len returns the number of members.
func (s *IgnoreSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

var ignoredNames = []string{
	"comment", "name", "variableName", "tagName", "attributeName",
	"character", "attributeValue", "number", "integer", "float", "escape",
	"color", "self", "null", "unit", "modifier",
	"operatorKeyword", "controlKeyword", "definitionKeyword", "moduleKeyword",
	"operator", "derefOperator", "arithmeticOperator", "logicOperator",
	"bitwiseOperator", "compareOperator", "updateOperator",
	"definitionOperator", "typeOperator", "controlOperator",
	"punctuation", "separator", "bracket", "angleBracket", "squareBracket",
	"paren", "brace",
	"content", "quote", "monospace", "changed", "documentMeta", "annotation",
	"processingInstruction", "definition", "constant", "function", "standard",
	"local", "special",
}

var defaultIgnore = func() *IgnoreSet {
	tags := make([]*Tag, 0, len(ignoredNames))
	for _, n := range ignoredNames {
		tags = append(tags, defaultTags.MustLookup(n))
	}
	return NewIgnoreSet(tags...)
}()

// DefaultIgnoreSet returns the shared set of categories considered too
// generic to style: punctuation, operators, literals, names and structural
// markers.
func DefaultIgnoreSet() *IgnoreSet { return defaultIgnore }

// Well-known tags used by parsers and passes.
var (
	TagURL                   = defaultTags.MustLookup("url")
	TagLink                  = defaultTags.MustLookup("link")
	TagHeading               = defaultTags.MustLookup("heading")
	TagEmphasis              = defaultTags.MustLookup("emphasis")
	TagStrong                = defaultTags.MustLookup("strong")
	TagMonospace             = defaultTags.MustLookup("monospace")
	TagStrikethrough         = defaultTags.MustLookup("strikethrough")
	TagQuote                 = defaultTags.MustLookup("quote")
	TagList                  = defaultTags.MustLookup("list")
	TagContentSeparator      = defaultTags.MustLookup("contentSeparator")
	TagProcessingInstruction = defaultTags.MustLookup("processingInstruction")
	TagLabelName             = defaultTags.MustLookup("labelName")
	TagString                = defaultTags.MustLookup("string")
	TagEscape                = defaultTags.MustLookup("escape")
	TagCharacter             = defaultTags.MustLookup("character")
	TagComment               = defaultTags.MustLookup("comment")
	TagMeta                  = defaultTags.MustLookup("meta")
)

// HeadingTag returns the tag for a heading of the given level (1-6), or the
// generic heading tag for other levels.
func HeadingTag(level int) *Tag {
	switch level {
	case 1, 2, 3, 4, 5, 6:
		return defaultTags.MustLookup("heading" + string(rune('0'+level)))
	default:
		return TagHeading
	}
}
