package mdedit

import "strings"

// Policy selects how tags resolve to presentation classes.
type Policy int

const (
	// PolicyDefault gives every tag outside the ignore set a "cm-<name>" class.
	PolicyDefault Policy = iota
	// PolicyExternal maps tags onto the widely used "token <class>"
	// vocabulary, falling back to PolicyDefault.
	PolicyExternal
	// PolicyCustom delegates entirely to a caller-supplied ClassifyFunc.
	PolicyCustom
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case PolicyDefault:
		return "default"
	case PolicyExternal:
		return "external"
	case PolicyCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a configuration string to a Policy. Unknown values
// resolve to PolicyDefault.
func ParsePolicy(s string) Policy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "external", "prism":
		return PolicyExternal
	case "custom":
		return PolicyCustom
	default:
		return PolicyDefault
	}
}

// ClassifyFunc maps a tag to a presentation class. An empty result means the
// tag gets no class.
type ClassifyFunc func(name string, tag *Tag) string

// ClassifierOptions configures a Classifier.
type ClassifierOptions struct {
	Policy Policy
	// Ignore overrides the default ignore set when non-nil.
	Ignore *IgnoreSet
	// Custom is used when Policy is PolicyCustom. A nil Custom under
	// PolicyCustom classifies nothing.
	Custom ClassifyFunc
	// OnlyAutolink suppresses classes for the link and url tags so that
	// only bare autolinks, decorated by the autolink pass, stand out.
	OnlyAutolink bool
}

// Classifier resolves tags to presentation classes under a fixed policy.
// It holds no mutable state and is safe to share.
type Classifier struct {
	policy       Policy
	ignore       *IgnoreSet
	custom       ClassifyFunc
	onlyAutolink bool
}

// NewClassifier returns a Classifier for opts.
func NewClassifier(opts ClassifierOptions) *Classifier {
	ignore := opts.Ignore
	if ignore == nil {
		ignore = DefaultIgnoreSet()
	}
	return &Classifier{
		policy:       opts.Policy,
		ignore:       ignore,
		custom:       opts.Custom,
		onlyAutolink: opts.OnlyAutolink,
	}
}

// Policy returns the classifier's policy.
func (c *Classifier) Policy() Policy { return c.policy }

// Classify returns the class for tag, or "" when the tag gets none.
func (c *Classifier) Classify(name string, tag *Tag) string {
	if name == "" || tag == nil {
		return ""
	}
	if c.onlyAutolink && (tag == TagLink || tag == TagURL) {
		return ""
	}
	switch c.policy {
	case PolicyCustom:
		if c.custom == nil {
			return ""
		}
		return strings.TrimSpace(c.custom(name, tag))
	case PolicyExternal:
		if cls := externalClass(name); cls != "" {
			return cls
		}
		return defaultClass(name, tag, c.ignore)
	default:
		return defaultClass(name, tag, c.ignore)
	}
}

// ClassTable resolves every tag in tags once. Tags without a class are
// omitted.
func (c *Classifier) ClassTable(tags *TagSet) map[*Tag]string {
	out := make(map[*Tag]string, tags.Len())
	for _, t := range tags.Tags() {
		if cls := c.Classify(t.Name(), t); cls != "" {
			out[t] = cls
		}
	}
	return out
}

func defaultClass(name string, tag *Tag, ignore *IgnoreSet) string {
	if ignore.Contains(tag) {
		return ""
	}
	return "cm-" + name
}

// externalTable is the exact-match part of the external scheme.
var externalTable = map[string]string{
	"className":     "class-name",
	"bool":          "boolean",
	"number":        "number",
	"integer":       "number",
	"float":         "number",
	"atom":          "number",
	"unit":          "number",
	"modifier":      "number",
	"string":        "string",
	"literal":       "string",
	"character":     "char",
	"regexp":        "regex",
	"constant":      "constant",
	"function":      "function",
	"special":       "important",
	"annotation":    "important",
	"escape":        "important",
	"standard":      "builtin",
	"punctuation":   "punctuation",
	"separator":     "punctuation",
	"bracket":       "punctuation",
	"angleBracket":  "punctuation",
	"squareBracket": "punctuation",
	"paren":         "punctuation",
	"brace":         "punctuation",
	"self":          "keyword",
	"null":          "keyword",
	"propertyName":  "property",
	"variableName":  "variable",
	"namespace":     "namespace",
	"meta":          "meta",
	"labelName":     "label",
}

// externalClass applies the exact table, then the substring rules. Order
// matters: "definitionKeyword" has no exact entry and must reach the keyword
// rule before any ignore-set check.
func externalClass(name string) string {
	direct, ok := externalTable[name]
	if !ok {
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "comment"):
			direct = "comment"
		case strings.Contains(lower, "operator"):
			direct = "operator"
		case strings.Contains(lower, "keyword"):
			direct = "keyword"
		}
	}
	if direct == "" {
		return ""
	}
	return "token " + direct
}

// ExternalClass is the full external-scheme mapping, usable as a
// ClassifyFunc for callers composing their own policy.
func ExternalClass(name string, tag *Tag) string {
	if name == "" || tag == nil {
		return ""
	}
	if cls := externalClass(name); cls != "" {
		return cls
	}
	return defaultClass(name, tag, DefaultIgnoreSet())
}
