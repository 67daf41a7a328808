package mdedit

// ClassStyle is the terminal styling for one presentation class. Colors are
// ANSI indices (0-15); -1 leaves the color unset so the terminal default
// shows through.
type ClassStyle struct {
	Foreground    int
	Background    int
	Bold          bool
	Italic        bool
	Underline     bool
	Faint         bool
	Strikethrough bool
}

// Theme maps presentation classes to styles. The user's terminal theme
// determines the actual RGB values, so the editor matches any color scheme.
type Theme struct {
	Placeholder int // placeholder text color
	Classes     map[string]ClassStyle
}

// Style returns the style for class and whether the theme defines one.
func (t Theme) Style(class string) (ClassStyle, bool) {
	s, ok := t.Classes[class]
	return s, ok
}

// With returns a copy of t with class set to s.
func (t Theme) With(class string, s ClassStyle) Theme {
	classes := make(map[string]ClassStyle, len(t.Classes)+1)
	for k, v := range t.Classes {
		classes[k] = v
	}
	classes[class] = s
	t.Classes = classes
	return t
}

func fg(index int) ClassStyle { return ClassStyle{Foreground: index, Background: -1} }

// DefaultTheme returns styles for the decoration classes, the default
// "cm-" classes and the external "token " classes.
func DefaultTheme() Theme {
	title := fg(5)
	title.Bold = true
	title.Underline = true
	heading := fg(5)
	heading.Bold = true
	emphasis := fg(-1)
	emphasis.Italic = true
	strong := fg(-1)
	strong.Bold = true
	link := fg(4)
	link.Underline = true
	strike := fg(-1)
	strike.Strikethrough = true
	comment := fg(8)
	comment.Faint = true

	return Theme{
		Placeholder: 8,
		Classes: map[string]ClassStyle{
			"cm-codeblock":        {Foreground: -1, Background: 0},
			"cm-blockquote":       {Foreground: 8, Background: -1, Italic: true},
			"cm-url":              link,
			"cm-link":             link,
			"cm-heading":          heading,
			"cm-heading1":         title,
			"cm-heading2":         heading,
			"cm-heading3":         heading,
			"cm-heading4":         heading,
			"cm-heading5":         heading,
			"cm-heading6":         heading,
			"cm-emphasis":         emphasis,
			"cm-strong":           strong,
			"cm-strikethrough":    strike,
			"cm-contentSeparator": comment,
			"cm-labelName":        fg(6),
			"cm-string":           fg(2),
			"cm-keyword":          fg(5),
			"cm-typeName":         fg(3),
			"token keyword":       fg(5),
			"token string":        fg(2),
			"token number":        fg(3),
			"token comment":       comment,
			"token function":      fg(4),
			"token builtin":       fg(6),
			"token operator":      fg(1),
			"token punctuation":   fg(8),
			"token important":     strong,
			"token constant":      fg(3),
			"token class-name":    fg(3),
			"token label":         fg(6),
			"token meta":          fg(8),
		},
	}
}
