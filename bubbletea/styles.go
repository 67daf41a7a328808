package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mdedit"
)

// Styles maps a Theme to lipgloss styles for rendering.
type Styles struct {
	Placeholder lipgloss.Style
	Classes     map[string]lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t mdedit.Theme) Styles {
	classes := make(map[string]lipgloss.Style, len(t.Classes))
	for class, cs := range t.Classes {
		classes[class] = classStyle(cs)
	}
	return Styles{
		Placeholder: lipgloss.NewStyle().Foreground(ansiColor(t.Placeholder)).Faint(true),
		Classes:     classes,
	}
}

// Compose merges the styles of nested classes, outermost first. Properties
// set by an inner class win.
func (s Styles) Compose(classes ...string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for i := len(classes) - 1; i >= 0; i-- {
		if cs, ok := s.Classes[classes[i]]; ok {
			style = style.Inherit(cs)
		}
	}
	return style
}

// classStyle sets only what cs asks for, so unset properties inherit from
// enclosing classes.
func classStyle(cs mdedit.ClassStyle) lipgloss.Style {
	style := lipgloss.NewStyle()
	if cs.Foreground >= 0 {
		style = style.Foreground(ansiColor(cs.Foreground))
	}
	if cs.Background >= 0 {
		style = style.Background(ansiColor(cs.Background))
	}
	if cs.Bold {
		style = style.Bold(true)
	}
	if cs.Italic {
		style = style.Italic(true)
	}
	if cs.Underline {
		style = style.Underline(true)
	}
	if cs.Faint {
		style = style.Faint(true)
	}
	if cs.Strikethrough {
		style = style.Strikethrough(true)
	}
	return style
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
