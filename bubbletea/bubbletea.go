// Package bubbletea provides the Markdown editor as a Bubble Tea component.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs a full-screen program around the editor. It blocks
// until the program exits and returns the final model. Cancelling ctx quits
// the program.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, err
}

// FileChangedMsg reports that the file behind the document changed on disk.
// Content replaces the document unless Err is set.
type FileChangedMsg struct {
	Path    string
	Content string
	Err     error
}

func listenForReload(ch <-chan FileChangedMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
