package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mdedit"
	bt "github.com/fwojciec/mdedit/bubbletea"
	"github.com/fwojciec/mdedit/config"
	mdfsnotify "github.com/fwojciec/mdedit/fsnotify"
	"github.com/fwojciec/mdedit/log"
)

var (
	saveKey = key.NewBinding(key.WithKeys("ctrl+s"))
	quitKey = key.NewBinding(key.WithKeys("ctrl+c", "esc"))
)

func runEdit(ctx context.Context, cfg config.Config, path string) error {
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	content, err := readDocument(path)
	if err != nil {
		return err
	}

	f := &file{path: path, saved: content, logger: logger.With(log.CatEditor)}
	var reload <-chan bt.FileChangedMsg
	if cfg.Watch.Enabled && path != "" {
		w, err := mdfsnotify.New(path, cfg.Watch.Debounce, logger.With(log.CatWatcher))
		if err != nil {
			return err
		}
		defer w.Close()
		if reload, err = w.Start(); err != nil {
			return err
		}
		f.watcher = w
	}

	m := bt.New(newParser(cfg, logger), editorConfig(cfg, logger, f, reload))
	if err := m.SetValue(content); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	m.Focus()

	final, err := bt.Run(ctx, m)
	if err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	if f.path != "" && f.saved != final.Value() {
		fmt.Fprintf(os.Stderr, "%s has unsaved changes\n", f.path)
	}
	return nil
}

// editorConfig maps the file configuration onto the editor.
func editorConfig(cfg config.Config, logger *log.Logger, f *file, reload <-chan bt.FileChangedMsg) bt.Config {
	editable := cfg.Editor.Editable
	return bt.Config{
		Placeholder:  cfg.Editor.Placeholder,
		MaxLength:    cfg.Editor.MaxLength,
		Editable:     &editable,
		OnlyAutolink: cfg.Editor.OnlyAutolink,
		Policy:       mdedit.ParsePolicy(cfg.Highlight.Policy),
		Differ:       newDiffer(cfg, logger),
		Logger:       logger.With(log.CatEditor),
		Width:        cfg.Editor.Width,
		Height:       cfg.Editor.Height,
		Reload:       reload,
		Extensions:   []bt.Extension{f.extension},
	}
}

func readDocument(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, os.ErrNotExist):
		// New file; created on first save.
		return "", nil
	default:
		return "", fmt.Errorf("read %s: %w", path, err)
	}
}

// file is the document's backing file.
type file struct {
	path    string
	saved   string
	watcher *mdfsnotify.Watcher
	logger  *log.Logger
}

// extension saves on ctrl+s and quits on ctrl+c or esc.
func (f *file) extension(m *bt.Model, msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(k, quitKey):
		return tea.Quit
	case key.Matches(k, saveKey):
		if err := f.save(m.Value()); err != nil {
			f.logger.ErrorErr("save failed", err, "path", f.path)
		}
	}
	return nil
}

func (f *file) save(content string) error {
	if f.path == "" {
		return errors.New("no file name")
	}
	if f.watcher != nil {
		f.watcher.Written(content)
	}
	if err := os.WriteFile(f.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	f.saved = content
	f.logger.Info("saved", "path", f.path, "bytes", len(content))
	return nil
}
