package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mdedit"
	bt "github.com/fwojciec/mdedit/bubbletea"
	"github.com/fwojciec/mdedit/config"
	mdjson "github.com/fwojciec/mdedit/json"
	"github.com/fwojciec/mdedit/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// execute runs the command tree with an explicit config file, so the
// user's own configuration never leaks into tests.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, cfgPath, "highlight:\n  code_languages: false\n")

	var out bytes.Buffer
	cmd := newRootCmd(viper.New())
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--config", cfgPath))
	err := cmd.Execute()
	return out.String(), err
}

func TestRegionsCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints decorations of matching files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.md"), "a `x` b")
		writeFile(t, filepath.Join(dir, "sub", "b.md"), "> quote")
		writeFile(t, filepath.Join(dir, "notes.txt"), "`ignored`")

		out, err := execute(t, "regions", "--dir", dir, "**/*.md")
		require.NoError(t, err)

		dec := json.NewDecoder(bytes.NewBufferString(out))
		var got []map[string]any
		for dec.More() {
			var v map[string]any
			require.NoError(t, dec.Decode(&v))
			got = append(got, v)
		}
		require.Len(t, got, 2)
		assert.Equal(t, "a.md", got[0]["path"])
		assert.Equal(t, filepath.Join("sub", "b.md"), got[1]["path"])

		regions := got[0]["regions"].([]any)
		require.Len(t, regions, 1)
		assert.Equal(t, map[string]any{"kind": "codeblock-inline", "from": 2.0, "to": 5.0}, regions[0])
	})

	t.Run("saves to out directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		out := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.md"), "see https://example.com")

		stdout, err := execute(t, "regions", "--dir", dir, "--out", out, "*.md")
		require.NoError(t, err)
		assert.Empty(t, stdout)

		d, err := mdjson.Load(filepath.Join(out, "a.md.json"))
		require.NoError(t, err)
		assert.Equal(t, "a.md", d.Path)
		assert.Equal(t, len("see https://example.com"), d.Length)
	})

	t.Run("no matches", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "regions", "--dir", t.TempDir(), "*.md")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no files match")
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "regions", "--dir", t.TempDir(), "[")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid glob pattern")
	})
}

func TestConfigInitCmd(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mdedit", "config.yaml")
	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)

	_, err = execute(t, "config", "init", path)
	assert.Error(t, err)
}

func TestReadDocument(t *testing.T) {
	t.Parallel()

	t.Run("no path", func(t *testing.T) {
		t.Parallel()
		content, err := readDocument("")
		require.NoError(t, err)
		assert.Empty(t, content)
	})

	t.Run("new file", func(t *testing.T) {
		t.Parallel()
		content, err := readDocument(filepath.Join(t.TempDir(), "new.md"))
		require.NoError(t, err)
		assert.Empty(t, content)
	})

	t.Run("existing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a.md")
		writeFile(t, path, "# title")
		content, err := readDocument(path)
		require.NoError(t, err)
		assert.Equal(t, "# title", content)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, err := readDocument(t.TempDir())
		assert.Error(t, err)
	})
}

func TestEditorConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.Editor.MaxLength = 280
	cfg.Editor.Editable = false
	cfg.Highlight.Policy = "external"

	logger := log.New(io.Discard, log.LevelError)
	got := editorConfig(cfg, logger, &file{logger: logger}, nil)
	assert.Equal(t, 280, got.MaxLength)
	require.NotNil(t, got.Editable)
	assert.False(t, *got.Editable)
	assert.Equal(t, mdedit.PolicyExternal, got.Policy)
	assert.Equal(t, "...", got.Placeholder)
	assert.Len(t, got.Extensions, 1)
	assert.NotNil(t, got.Differ)
}

func TestFileExtension(t *testing.T) {
	t.Parallel()

	newModel := func(t *testing.T, content string) bt.Model {
		t.Helper()
		cfg := config.Defaults()
		cfg.Highlight.CodeLanguages = false
		logger := log.New(io.Discard, log.LevelError)
		m := bt.New(newParser(cfg, logger), bt.Config{})
		require.NoError(t, m.SetValue(content))
		return m
	}

	t.Run("ctrl+s saves", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a.md")
		f := &file{path: path, logger: log.New(io.Discard, log.LevelError)}
		m := newModel(t, "# saved")

		cmd := f.extension(&m, tea.KeyMsg{Type: tea.KeyCtrlS})
		assert.Nil(t, cmd)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# saved", string(data))
		assert.Equal(t, "# saved", f.saved)
	})

	t.Run("ctrl+s without a file logs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		f := &file{logger: log.New(&buf, log.LevelDebug)}
		m := newModel(t, "x")

		assert.Nil(t, f.extension(&m, tea.KeyMsg{Type: tea.KeyCtrlS}))
		assert.Contains(t, buf.String(), "save failed")
	})

	t.Run("esc quits", func(t *testing.T) {
		t.Parallel()
		f := &file{logger: log.New(io.Discard, log.LevelError)}
		m := newModel(t, "")

		cmd := f.extension(&m, tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("other messages pass through", func(t *testing.T) {
		t.Parallel()
		f := &file{logger: log.New(io.Discard, log.LevelError)}
		m := newModel(t, "")

		assert.Nil(t, f.extension(&m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}))
		assert.Nil(t, f.extension(&m, tea.WindowSizeMsg{Width: 10, Height: 5}))
	})
}
