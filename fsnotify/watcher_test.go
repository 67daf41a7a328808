package fsnotify_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/mdedit/bubbletea"
	mdfsnotify "github.com/fwojciec/mdedit/fsnotify"
	"github.com/fwojciec/mdedit/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const debounce = 30 * time.Millisecond

func startWatcher(t *testing.T, path string) (*mdfsnotify.Watcher, <-chan bubbletea.FileChangedMsg) {
	t.Helper()
	w, err := mdfsnotify.New(path, debounce, nil)
	require.NoError(t, err)
	ch, err := w.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, ch
}

func receive(t *testing.T, ch <-chan bubbletea.FileChangedMsg) bubbletea.FileChangedMsg {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "channel closed")
		return msg
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
		return bubbletea.FileChangedMsg{}
	}
}

func assertQuiet(t *testing.T, ch <-chan bubbletea.FileChangedMsg) {
	t.Helper()
	select {
	case msg := <-ch:
		t.Fatalf("unexpected change: %+v", msg)
	case <-time.After(10 * debounce):
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	t.Run("delivers new content", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "note.md")
		write(t, path, "# one")
		_, ch := startWatcher(t, path)

		write(t, path, "# two")
		msg := receive(t, ch)
		require.NoError(t, msg.Err)
		assert.Equal(t, "# two", msg.Content)
		assert.Equal(t, path, msg.Path)
	})

	t.Run("coalesces bursts", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "note.md")
		_, ch := startWatcher(t, path)

		for _, s := range []string{"a", "ab", "abc"} {
			write(t, path, s)
		}
		assert.Equal(t, "abc", receive(t, ch).Content)
		assertQuiet(t, ch)
	})

	t.Run("ignores other files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "note.md")
		_, ch := startWatcher(t, path)

		write(t, filepath.Join(dir, "other.md"), "x")
		assertQuiet(t, ch)
	})

	t.Run("written content does not echo", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "note.md")
		w, ch := startWatcher(t, path)

		w.Written("saved")
		write(t, path, "saved")
		assertQuiet(t, ch)

		write(t, path, "external")
		assert.Equal(t, "external", receive(t, ch).Content)
	})

	t.Run("close closes the channel", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "note.md")
		w, ch := startWatcher(t, path)

		require.NoError(t, w.Close())
		_, ok := <-ch
		assert.False(t, ok)
		assert.NoError(t, w.Close(), "second close is a no-op")
	})
}

func TestWatcher_MissingDirectory(t *testing.T) {
	t.Parallel()

	var warned int
	logger := &mock.Logger{WarnFn: func(string, ...any) { warned++ }}
	w, err := mdfsnotify.New(filepath.Join(t.TempDir(), "missing", "note.md"), debounce, logger)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Start()
	assert.Error(t, err)
	assert.Zero(t, warned)
}
