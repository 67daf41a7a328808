// Package fsnotify reloads the edited file when it changes on disk.
package fsnotify

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/mdedit"
	"github.com/fwojciec/mdedit/bubbletea"
)

// DefaultDebounce coalesces the bursts of events a single save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher monitors one file and delivers its new content after each change.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	logger    mdedit.Logger
	changes   chan bubbletea.FileChangedMsg
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	running bool
	last    string
	seen    bool
}

// New creates a watcher for the file at path. The file itself need not exist
// yet, but its directory must.
func New(path string, debounce time.Duration, logger mdedit.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = mdedit.NopLogger{}
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		path:      abs,
		debounce:  debounce,
		logger:    logger,
		changes:   make(chan bubbletea.FileChangedMsg, 1),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}, nil
}

// Start begins watching. The returned channel is closed by Close.
func (w *Watcher) Start() (<-chan bubbletea.FileChangedMsg, error) {
	// Watch the directory so that saves replacing the file are seen.
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	w.mu.Lock()
	w.running = true
	w.mu.Unlock()
	go w.loop()
	return w.changes, nil
}

// Written records content the program itself wrote to the file, so the
// resulting event does not echo back as a reload.
func (w *Watcher) Written(content string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.last = content
	w.seen = true
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.mu.Lock()
		running := w.running
		w.mu.Unlock()
		if running {
			<-w.stopped
		}
		close(w.changes)
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.stopped)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			// Reset the debounce window.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			if msg, ok := w.read(); ok {
				w.send(msg)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "path", w.path, "error", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}

// read loads the file and reports whether its content differs from what
// was last delivered or written.
func (w *Watcher) read() (bubbletea.FileChangedMsg, bool) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return bubbletea.FileChangedMsg{Path: w.path, Err: fmt.Errorf("reading %s: %w", w.path, err)}, true
	}
	content := string(data)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen && content == w.last {
		return bubbletea.FileChangedMsg{}, false
	}
	w.last = content
	w.seen = true
	return bubbletea.FileChangedMsg{Path: w.path, Content: content}, true
}

// send delivers msg, replacing an undelivered older change.
func (w *Watcher) send(msg bubbletea.FileChangedMsg) {
	select {
	case w.changes <- msg:
		return
	default:
	}
	select {
	case <-w.changes:
	default:
	}
	select {
	case w.changes <- msg:
	case <-w.done:
	}
}
