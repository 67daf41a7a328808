// Package log provides structured logging for the editor.
// Entries carry a level, a category and a timestamp. Programs open the log
// with tea.LogToFile, since a full-screen program cannot write to stderr.
package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mdedit"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a configuration string to a Level. Unknown values
// resolve to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Category groups related log messages.
type Category string

const (
	CatParse   Category = "parse"   // Markdown parsing and tree building
	CatEngine  Category = "engine"  // Region building and remapping
	CatEditor  Category = "editor"  // Editor updates and rejected edits
	CatCache   Category = "cache"   // Token cache
	CatWatcher Category = "watcher" // File watcher events
	CatConfig  Category = "config"  // Configuration loading/saving
)

// Interface compliance check.
var _ mdedit.Logger = (*Logger)(nil)

// Logger writes one line per entry. Loggers derived with With share the
// writer and its lock.
type Logger struct {
	mu       *sync.Mutex
	writer   io.Writer
	minLevel Level
	cat      Category
	now      func() time.Time
}

// New returns a Logger writing entries at or above minLevel to w.
func New(w io.Writer, minLevel Level) *Logger {
	return &Logger{
		mu:       &sync.Mutex{},
		writer:   w,
		minLevel: minLevel,
		cat:      CatEditor,
		now:      time.Now,
	}
}

// Open appends to the log file at path through tea.LogToFile. The returned
// function closes the file.
func Open(path string, minLevel Level) (*Logger, func() error, error) {
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return New(f, minLevel), f.Close, nil
}

// With returns a Logger for another category.
func (l *Logger) With(cat Category) *Logger {
	c := *l
	c.cat = cat
	return &c
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields ...any) { l.log(LevelDebug, msg, fields...) }

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...any) { l.log(LevelInfo, msg, fields...) }

// Warn logs at warning level.
func (l *Logger) Warn(msg string, fields ...any) { l.log(LevelWarn, msg, fields...) }

// Error logs at error level.
func (l *Logger) Error(msg string, fields ...any) { l.log(LevelError, msg, fields...) }

// ErrorErr logs an error with the error value.
func (l *Logger) ErrorErr(msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	l.log(LevelError, msg, fields...)
}

func (l *Logger) log(level Level, msg string, fields ...any) {
	if l == nil || l.writer == nil || level < l.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [WARN] [engine] message key=value key2=value2
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", l.now().Format("2006-01-02T15:04:05"), level, l.cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	// An odd trailing key has no value.
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, b.String())
}
