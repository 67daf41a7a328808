package log

import "time"

// SetClock replaces the clock used for timestamps.
func SetClock(l *Logger, now func() time.Time) {
	l.now = now
}
