package history

import (
	"errors"

	"github.com/kk-code-lab/regexfu/internal/match"
)

// ErrOutOfRange is returned by Seek when the cursor would leave the log.
var ErrOutOfRange = errors.New("history seek out of range")

// Entry is one submitted pattern together with its modifiers.
type Entry struct {
	Pattern string
	Flags   match.Flags
}

// Log is an append-only list of entries with a movable cursor. Moving the
// cursor never removes or branches entries; only Reset clears the log.
type Log struct {
	entries []Entry
	cursor  int
}

// New returns an empty log.
func New() *Log {
	return &Log{cursor: -1}
}

// Record appends an entry and points the cursor at it. Duplicates are kept.
func (l *Log) Record(pattern string, flags match.Flags) {
	l.entries = append(l.entries, Entry{Pattern: pattern, Flags: flags})
	l.cursor = len(l.entries) - 1
}

// CanSeekBack reports whether an older entry exists before the cursor.
func (l *Log) CanSeekBack() bool {
	return l.cursor > 0
}

// CanSeekForward reports whether a newer entry exists after the cursor.
func (l *Log) CanSeekForward() bool {
	return l.cursor >= 0 && l.cursor < len(l.entries)-1
}

// Seek moves the cursor by delta (-1 or +1) and returns the entry there.
func (l *Log) Seek(delta int) (Entry, error) {
	target := l.cursor + delta
	if len(l.entries) == 0 || target < 0 || target > len(l.entries)-1 {
		return Entry{}, ErrOutOfRange
	}
	l.cursor = target
	return l.entries[l.cursor], nil
}

// Current returns the entry under the cursor; ok is false for an empty log.
func (l *Log) Current() (Entry, bool) {
	if l.cursor < 0 || l.cursor >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[l.cursor], true
}

// Reset clears the log.
func (l *Log) Reset() {
	l.entries = nil
	l.cursor = -1
}

// Len reports the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Cursor reports the cursor index, -1 when empty.
func (l *Log) Cursor() int {
	return l.cursor
}

// Entries returns a copy of the log, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
