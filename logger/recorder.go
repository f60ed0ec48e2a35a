package logger

import (
	"fmt"
	"strings"
)

// Entry is a single recorded log line.
type Entry struct {
	Level    Level
	Message  string
	Repeated int // Number of identical entries collapsed into this one.
}

func (e Entry) String() string {
	text := fmt.Sprintf("%v: %v", e.Level, e.Message)
	if e.Repeated > 0 {
		text += fmt.Sprintf(" (repeat x%d)", e.Repeated+1)
	}
	return text
}

// Recorder keeps every entry in memory. Consecutive identical entries are
// collapsed into one with a repeat count.
type Recorder struct {
	Entries []Entry
}

var _ Logger = (*Recorder)(nil)

func (rec *Recorder) add(level Level, message string) {
	message = strings.ReplaceAll(message, "\n", "")

	if n := len(rec.Entries); n > 0 {
		last := &rec.Entries[n-1]
		if last.Level == level && last.Message == message {
			last.Repeated++
			return
		}
	}

	rec.Entries = append(rec.Entries, Entry{Level: level, Message: message})
}

func (rec *Recorder) Info(message string)  { rec.add(LEVEL_INFO, message) }
func (rec *Recorder) Warn(message string)  { rec.add(LEVEL_WARN, message) }
func (rec *Recorder) Error(message string) { rec.add(LEVEL_ERROR, message) }

// Count returns the number of log calls made at level, repeats included.
func (rec *Recorder) Count(level Level) (count int) {
	for _, e := range rec.Entries {
		if e.Level == level {
			count += e.Repeated + 1
		}
	}
	return
}

// Reset drops all entries.
func (rec *Recorder) Reset() {
	rec.Entries = rec.Entries[:0]
}

// String returns all entries, one per line.
func (rec *Recorder) String() string {
	var sb strings.Builder
	for _, e := range rec.Entries {
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
