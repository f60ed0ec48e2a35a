// Package logger defines the diagnostic sink used by the Starfish machine.
//
// A Logger never fails and never drives control flow; the machine reports
// configuration problems and skipped cycles through it and carries on.
package logger

// Level of a log entry.
type Level int

const (
	LEVEL_INFO  = Level(0) // info
	LEVEL_WARN  = Level(1) // warn
	LEVEL_ERROR = Level(2) // error
)

func (lv Level) String() string {
	switch lv {
	case LEVEL_INFO:
		return "info"
	case LEVEL_WARN:
		return "warn"
	case LEVEL_ERROR:
		return "error"
	}
	return "level?"
}

// Logger is the three method sink supplied by the host.
type Logger interface {
	Info(message string)
	Warn(message string)
	Error(message string)
}

// Null discards everything.
type Null struct{}

var _ Logger = Null{}

func (Null) Info(string)  {}
func (Null) Warn(string)  {}
func (Null) Error(string) {}

// OrNull returns log, or Null if log is nil.
func OrNull(log Logger) Logger {
	if log == nil {
		return Null{}
	}
	return log
}
