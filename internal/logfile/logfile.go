// Package logfile provides the append-only severity log used by the server.
package logfile

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Severity is the level attached to every log line.
type Severity int

const (
	// Error marks failures that stop the server.
	Error Severity = iota
	// Warn marks per-connection failures the server recovers from.
	Warn
	// Info marks lifecycle events.
	Info
)

// String returns the tag written between brackets in the log line.
func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Info:
		return "INFO"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

var severityColors = map[Severity]*color.Color{
	Error: color.New(color.FgRed, color.Bold),
	Warn:  color.New(color.FgYellow),
	Info:  color.New(color.FgCyan),
}

// Logger appends one line per call to a file. The file is opened in append
// mode for every call so concurrent connections never share a write offset,
// and any failure to open or write is dropped.
type Logger struct {
	path string

	// console, when set, also receives every line with a coloured tag.
	console io.Writer
	mu      sync.Mutex
}

// New returns a Logger writing to path.
func New(path string) *Logger {
	return &Logger{path: path}
}

// WithConsole mirrors every line to w. Pass nil to disable.
func (l *Logger) WithConsole(w io.Writer) *Logger {
	l.mu.Lock()
	l.console = w
	l.mu.Unlock()
	return l
}

// Log appends "[SEVERITY]: message" to the sink.
func (l *Logger) Log(s Severity, message string) {
	if l == nil {
		return
	}
	if f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
		_, _ = fmt.Fprintf(f, "[%s]: %s\n", s, message)
		_ = f.Close()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.console == nil {
		return
	}
	tag := "[" + s.String() + "]:"
	if c, ok := severityColors[s]; ok {
		tag = c.Sprint(tag)
	}
	_, _ = fmt.Fprintf(l.console, "%s %s\n", tag, message)
}

// Error logs message at Error.
func (l *Logger) Error(message string) { l.Log(Error, message) }

// Warn logs message at Warn.
func (l *Logger) Warn(message string) { l.Log(Warn, message) }

// Info logs message at Info.
func (l *Logger) Info(message string) { l.Log(Info, message) }

// Errorf formats its arguments like fmt.Sprintf and logs them at Error.
func (l *Logger) Errorf(format string, args ...any) { l.Log(Error, fmt.Sprintf(format, args...)) }

// Infof formats its arguments like fmt.Sprintf and logs them at Info.
func (l *Logger) Infof(format string, args ...any) { l.Log(Info, fmt.Sprintf(format, args...)) }
