// Package logging provides the structured Logger contract consumed by the
// core (§6) plus the two implementations the rest of the module actually
// uses: a colorized terminal logger built on the teacher's display theme,
// and a no-op logger for tests.
package logging

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Level is a logging severity, ordered Trace < Debug < Info < Warn < Error.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
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

// Logger is the structured logging contract the core depends on (§6).
type Logger interface {
	Trace(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	// With returns a Logger that prefixes every message with a component tag.
	With(component string) Logger
}

// terminalLogger writes leveled, colorized lines to stderr via fatih/color,
// filtering anything below minLevel.
type terminalLogger struct {
	mu        *sync.Mutex
	component string
	minLevel  Level
	noColor   bool
}

// NewTerminal creates a Logger that writes to the terminal at or above minLevel.
func NewTerminal(minLevel Level, noColor bool) Logger {
	return &terminalLogger{mu: &sync.Mutex{}, minLevel: minLevel, noColor: noColor}
}

func (l *terminalLogger) With(component string) Logger {
	return &terminalLogger{mu: l.mu, component: component, minLevel: l.minLevel, noColor: l.noColor}
}

func (l *terminalLogger) log(level Level, format string, args ...interface{}) {
	if level < l.minLevel {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	tag := levelColor(level, l.noColor)(fmt.Sprintf("[%s]", level))
	if l.component != "" {
		fmt.Fprintf(os.Stderr, "%s %s %s\n", tag, dim(l.component, l.noColor), fmt.Sprintf(format, args...))
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

func (l *terminalLogger) Trace(format string, args ...interface{}) { l.log(LevelTrace, format, args...) }
func (l *terminalLogger) Debug(format string, args ...interface{}) { l.log(LevelDebug, format, args...) }
func (l *terminalLogger) Info(format string, args ...interface{})  { l.log(LevelInfo, format, args...) }
func (l *terminalLogger) Warn(format string, args ...interface{})  { l.log(LevelWarn, format, args...) }
func (l *terminalLogger) Error(format string, args ...interface{}) { l.log(LevelError, format, args...) }

func levelColor(level Level, noColor bool) func(a ...interface{}) string {
	if noColor {
		return fmt.Sprint
	}
	switch level {
	case LevelError:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case LevelWarn:
		return color.New(color.FgYellow).SprintFunc()
	case LevelInfo:
		return color.New(color.FgCyan).SprintFunc()
	default:
		return color.New(color.FgHiBlack).SprintFunc()
	}
}

func dim(s string, noColor bool) string {
	if noColor {
		return s
	}
	return color.New(color.FgHiBlack).Sprint(s)
}

// Noop discards every message; used by analyzer tests that don't care about
// log output but still need to satisfy the Logger contract.
type noopLogger struct{}

// NewNoop returns a Logger that does nothing.
func NewNoop() Logger { return noopLogger{} }

func (noopLogger) Trace(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (n noopLogger) With(string) Logger         { return n }
