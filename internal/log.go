package internal

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// LogLevel orders message severities; lower values are more severe.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var levelTags = map[LogLevel]string{
	LogLevelError: "ERROR",
	LogLevelWarn:  "WARN",
	LogLevelInfo:  "INFO",
	LogLevelDebug: "DEBUG",
}

// ParseLevel maps a level name to a LogLevel, defaulting to info for
// unknown names.
func ParseLevel(name string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ERROR":
		return LogLevelError
	case "WARN", "WARNING":
		return LogLevelWarn
	case "DEBUG":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// Logger is a leveled logger over the stdlib log package. A scope name,
// when set, prefixes every line so multi-component output stays readable.
type Logger struct {
	level LogLevel
	scope string
	out   *log.Logger
}

// NewLogger creates a logger writing to w at the given level
func NewLogger(level LogLevel, w io.Writer) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// NewDefaultLogger creates a stderr logger at the LOG_LEVEL env level
func NewDefaultLogger() *Logger {
	return NewLogger(ParseLevel(os.Getenv("LOG_LEVEL")), os.Stderr)
}

// Named returns a copy of the logger scoped to the given component name.
func (l *Logger) Named(scope string) *Logger {
	return &Logger{level: l.level, scope: scope, out: l.out}
}

// Level returns the logger's threshold
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) Error(format string, args ...interface{}) { l.emit(LogLevelError, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.emit(LogLevelWarn, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.emit(LogLevelInfo, format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.emit(LogLevelDebug, format, args...) }

func (l *Logger) emit(level LogLevel, format string, args ...interface{}) {
	if level > l.level {
		return
	}
	prefix := "[" + levelTags[level] + "] "
	if l.scope != "" {
		prefix += l.scope + ": "
	}
	l.out.Output(2, prefix+fmt.Sprintf(format, args...))
}

// DefaultLogger is the process-wide logger used where no scoped logger
// has been injected.
var DefaultLogger = NewDefaultLogger()
