package log

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
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
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel is the strict variant of LevelFromString used for flags and
// config files.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "NONE", "OFF":
		return LevelNone, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// LevelFromString falls back to INFO for anything it doesn't recognise.
func LevelFromString(s string) Level {
	l, _ := ParseLevel(s)
	return l
}

type Logger struct {
	logger *log.Logger
	level  *Level
	tag    string
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.Ltime|log.Lmicroseconds),
		level:  &level,
	}
}

// Discard returns a logger that drops everything; handy for tests.
func Discard() *Logger { return New(io.Discard, LevelNone) }

// With returns a logger sharing output and level that prefixes every line
// with "[tag] ".
func (l *Logger) With(tag string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{logger: l.logger, level: l.level, tag: "[" + tag + "] "}
}

func (l *Logger) printf(lv Level, format string, v ...interface{}) {
	if l == nil || *l.level > lv {
		return
	}
	l.logger.Printf(lv.String()+": "+l.tag+format, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) { l.printf(LevelDebug, format, v...) }

func (l *Logger) Infof(format string, v ...interface{}) { l.printf(LevelInfo, format, v...) }

func (l *Logger) Warnf(format string, v ...interface{}) { l.printf(LevelWarn, format, v...) }

func (l *Logger) Errorf(format string, v ...interface{}) { l.printf(LevelError, format, v...) }

// SetLevel changes the level for this logger and every logger derived from
// it with With.
func (l *Logger) SetLevel(level Level) {
	*l.level = level
}

func (l *Logger) Level() Level {
	return *l.level
}
