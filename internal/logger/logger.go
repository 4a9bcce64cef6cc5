// Package logger provides structured logging for promptline.
// Logs go to stderr, never to the terminal stream the menu is drawn on.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus logger with a set of fields shared by all its entries
type Logger struct {
	log    *logrus.Logger
	fields logrus.Fields
}

// Entry accumulates fields for a single log line
type Entry struct {
	entry *logrus.Entry
	level logrus.Level
}

// New creates a logger writing to output (stderr when nil) at the given level.
// Unknown levels fall back to info.
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)

	logLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	return &Logger{log: log, fields: logrus.Fields{}}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New("panic", io.Discard)
}

// Component returns a child logger tagged with the component name
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

// With returns a child logger carrying an extra field
func (l *Logger) With(key string, value interface{}) *Logger {
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{log: l.log, fields: fields}
}

// Enabled reports whether messages at level would be written
func (l *Logger) Enabled(level string) bool {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return false
	}
	return l.log.IsLevelEnabled(lvl)
}

func (l *Logger) entryAt(level logrus.Level) *Entry {
	return &Entry{entry: l.log.WithFields(l.fields), level: level}
}

// Debug starts a debug entry
func (l *Logger) Debug() *Entry {
	return l.entryAt(logrus.DebugLevel)
}

// Info starts an info entry
func (l *Logger) Info() *Entry {
	return l.entryAt(logrus.InfoLevel)
}

// Warn starts a warning entry
func (l *Logger) Warn() *Entry {
	return l.entryAt(logrus.WarnLevel)
}

// Error starts an error entry
func (l *Logger) Error() *Entry {
	return l.entryAt(logrus.ErrorLevel)
}

// Str adds a string field
func (e *Entry) Str(key, value string) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Int adds an int field
func (e *Entry) Int(key string, value int) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Uint64 adds an unsigned field
func (e *Entry) Uint64(key string, value uint64) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Bool adds a bool field
func (e *Entry) Bool(key string, value bool) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Err adds an error field. Nil errors are ignored.
func (e *Entry) Err(err error) *Entry {
	if err != nil {
		e.entry = e.entry.WithError(err)
	}
	return e
}

// Dur adds a duration field in milliseconds
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	ms := float64(duration.Microseconds()) / 1000.0
	e.entry = e.entry.WithField(key, ms)
	return e
}

// Msg writes the entry
func (e *Entry) Msg(msg string) {
	e.entry.Log(e.level, msg)
}
