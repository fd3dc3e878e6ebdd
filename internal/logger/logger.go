// Package logger provides structured logging for inlinecomplete.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus logger and the fields shared by its entries
type Logger struct {
	log    *logrus.Logger
	fields logrus.Fields
}

// Entry accumulates fields for a single log line
type Entry struct {
	level logrus.Level
	entry *logrus.Entry
}

// New creates a new logger writing to output at the given level.
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
		ForceColors:      true,
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	return &Logger{log: log, fields: logrus.Fields{}}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New("panic", io.Discard)
}

// With returns a child logger tagging every entry with component.
func (l *Logger) With(component string) *Logger {
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields["component"] = component
	return &Logger{log: l.log, fields: fields}
}

// DebugEnabled reports whether debug entries are written
func (l *Logger) DebugEnabled() bool {
	return l.log.IsLevelEnabled(logrus.DebugLevel)
}

// Debug starts a debug entry
func (l *Logger) Debug() *Entry {
	return l.entry(logrus.DebugLevel)
}

// Info starts an info entry
func (l *Logger) Info() *Entry {
	return l.entry(logrus.InfoLevel)
}

// Warn starts a warning entry
func (l *Logger) Warn() *Entry {
	return l.entry(logrus.WarnLevel)
}

// Error starts an error entry
func (l *Logger) Error() *Entry {
	return l.entry(logrus.ErrorLevel)
}

func (l *Logger) entry(level logrus.Level) *Entry {
	return &Entry{level: level, entry: l.log.WithFields(l.fields)}
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

// Bool adds a bool field
func (e *Entry) Bool(key string, value bool) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Err adds an error field
func (e *Entry) Err(err error) *Entry {
	if err != nil {
		e.entry = e.entry.WithError(err)
	}
	return e
}

// Dur adds a duration field in microseconds; keystroke handling is far
// below a millisecond.
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	e.entry = e.entry.WithField(key, duration.Microseconds())
	return e
}

// Msg writes the entry
func (e *Entry) Msg(msg string) {
	e.entry.Log(e.level, msg)
}
