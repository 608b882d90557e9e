// Package log provides the logging interface used throughout
// the emulator, along with a logrus backed implementation.
package log

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/Sirupsen/logrus.v0"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Fields are attached to every line written by a logger
// created with WithFields.
type Fields = logrus.Fields

type logger struct {
	entry *logrus.Entry
}

// New returns a Logger writing text lines to stderr at info level.
func New() Logger {
	return NewWithOutput(os.Stderr, logrus.InfoLevel)
}

// NewWithOutput returns a Logger writing to w, discarding
// anything below the given level.
func NewWithOutput(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.Out = w
	l.Level = level
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	return &logger{entry: logrus.NewEntry(l)}
}

// NewLevel returns a Logger writing to stderr at the named
// level (debug, info, warn, error).
func NewLevel(level string) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	return NewWithOutput(os.Stderr, lvl), nil
}

// WithFields returns a Logger that prefixes every line with the given
// fields. Loggers not created by this package are returned unchanged.
func WithFields(l Logger, f Fields) Logger {
	if lg, ok := l.(*logger); ok {
		return &logger{entry: lg.entry.WithFields(f)}
	}
	return l
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}
