// Package logging defines the Logger interface used across simraymond, and
// a default implementation backed by logrus.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface every simraymond component depends on, so
// tests can inject a no-op implementation instead of writing to stderr.
type Logger interface {
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// DefaultLogger is the Logger used when the caller does not provide its
// own implementation. It wraps a *logrus.Logger.
type DefaultLogger struct {
	*logrus.Logger
}

// NewDefaultLogger creates a DefaultLogger writing to out with a
// text formatter, at Info level (or Debug level when verbose is true).
func NewDefaultLogger(out io.Writer, verbose bool) *DefaultLogger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return &DefaultLogger{Logger: l}
}

// NewStderrLogger is a convenience constructor for the common case.
func NewStderrLogger(verbose bool) *DefaultLogger {
	return NewDefaultLogger(os.Stderr, verbose)
}

func (l *DefaultLogger) Info(v ...interface{})                    { l.Logger.Info(v...) }
func (l *DefaultLogger) Infof(format string, v ...interface{})    { l.Logger.Infof(format, v...) }
func (l *DefaultLogger) Warn(v ...interface{})                    { l.Logger.Warn(v...) }
func (l *DefaultLogger) Warnf(format string, v ...interface{})    { l.Logger.Warnf(format, v...) }
func (l *DefaultLogger) Error(v ...interface{})                   { l.Logger.Error(v...) }
func (l *DefaultLogger) Errorf(format string, v ...interface{})   { l.Logger.Errorf(format, v...) }
func (l *DefaultLogger) Debug(v ...interface{})                   { l.Logger.Debug(v...) }
func (l *DefaultLogger) Debugf(format string, v ...interface{})   { l.Logger.Debugf(format, v...) }
func (l *DefaultLogger) Fatal(v ...interface{})                   { l.Logger.Fatal(v...) }
func (l *DefaultLogger) Fatalf(format string, v ...interface{})   { l.Logger.Fatalf(format, v...) }

// NopLogger discards everything. Used by tests that don't want simulation
// chatter on stderr.
type NopLogger struct{}

func (NopLogger) Info(v ...interface{})                  {}
func (NopLogger) Infof(format string, v ...interface{})  {}
func (NopLogger) Warn(v ...interface{})                  {}
func (NopLogger) Warnf(format string, v ...interface{})  {}
func (NopLogger) Error(v ...interface{})                 {}
func (NopLogger) Errorf(format string, v ...interface{}) {}
func (NopLogger) Debug(v ...interface{})                 {}
func (NopLogger) Debugf(format string, v ...interface{}) {}
func (NopLogger) Fatal(v ...interface{})                 {}
func (NopLogger) Fatalf(format string, v ...interface{}) {}
