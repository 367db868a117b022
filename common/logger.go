// Package common holds shared infrastructure for the decoder and the
// command line tools, most notably leveled logging.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Severity represents log message severity levels
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the logging contract shared by the decoder and its callers.
// Decode sessions log through it instead of printing; the CLI installs a
// real logger, library consumers get a no-op by default.
type Logger interface {
	// Logf logs a formatted message with the specified severity
	Logf(severity Severity, format string, args ...interface{})

	// Debugf logs a formatted debug message
	Debugf(format string, args ...interface{})

	// Infof logs a formatted info message
	Infof(format string, args ...interface{})

	// Warningf logs a formatted warning message
	Warningf(format string, args ...interface{})

	// Errorf logs a formatted error message
	Errorf(format string, args ...interface{})
}

// StdLogger implements the Logger interface using Go's standard logger
type StdLogger struct {
	out      *log.Logger
	err      *log.Logger
	minLevel Severity
}

// NewStdLogger creates a new standard logger writing to stdout/stderr.
func NewStdLogger(minLevel Severity) *StdLogger {
	return NewStdLoggerWithWriter(os.Stdout, os.Stderr, minLevel)
}

// NewStdLoggerWithWriter creates a new standard logger with custom writers
func NewStdLoggerWithWriter(stdout, stderr io.Writer, minLevel Severity) *StdLogger {
	return &StdLogger{
		out:      log.New(stdout, "", 0),
		err:      log.New(stderr, "", 0),
		minLevel: minLevel,
	}
}

// Logf logs a formatted message with the specified severity
func (l *StdLogger) Logf(severity Severity, format string, args ...interface{}) {
	if severity < l.minLevel {
		return
	}
	dst := l.out
	if severity >= SeverityWarning {
		dst = l.err
	}
	dst.Printf("%s: %s", severity, fmt.Sprintf(format, args...))
}

// Debugf logs a formatted debug message
func (l *StdLogger) Debugf(format string, args ...interface{}) {
	l.Logf(SeverityDebug, format, args...)
}

// Infof logs a formatted info message
func (l *StdLogger) Infof(format string, args ...interface{}) {
	l.Logf(SeverityInfo, format, args...)
}

// Warningf logs a formatted warning message
func (l *StdLogger) Warningf(format string, args ...interface{}) {
	l.Logf(SeverityWarning, format, args...)
}

// Errorf logs a formatted error message
func (l *StdLogger) Errorf(format string, args ...interface{}) {
	l.Logf(SeverityError, format, args...)
}

// NoOpLogger is a logger that doesn't log anything
type NoOpLogger struct{}

// NewNoOpLogger creates a new no-op logger
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Logf does nothing
func (l *NoOpLogger) Logf(severity Severity, format string, args ...interface{}) {}

// Debugf does nothing
func (l *NoOpLogger) Debugf(format string, args ...interface{}) {}

// Infof does nothing
func (l *NoOpLogger) Infof(format string, args ...interface{}) {}

// Warningf does nothing
func (l *NoOpLogger) Warningf(format string, args ...interface{}) {}

// Errorf does nothing
func (l *NoOpLogger) Errorf(format string, args ...interface{}) {}
