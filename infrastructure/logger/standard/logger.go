// ABOUTME: Logger implementation backed by logrus
// ABOUTME: Provides structured, leveled logging behind the core Logger interface

package standard

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// StandardLogger implements the Logger interface using logrus
type StandardLogger struct {
	log *logrus.Logger
}

// NewStandardLogger creates a logger writing to stdout at info level
func NewStandardLogger() *StandardLogger {
	return NewStandardLoggerWithLevel("info")
}

// NewStandardLoggerWithLevel creates a logger with an explicit level.
// Unknown level strings fall back to info.
func NewStandardLoggerWithLevel(level string) *StandardLogger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	return &StandardLogger{log: l}
}

// SetOutput redirects log output, mainly for tests
func (l *StandardLogger) SetOutput(w io.Writer) {
	l.log.SetOutput(w)
}

// Debug logs a debug message
func (l *StandardLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *StandardLogger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *StandardLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *StandardLogger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}
