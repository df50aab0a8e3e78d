// Package logger provides the process-wide logger for tclean.
// Progress is logged at info, skipped paragraphs at warn, and pipeline
// detail at debug; --verbose lowers the level to debug.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	mu   sync.RWMutex
	base = newBase()
)

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(textFormatter())
	return l
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	}
}

// SetVerbose switches between debug and info level.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	if v {
		base.SetLevel(logrus.DebugLevel)
		return
	}
	base.SetLevel(logrus.InfoLevel)
}

// IsVerbose returns true if debug messages are emitted.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return base.IsLevelEnabled(logrus.DebugLevel)
}

// SetLevel sets the level by name: debug, info, warn or error.
func SetLevel(name string) error {
	level, err := logrus.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("log level %q: %w", name, err)
	}
	mu.Lock()
	defer mu.Unlock()
	base.SetLevel(level)
	return nil
}

// SetFormat selects the text or json formatter.
func SetFormat(name string) error {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		base.SetFormatter(textFormatter())
	case "json":
		base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		return fmt.Errorf("log format %q: expected text or json", name)
	}
	return nil
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base.SetOutput(w)
}

// WithFields returns an entry carrying structured fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	mu.RLock()
	defer mu.RUnlock()
	return base.WithFields(fields)
}

// Debug logs pipeline detail.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.Debugf(format, args...)
}

// Section logs a section header at debug level.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	base.Debugf("=== %s ===", name)
}

// Info logs progress.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.Infof(format, args...)
}

// Warn logs a recoverable problem.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.Warnf(format, args...)
}

// Error logs a failure that did not stop the run.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.Errorf(format, args...)
}
