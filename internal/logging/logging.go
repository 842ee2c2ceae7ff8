// Package logging provides the fatal-error and context-ring-buffer
// behavior of the original error.cpp, rebuilt on top of logrus.
//
// Every LOG_CONTEXT(...) call site in the C source becomes a Debug log
// through the ring buffer hook below; FATAL_ERROR/REL_ASSERT become
// Fatal, which prints the diagnostic and the accumulated ~4KiB of
// context before exiting the process.
package logging

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

const ringCapacity = 4096

// ring is an append-newest, overwrite-oldest byte buffer, mirroring the
// mirrored double-write trick in error.cpp without needing the C
// wrap-around memcpy, since Go slices make a ring buffer cheap to express
// as a single growing-then-trimmed []byte.
type ring struct {
	mu   sync.Mutex
	data []byte
}

func (r *ring) append(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, line...)
	r.data = append(r.data, '\n')

	if len(r.data) > ringCapacity {
		r.data = r.data[len(r.data)-ringCapacity:]
	}
}

func (r *ring) dump() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return string(r.data)
}

// contextHook mirrors log_context(): every entry logrus fires (any level
// the logger's level lets through) is appended to the ring buffer.
// Context breadcrumbs below that level are appended by Context itself.
type contextHook struct {
	ring *ring
}

func (h *contextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *contextHook) Fire(e *logrus.Entry) error {
	line, err := e.String()
	if err != nil {
		return err
	}
	h.ring.append(line)
	return nil
}

// Logger wraps a *logrus.Logger with the ring-buffer-dump-on-fatal
// behavior spec.md §7 requires. It is an explicit handle rather than a
// package-level global, per the "global logging state" design note.
type Logger struct {
	*logrus.Logger
	ring *ring
}

// New builds a Logger with a bounded context ring buffer installed as a
// hook. level controls what is actually written to stderr; the ring
// buffer retains the last ~4KiB of every emitted log line plus every
// Context breadcrumb regardless of level.
func New(level logrus.Level) *Logger {
	base := logrus.New()
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: false})

	r := &ring{}
	base.AddHook(&contextHook{ring: r})

	return &Logger{Logger: base, ring: r}
}

// Context records a log_context()-style breadcrumb: always retained in
// the ring buffer, only printed to stderr when the logger's level allows
// Debug output.
func (l *Logger) Context(file string, line int, format string, args ...interface{}) {
	msg := fmt.Sprintf("%s:%d: %s", file, line, fmt.Sprintf(format, args...))
	if !l.IsLevelEnabled(logrus.DebugLevel) {
		// logrus skips hooks for disabled levels, so record it directly.
		l.ring.append(msg)
		return
	}
	l.Debug(msg)
}

// Fatal prints a one-line diagnostic in the same shape as error.cpp's
// fatal_error ("<file>:<line>: error: <message>"), dumps the context
// ring buffer, and exits the process with status 1. It never panics:
// scenario 6 of spec.md §8 requires a clean non-zero exit with a
// specific diagnostic shape, not a Go stack trace.
func (l *Logger) Fatal(file string, line int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s:%d: error: %s\n", file, line, msg)

	if dump := l.ring.dump(); dump != "" {
		fmt.Fprintf(os.Stderr, "context:\n%s", dump)
	}

	os.Exit(1)
}

// Assert is the Go analog of REL_ASSERT: it calls Fatal when condition
// is false.
func (l *Logger) Assert(condition bool, file string, line int, what string) {
	if !condition {
		l.Fatal(file, line, "assert failed (%s)", what)
	}
}
