package studyroom

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger is the leveled printf-style logger shared by every package of the
// study room. Debug output is gated at runtime so it can be toggled from
// a flag or the config file.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes Debug and Info to one stream and Warn and Error to
// another. Lines look like "[studyroom/scene] WARN: message".
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	l := &DefaultLogger{debug: debug, prefix: prefix}
	l.SetOutput(os.Stdout, os.Stderr)
	return l
}

// SetOutput redirects both streams. A nil writer discards that stream.
func (l *DefaultLogger) SetOutput(out, errs io.Writer) {
	if out == nil {
		out = io.Discard
	}
	if errs == nil {
		errs = io.Discard
	}
	flags := log.LstdFlags | log.Lmicroseconds
	l.mu.Lock()
	l.out = log.New(out, "", flags)
	l.err = log.New(errs, "", flags)
	l.mu.Unlock()
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.DebugEnabled() {
		l.emit(false, "DEBUG", format, args)
	}
}

func (l *DefaultLogger) Infof(format string, args ...any)  { l.emit(false, "INFO", format, args) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.emit(true, "WARN", format, args) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.emit(true, "ERROR", format, args) }

func (l *DefaultLogger) emit(toErr bool, level, format string, args []any) {
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		msg = fmt.Sprintf("[%s] %s: %s", l.prefix, level, msg)
	} else {
		msg = level + ": " + msg
	}
	l.mu.Lock()
	dst := l.out
	if toErr {
		dst = l.err
	}
	l.mu.Unlock()
	dst.Print(msg)
}

// Named returns a logger whose messages carry component after the parent's
// prefix. The debug switch stays shared with the parent.
func Named(parent Logger, component string) Logger {
	parent = OrNop(parent)
	if component == "" {
		return parent
	}
	if n, ok := parent.(*namedLogger); ok {
		return &namedLogger{parent: n.parent, tag: n.tag + "/" + component}
	}
	return &namedLogger{parent: parent, tag: component}
}

type namedLogger struct {
	parent Logger
	tag    string
}

func (n *namedLogger) DebugEnabled() bool    { return n.parent.DebugEnabled() }
func (n *namedLogger) SetDebug(enabled bool) { n.parent.SetDebug(enabled) }

func (n *namedLogger) Debugf(format string, args ...any) { n.parent.Debugf(n.tagged(format), args...) }
func (n *namedLogger) Infof(format string, args ...any)  { n.parent.Infof(n.tagged(format), args...) }
func (n *namedLogger) Warnf(format string, args ...any)  { n.parent.Warnf(n.tagged(format), args...) }
func (n *namedLogger) Errorf(format string, args ...any) { n.parent.Errorf(n.tagged(format), args...) }

func (n *namedLogger) tagged(format string) string {
	return n.tag + ": " + strings.ReplaceAll(format, "\n", " ")
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// OrNop never returns nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NewNopLogger()
	}
	return l
}
