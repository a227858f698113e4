// Package logging provides the leveled logger used across unipointer.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the minimum severity a Logger writes.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	// LevelError silences everything below error.
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel parses a configuration level name. The empty string is info.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// Config configures a Logger.
type Config struct {
	Level  Level
	Output io.Writer // defaults to os.Stderr
	Prefix string
}

// Logger writes one line per message:
//
//	2006-01-02T15:04:05.000 [INFO] unipointer/script: loaded a.lua
type Logger struct {
	mu     *sync.Mutex // shared with derived loggers
	level  Level
	out    io.Writer
	prefix string
	off    bool
}

// New creates a logger.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{mu: &sync.Mutex{}, level: cfg.Level, out: out, prefix: cfg.Prefix}
}

// Null returns a logger that writes nothing.
func Null() *Logger {
	return &Logger{mu: &sync.Mutex{}, out: io.Discard, off: true}
}

// WithComponent returns a logger whose prefix names component.
func (l *Logger) WithComponent(component string) *Logger {
	c := *l
	if c.prefix == "" {
		c.prefix = component
	} else {
		c.prefix += "/" + component
	}
	return &c
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	return !l.off && level >= l.level
}

func (l *Logger) Debug(format string, args ...any) { l.logf(LevelDebug, format, args) }
func (l *Logger) Info(format string, args ...any)  { l.logf(LevelInfo, format, args) }
func (l *Logger) Warn(format string, args ...any)  { l.logf(LevelWarn, format, args) }

func (l *Logger) logf(level Level, format string, args []any) {
	if !l.Enabled(level) {
		return
	}
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] ", time.Now().Format("2006-01-02T15:04:05.000"), level)
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	b.WriteString(format)
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, b.String())
}
