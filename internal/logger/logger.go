// Package logger is a small leveled wrapper around the standard log package.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	LevelOff Level = iota
	LevelNormal
	LevelVerbose
)

// ParseLevel maps a config value onto a Level. Unknown values mean normal.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "quiet", "none":
		return LevelOff
	case "verbose", "debug":
		return LevelVerbose
	default:
		return LevelNormal
	}
}

type Logger struct {
	mu    sync.RWMutex
	level Level
	out   *log.Logger
}

// New creates a logger writing to out, or os.Stderr when out is nil.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{level: level, out: log.New(out, "", log.Ltime)}
}

// Nop discards everything. Handy in tests.
func Nop() *Logger {
	return New(LevelOff, io.Discard)
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) emit(min Level, tag, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level < min {
		return
	}
	l.out.Output(3, tag+" "+fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) { l.emit(LevelVerbose, "[DBG]", format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.emit(LevelNormal, "[INF]", format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.emit(LevelNormal, "[WRN]", format, args...) }
func (l *Logger) Error(format string, args ...any) { l.emit(LevelNormal, "[ERR]", format, args...) }
