package main

import (
	"fmt"
	"io"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("LEVEL%d", int(l))
	}
	return levelNames[l]
}

// sink is the writer shared by a logger and everything derived from it.
type sink struct {
	mu  sync.Mutex
	out io.Writer
}

// Logger writes one line per event to a file the UI does not draw on,
// usually the one opened by tea.LogToFile. A nil *Logger drops everything.
type Logger struct {
	sink  *sink
	min   Level
	scope string
}

func NewLogger(out io.Writer, minLevel Level, scope string) *Logger {
	if out == nil {
		return nil
	}
	return &Logger{sink: &sink{out: out}, min: minLevel, scope: scope}
}

func DiscardLogger() *Logger { return nil }

// WithPrefix narrows the scope: "kaleido" becomes "kaleido/editor".
func (l *Logger) WithPrefix(scope string) *Logger {
	if l == nil {
		return nil
	}
	if l.scope != "" {
		scope = l.scope + "/" + scope
	}
	return &Logger{sink: l.sink, min: l.min, scope: scope}
}

func (l *Logger) Debug(format string, args ...any) { l.write(LevelDebug, format, args) }

func (l *Logger) Info(format string, args ...any) { l.write(LevelInfo, format, args) }

func (l *Logger) Warn(format string, args ...any) { l.write(LevelWarn, format, args) }

func (l *Logger) write(level Level, format string, args []any) {
	if l == nil || level < l.min {
		return
	}
	line := time.Now().Format("15:04:05.000") + " " + level.String() + " "
	if l.scope != "" {
		line += "[" + l.scope + "] "
	}
	line += fmt.Sprintf(format, args...) + "\n"

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	io.WriteString(l.sink.out, line)
}
