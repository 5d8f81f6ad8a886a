// Package logging prints severity-tagged, colourised messages for the
// command-line front end and the diagnostic reporter.
//
// Output lines look like
//
//	WARN string literal is not properly closed
//
// The label and the message are styled per level. Colours are chosen by
// lipgloss from the capabilities of the destination writer, so writing to a
// file or a buffer yields plain text.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Logger writes levelled messages to a single destination.
type Logger struct {
	mu      *sync.Mutex
	out     io.Writer
	level   Level
	color   bool
	palette palette
}

// New returns a logger writing to out with colours enabled (subject to the
// terminal profile of out) and every level visible.
func New(out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{
		mu:      &sync.Mutex{},
		out:     out,
		level:   LevelInfo,
		color:   true,
		palette: newPalette(lipgloss.NewRenderer(out)),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard).WithLevel(LevelFatal + 1)
}

func (l *Logger) clone() *Logger {
	c := *l
	return &c
}

// WithLevel returns a copy that suppresses messages below level.
func (l *Logger) WithLevel(level Level) *Logger {
	c := l.clone()
	c.level = level
	return c
}

// WithColor returns a copy with styling switched on or off.
func (l *Logger) WithColor(enabled bool) *Logger {
	c := l.clone()
	c.color = enabled
	return c
}

// Level reports the minimum visible level.
func (l *Logger) Level() Level { return l.level }

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool { return level >= l.level }

func (l *Logger) Info(format string, args ...any)  { l.Log(LevelInfo, fmt.Sprintf(format, args...)) }
func (l *Logger) Warn(format string, args ...any)  { l.Log(LevelWarn, fmt.Sprintf(format, args...)) }
func (l *Logger) Error(format string, args ...any) { l.Log(LevelError, fmt.Sprintf(format, args...)) }

// Fatal logs at the highest level. It does not exit; terminating the
// process is left to the command that owns it.
func (l *Logger) Fatal(format string, args ...any) { l.Log(LevelFatal, fmt.Sprintf(format, args...)) }

// Log writes one "LABEL message" line.
func (l *Logger) Log(level Level, msg string) {
	if !l.Enabled(level) {
		return
	}
	st := l.style(level)
	line := l.paint(st.label, level.Label()) + " " + l.paint(st.msg, msg) + "\n"
	l.Write([]byte(line))
}

// Write sends pre-rendered text (for example a source snippet) to the
// destination without any decoration.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Write(p)
}

// Highlight styles s with the message colour of level.
func (l *Logger) Highlight(level Level, s string) string {
	return l.paint(l.style(level).msg, s)
}

// Dim styles s like a line-number gutter.
func (l *Logger) Dim(s string) string {
	return l.paint(l.palette.gutter, s)
}

func (l *Logger) style(level Level) levelStyle {
	if level < 0 || int(level) >= len(l.palette.levels) {
		level = LevelFatal
	}
	return l.palette.levels[level]
}

func (l *Logger) paint(st lipgloss.Style, s string) string {
	if !l.color || s == "" {
		return s
	}
	return st.Render(s)
}
