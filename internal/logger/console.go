// Package logger provides the leveled console logger used across the CLI.
// Messages are timestamped and written through a mutex so commands and the
// background saver can log concurrently. Color is enabled only when the
// writer is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

// Console writes leveled, timestamped log lines to a single writer.
type Console struct {
	mu       sync.Mutex
	writer   io.Writer
	level    int
	useColor bool
}

// NewConsole creates a Console writing to w. Valid levels are debug, info,
// warn and error (case-insensitive); anything else defaults to info. A nil
// writer discards all output.
func NewConsole(w io.Writer, level string) *Console {
	if w == nil {
		w = io.Discard
	}
	return &Console{
		writer:   w,
		level:    parseLevel(level),
		useColor: isTerminal(w),
	}
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// isTerminal reports whether w is an os.File backed by a TTY.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var (
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgHiBlack)
)

func (c *Console) log(level int, tag string, paint *color.Color, format string, args ...interface{}) {
	if level < c.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s%s", time.Now().Format("15:04:05"), tag, msg)
	if c.useColor && paint != nil {
		line = paint.Sprint(line)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.writer, line)
}

// Debugf logs a debug-level message.
func (c *Console) Debugf(format string, args ...interface{}) {
	c.log(levelDebug, "DEBUG: ", debugColor, format, args...)
}

// Infof logs an info-level message.
func (c *Console) Infof(format string, args ...interface{}) {
	c.log(levelInfo, "", nil, format, args...)
}

// Warnf logs a warning.
func (c *Console) Warnf(format string, args ...interface{}) {
	c.log(levelWarn, "Warning: ", warnColor, format, args...)
}

// Errorf logs an error.
func (c *Console) Errorf(format string, args ...interface{}) {
	c.log(levelError, "Error: ", errorColor, format, args...)
}
