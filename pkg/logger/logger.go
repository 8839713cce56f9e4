// Package logger provides the leveled console logger used by typedroutes.
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

// Prefix is written before every message.
const Prefix = "[typedroutes]"

// LogLevel controls which messages are written.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

// String returns the lower-case level name.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelOff:
		return "off"
	default:
		return "info"
	}
}

// ParseLogLevel parses a level name. Unknown names map to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	case "off", "none", "disabled":
		return LogLevelOff
	default:
		return LogLevelInfo
	}
}

// LevelFromEnv reads TYPEDROUTES_LOG_LEVEL.
func LevelFromEnv() LogLevel {
	return ParseLogLevel(os.Getenv("TYPEDROUTES_LOG_LEVEL"))
}

// Logger writes prefixed, leveled messages.
type Logger struct {
	mu         sync.Mutex
	out        io.Writer
	level      LogLevel
	color      bool
	timestamps bool
	now        func() time.Time
}

// New creates a logger writing to w. Color is enabled only when w is a
// terminal and NO_COLOR is unset.
func New(w io.Writer, level LogLevel) *Logger {
	return &Logger{
		out:   w,
		level: level,
		color: isTerminal(w) && !color.NoColor,
		now:   time.Now,
	}
}

// Default returns a stderr logger at the level from the environment.
func Default() *Logger {
	return New(os.Stderr, LevelFromEnv())
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(io.Discard, LogLevelOff)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetLevel changes the minimum level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the minimum level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetTimestamps toggles a leading HH:MM:SS timestamp.
func (l *Logger) SetTimestamps(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timestamps = on
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level LogLevel) bool {
	return level >= l.Level() && level != LogLevelOff
}

func (l *Logger) Debug(format string, args ...any) { l.log(LogLevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LogLevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LogLevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LogLevelError, format, args...) }

func (l *Logger) log(level LogLevel, format string, args ...any) {
	if l == nil || !l.Enabled(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	if l.timestamps {
		b.WriteString(l.paint(color.New(color.Faint), l.now().Format("15:04:05")))
		b.WriteByte(' ')
	}
	b.WriteString(l.paint(color.New(color.FgCyan), Prefix))
	b.WriteByte(' ')
	if level != LogLevelInfo {
		b.WriteString(l.paint(levelColor(level), strings.ToUpper(level.String())))
		b.WriteByte(' ')
	}
	b.WriteString(fmt.Sprintf(format, args...))
	b.WriteByte('\n')

	_, _ = io.WriteString(l.out, b.String())
}

func (l *Logger) paint(c *color.Color, s string) string {
	if !l.color {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

func levelColor(level LogLevel) *color.Color {
	switch level {
	case LogLevelDebug:
		return color.New(color.Faint)
	case LogLevelWarn:
		return color.New(color.FgYellow)
	case LogLevelError:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgGreen)
	}
}
