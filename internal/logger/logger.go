package logger

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/playground.txt"

// DefaultMaxLines bounds the in-memory line buffer shown by the console.
const DefaultMaxLines = 500

const timeLayout = "2006-01-02 15:04:05"

// Options configures New.
type Options struct {
	// Path is the file records are appended to. Empty keeps records in memory only.
	Path     string
	Level    slog.Level
	MaxLines int
	// Echo, when set, receives a copy of every record (e.g. os.Stderr).
	Echo io.Writer
}

// Logger is the playground's log sink. Records go through a slog text handler into a log
// file and into a bounded list of lines the console draws above its input bar.
type Logger struct {
	mu       sync.Mutex
	lines    []string
	maxLines int
	file     *os.File
	echo     io.Writer
	level    *slog.LevelVar
	slog     *slog.Logger
}

// New opens (or creates) the log file, creating its directory if needed.
func New(opts Options) (*Logger, error) {
	if opts.MaxLines <= 0 {
		opts.MaxLines = DefaultMaxLines
	}
	l := &Logger{maxLines: opts.MaxLines, echo: opts.Echo, level: new(slog.LevelVar)}
	l.level.Set(opts.Level)
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
	}
	l.slog = slog.New(slog.NewTextHandler(l, &slog.HandlerOptions{
		Level: l.level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(timeLayout))
			}
			return a
		},
	}))
	return l, nil
}

// Slog returns the structured logger writing into l.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// SetLevel changes the minimum level of records kept.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Log records a plain line at info level, e.g. console input and command output.
func (l *Logger) Log(line string) {
	l.slog.Info(line)
}

// Write implements io.Writer for the slog handler. Each newline-terminated record becomes
// one stored line.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		l.lines = append(l.lines, string(line))
	}
	if over := len(l.lines) - l.maxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	if l.echo != nil {
		_, _ = l.echo.Write(p)
	}
	if l.file != nil {
		return l.file.Write(p)
	}
	return len(p), nil
}

// Lines returns a copy of the stored lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ParseLevel maps debug, info, warn or error (any case) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
