// Package log is a thin category-aware wrapper around log/slog.
//
// The TUI owns stdout, so logs only go to a file (or nowhere). Call sites pass
// a Category first so a log file can be grepped per subsystem.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Category tags a log line with the subsystem that emitted it.
type Category string

const (
	CatStore  Category = "store"
	CatUI     Category = "ui"
	CatCLI    Category = "cli"
	CatConfig Category = "config"
	CatShell  Category = "shell"
)

var (
	mu     sync.Mutex
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Init points the package logger at path. An empty path discards everything.
// The returned func closes the file and is safe to call more than once.
func Init(path string, level slog.Level) (func() error, error) {
	if path == "" {
		SetOutput(io.Discard, level)
		return func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetOutput(f, level)

	var once sync.Once
	return func() error {
		var cerr error
		once.Do(func() {
			mu.Lock()
			defer mu.Unlock()
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
			cerr = f.Close()
		})
		return cerr
	}, nil
}

// SetOutput replaces the destination writer. Tests use it with a bytes.Buffer.
func SetOutput(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func Debug(cat Category, msg string, args ...any) {
	current().Debug(msg, append([]any{"cat", string(cat)}, args...)...)
}

func Info(cat Category, msg string, args ...any) {
	current().Info(msg, append([]any{"cat", string(cat)}, args...)...)
}

func Warn(cat Category, msg string, args ...any) {
	current().Warn(msg, append([]any{"cat", string(cat)}, args...)...)
}

// ErrorErr logs msg at error level with err attached under the "error" key.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	current().Error(msg, append([]any{"cat", string(cat), "error", err}, args...)...)
}
