// Package logger wraps log/slog with a colorized console handler
// (github.com/lmittmann/tint) and an optional file tee, and tags every
// record with the run's UUID so multiple fast-rm invocations appending to
// the same --log-file stay attributable to one run.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

var global *slog.Logger

// Setup initializes the package-level logger. verbose enables debug-level
// output; logFile, if non-empty, additionally tees output to that file
// (opened in append mode, created if missing). The returned close func
// flushes and closes the log file, if one was opened; it is always safe to
// call, including when logFile is empty.
func Setup(verbose bool, logFile string) (closeFn func() error, err error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	var f *os.File
	if logFile != "" {
		f, err = os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return func() error { return nil }, err
		}
		out = io.MultiWriter(os.Stderr, f)
	}

	handler := tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    logFile != "" || !isatty.IsTerminal(os.Stderr.Fd()),
	})

	global = slog.New(handler).With("run_id", uuid.NewString())

	return func() error {
		if f == nil {
			return nil
		}
		return f.Close()
	}, nil
}

func ensure() *slog.Logger {
	if global == nil {
		global = slog.New(tint.NewHandler(os.Stderr, nil))
	}
	return global
}

// Debug logs a debug-level message. Filtered out unless verbose mode is on.
func Debug(msg string, args ...any) { ensure().Debug(msg, args...) }

// Info logs an informational message.
func Info(msg string, args ...any) { ensure().Info(msg, args...) }

// Warn logs a warning message — a non-fatal, potentially surprising
// condition (a skipped file, a degraded fallback).
func Warn(msg string, args ...any) { ensure().Warn(msg, args...) }

// Error logs an error message — something failed but the run continues.
func Error(msg string, args ...any) { ensure().Error(msg, args...) }

// FileError logs a per-item deletion failure with structured path/error
// attributes. The deleter pool does not call it; it logs each recorded
// UnlinkError or RmdirError through Error with worker, path, kind and
// error attributes.
func FileError(path string, err error) {
	ensure().Error("failed to delete", "path", path, "error", err)
}
