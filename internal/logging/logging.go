// Package logging sets up lumen's structured logger.
//
// A full-screen terminal program cannot write logs to stderr, so records go to
// a file (see config.Config.LogFile) through a tint handler with colors turned
// off. `lumen logs` reads that file back and adds color.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
)

// TimeFormat is the timestamp layout of every record.
const TimeFormat = time.DateTime

// maxFileSize is the size at which the log is rotated to <file>.1 on open.
const maxFileSize = 4 << 20

// Options controls the logger built by New.
type Options struct {
	Path  string
	Debug bool
}

// New opens (creating as needed) the log file and returns a logger writing to
// it. The returned closer releases the file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if opts.Path == "" {
		return nil, nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	if err := rotate(opts.Path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWithWriter(file, opts.Debug), file, nil
}

// NewWithWriter returns a logger writing plain tint lines to w.
func NewWithWriter(w io.Writer, debug bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level(debug),
		TimeFormat: TimeFormat,
		NoColor:    true,
	}))
}

// NewConsole returns a colored logger for the non-interactive subcommands.
func NewConsole(w io.Writer, debug bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level(debug),
		TimeFormat: time.Kitchen,
	}))
}

func level(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func rotate(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() < maxFileSize {
		return nil
	}
	if err := os.Rename(path, path+".1"); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}
