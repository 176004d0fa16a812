package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// AppName names the log folder and file
const AppName = "dockbar"

// Rotation defaults, used when the settings file leaves them at zero
const (
	DefaultMaxSizeMB  = 2
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Options controls where the log goes and how it rotates
type Options struct {
	Verbose bool

	// Dir holds dockbar.log. Empty means %LOCALAPPDATA%\dockbar.
	Dir string

	// Console receives the short console lines. Nil means stdout.
	Console io.Writer

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (o Options) withDefaults() Options {
	if o.MaxSizeMB <= 0 {
		o.MaxSizeMB = DefaultMaxSizeMB
	}

	if o.MaxBackups <= 0 {
		o.MaxBackups = DefaultMaxBackups
	}

	if o.MaxAgeDays <= 0 {
		o.MaxAgeDays = DefaultMaxAgeDays
	}

	return o
}

// Path returns the log file these options point at
func (o Options) Path() string {
	dir := o.Dir
	if dir == "" {
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}

		dir = filepath.Join(base, AppName)
	}

	return filepath.Join(dir, AppName+".log")
}

func openRotator(opts Options) (*lumberjack.Logger, error) {
	path := opts.Path()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}, nil
}

// PrintLogFile copies the current log file to w (stdout when nil)
func PrintLogFile(w io.Writer, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	path := opts.Path()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}

	return nil
}
