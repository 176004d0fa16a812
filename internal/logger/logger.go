// Package logger writes dockbar's diagnostic log.
//
// Every record goes to a rotating text file under the user's local app data
// folder. Debug and above are echoed to the console as short coloured lines;
// Trace stays in the file, where the per-attempt negotiation detail lives.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelTrace sits below Debug and is only written to the file
const LevelTrace = slog.LevelDebug - 4

// LoggerInterface is what every dockbar component logs through
type LoggerInterface interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Close()
	GetLogPath() string
}

// Logger fans each record out to the log file and the console
type Logger struct {
	file    *slog.Logger
	console *slog.Logger
	rotator *lumberjack.Logger
}

// New opens (or creates) the log file described by opts
func New(opts Options) (*Logger, error) {
	opts = opts.withDefaults()

	rotator, err := openRotator(opts)
	if err != nil {
		return nil, err
	}

	var console io.Writer = os.Stdout
	if opts.Console != nil {
		console = opts.Console
	}

	file := slog.New(slog.NewTextHandler(rotator, &slog.HandlerOptions{
		Level:       LevelTrace,
		ReplaceAttr: fileAttr,
	})).With(slog.Int("pid", os.Getpid()))

	return &Logger{
		file:    file,
		console: slog.New(&consoleHandler{w: console, verbose: opts.Verbose}),
		rotator: rotator,
	}, nil
}

// Close flushes and closes the log file
func (l *Logger) Close() {
	if err := l.rotator.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to close log file: %v\n", err)
	}
}

// GetLogPath returns the active log file
func (l *Logger) GetLogPath() string {
	return l.rotator.Filename
}

func (l *Logger) Trace(msg string, args ...any) {
	l.file.Log(context.Background(), LevelTrace, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

func (l *Logger) log(level slog.Level, msg string, args []any) {
	ctx := context.Background()
	l.file.Log(ctx, level, msg, args...)
	l.console.Log(ctx, level, msg, args...)
}

// fileAttr names the trace level and writes window handles in hex
func fileAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
			return slog.String(slog.LevelKey, "TRACE")
		}

		return a
	}

	if isHandle(a) {
		return slog.String(a.Key, formatHandle(a.Value.Uint64()))
	}

	return a
}

// NoOpLogger discards everything
type NoOpLogger struct{}

func (n *NoOpLogger) Trace(msg string, args ...any) {}
func (n *NoOpLogger) Debug(msg string, args ...any) {}
func (n *NoOpLogger) Info(msg string, args ...any)  {}
func (n *NoOpLogger) Warn(msg string, args ...any)  {}
func (n *NoOpLogger) Error(msg string, args ...any) {}
func (n *NoOpLogger) Close()                        {}
func (n *NoOpLogger) GetLogPath() string            { return "" }

func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}
