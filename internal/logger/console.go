package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
)

var consoleStyles = map[slog.Level]struct {
	prefix string
	color  *color.Color
}{
	slog.LevelError: {"ERROR: ", color.New(color.FgRed)},
	slog.LevelWarn:  {"WARNING: ", color.New(color.FgYellow)},
	slog.LevelDebug: {"VERBOSE: ", color.New(color.FgCyan)},
}

// consoleHandler prints one line per record without timestamps
type consoleHandler struct {
	w       io.Writer
	verbose bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	switch {
	case level <= LevelTrace:
		return false
	case level == slog.LevelDebug:
		return h.verbose
	default:
		return true
	}
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)

	r.Attrs(func(a slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')

		if isHandle(a) {
			b.WriteString(formatHandle(a.Value.Uint64()))
		} else {
			b.WriteString(a.Value.String())
		}

		return true
	})

	style, ok := consoleStyles[r.Level]
	if !ok {
		_, err := fmt.Fprintln(h.w, b.String())
		return err
	}

	_, err := style.color.Fprintf(h.w, "%s%s\n", style.prefix, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *consoleHandler) WithGroup(_ string) slog.Handler      { return h }

// isHandle reports whether a carries a window handle (hwnd, topBarHwnd, ...)
func isHandle(a slog.Attr) bool {
	return a.Value.Kind() == slog.KindUint64 && strings.HasSuffix(strings.ToLower(a.Key), "hwnd")
}

// formatHandle matches how Spy++ shows handles
func formatHandle(h uint64) string {
	return fmt.Sprintf("0x%X", h)
}
