package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/dockbar/internal/appbar"
	"github.com/Norgate-AV/dockbar/internal/geometry"
	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/timeouts"
	"github.com/Norgate-AV/dockbar/internal/windows"
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Dock a window to a screen edge until interrupted",
	Long: `attach registers a window as an app bar and keeps it docked, re-negotiating
its position when displays change. On exit the window is unregistered and the
work area restored.`,
	Example: `  dockbar attach --hwnd 0x1A2B3C --edge top --height 24 --role menubar
  dockbar attach --class MyBarWindow --edge bottom --role taskbar`,
	Args: cobra.NoArgs,
	RunE: runAttach,
}

func init() {
	f := attachCmd.Flags()
	f.String("hwnd", "", "window handle in hex")
	f.String("class", "", "find the window by class name")
	f.String("title", "", "find the window by title")
	f.String("edge", "top", "screen edge: top, bottom, left or right")
	f.Float64("width", 0, "bar width in DIPs, used for left and right bars")
	f.Float64("height", 0, "bar height in DIPs (defaults to the role's height from settings)")
	f.String("role", "other", "bar role: menubar, taskbar or other")
	f.Int("screen", -1, "display index (default uses the primary work area)")

	RootCmd.AddCommand(attachCmd)
}

// attachOptions holds the parsed attach flags
type attachOptions struct {
	Hwnd   string
	Class  string
	Title  string
	Edge   geometry.Edge
	Width  float64
	Height float64
	Role   appbar.Role
	Screen int
}

func attachOptionsFromFlags(cmd *cobra.Command) (attachOptions, error) {
	f := cmd.Flags()

	opts := attachOptions{
		Hwnd:  getStringFlag(cmd, "hwnd"),
		Class: getStringFlag(cmd, "class"),
		Title: getStringFlag(cmd, "title"),
	}

	opts.Width, _ = f.GetFloat64("width")
	opts.Height, _ = f.GetFloat64("height")
	opts.Screen, _ = f.GetInt("screen")

	edge, err := geometry.ParseEdge(getStringFlag(cmd, "edge"))
	if err != nil {
		return opts, err
	}

	role, err := appbar.ParseRole(getStringFlag(cmd, "role"))
	if err != nil {
		return opts, err
	}

	opts.Edge = edge
	opts.Role = role

	return opts, nil
}

// parseHandle parses a window handle written in hex, with or without 0x
func parseHandle(s string) (uintptr, error) {
	digits := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")

	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window handle %q: %w", s, err)
	}

	if v == 0 {
		return 0, fmt.Errorf("invalid window handle %q: %w", s, appbar.ErrInvalidHandle)
	}

	return uintptr(v), nil
}

// windowLookup is implemented by backends that can find windows by name
type windowLookup interface {
	FindWindow(class, title string) uintptr
}

func resolveWindow(platform interfaces.Platform, opts attachOptions) (uintptr, error) {
	if opts.Hwnd != "" {
		return parseHandle(opts.Hwnd)
	}

	if opts.Class == "" && opts.Title == "" {
		return 0, errors.New("one of --hwnd, --class or --title is required")
	}

	lookup, ok := platform.(windowLookup)
	if !ok {
		return 0, errors.New("window lookup by name is not supported by this backend")
	}

	hwnd := lookup.FindWindow(opts.Class, opts.Title)
	if hwnd == 0 {
		return 0, fmt.Errorf("no window found (class %q, title %q)", opts.Class, opts.Title)
	}

	return hwnd, nil
}

// buildBar turns the options into a bar, filling the height from the role's
// configured height when none was given
func buildBar(hwnd uintptr, opts attachOptions, s *session) (appbar.Bar, error) {
	bar := appbar.Bar{
		Hwnd:   hwnd,
		Edge:   opts.Edge,
		Width:  opts.Width,
		Height: opts.Height,
		Role:   opts.Role,
	}

	if bar.Height == 0 {
		switch bar.Role {
		case appbar.RoleMenuBar:
			bar.Height = s.settings.MenuBar.Height
		case appbar.RoleTaskbar:
			bar.Height = s.settings.Taskbar.Height
		}
	}

	if bar.Thickness() <= 0 {
		if bar.Edge.Horizontal() {
			return bar, errors.New("--height is required for this role")
		}

		return bar, errors.New("--width is required for left and right bars")
	}

	if opts.Screen >= 0 {
		screen, err := s.engine.Display().Screen(opts.Screen)
		if err != nil {
			return bar, err
		}

		bar.Screen = screen
	}

	return bar, nil
}

func runAttach(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(s *session) error {
		opts, err := attachOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		hwnd, err := resolveWindow(s.platform, opts)
		if err != nil {
			return err
		}

		bar, err := buildBar(hwnd, opts, s)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		done := make(chan struct{})
		defer close(done)

		// Closing the console kills the process shortly after the handler
		// returns, so hold it until the shell state is restored
		_ = windows.SetConsoleCtrlHandler(func(ctrlType uint32) uintptr {
			s.log.Debug("Received console control event",
				slog.String("type", windows.GetCtrlTypeName(ctrlType)),
				slog.Uint64("code", uint64(ctrlType)),
			)

			stop()

			select {
			case <-done:
			case <-time.After(timeouts.DrainTimeout):
			}

			return 1
		})

		return attach(ctx, s, bar)
	})
}

// attach registers bar, serves the dispatcher until ctx is canceled and then
// hands the screen back to the shell
func attach(ctx context.Context, s *session, bar appbar.Bar) error {
	callback, res := s.engine.Register(bar)
	if res.Status == appbar.StatusFatal {
		return fmt.Errorf("failed to register window 0x%X: %w", bar.Hwnd, res.Err)
	}

	if res.Err != nil {
		s.log.Warn("App bar registered with warnings", slog.Any("error", res.Err))
	}

	s.log.Info("App bar attached",
		slog.String("hwnd", fmt.Sprintf("0x%X", bar.Hwnd)),
		slog.String("edge", bar.Edge.String()),
		slog.String("role", bar.Role.String()),
		slog.String("rect", res.Rect.String()),
		slog.Uint64("callbackMessage", uint64(callback)),
	)

	// Queued behind the window move so the work area follows the bar
	if bar.Role != appbar.RoleOther {
		s.dispatcher.Post(true, func() {
			if _, err := s.engine.ApplyWorkArea(); err != nil {
				s.log.Warn("Failed to apply work area", slog.Any("error", err))
			}
		})
	}

	if s.engine.Settings().TaskbarEnabled {
		if err := s.engine.SetVisibility(true); err != nil {
			s.log.Warn("Failed to hide OS taskbar", slog.Any("error", err))
		}
	}

	watcher := appbar.NewWatcher(s.engine, s.dispatcher, s.log)
	watcher.Start(ctx, timeouts.DisplayPollingInterval, timeouts.DisplaySettleDelay)

	s.log.Info("Press Ctrl+C to detach")

	if err := s.dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("Dispatcher stopped", slog.Any("error", err))
	}

	s.log.Info("Detaching app bars")

	if err := s.engine.Shutdown(); err != nil {
		return fmt.Errorf("failed to restore shell state: %w", err)
	}

	return nil
}
