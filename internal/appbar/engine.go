package appbar

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Norgate-AV/dockbar/internal/display"
	"github.com/Norgate-AV/dockbar/internal/geometry"
	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
	"github.com/Norgate-AV/dockbar/internal/taskbar"
	"github.com/Norgate-AV/dockbar/internal/workarea"
)

// Settings are the host preferences the engine reads on every operation.
// Heights are device-independent.
type Settings struct {
	MenuBarHeight float64
	TaskbarHeight float64

	// ReserveTaskbar takes the host taskbar's strip out of the work area
	ReserveTaskbar bool
	TaskbarMode    workarea.TaskbarMode

	// TaskbarEnabled keeps the OS taskbars hidden behind the host's own
	TaskbarEnabled bool

	// TrayEnabled re-raises the host tray after z-order changes
	TrayEnabled bool

	MaxAttempts int
}

// DefaultSettings returns the settings used when none are configured
func DefaultSettings() Settings {
	return Settings{
		MenuBarHeight: 23,
		TaskbarHeight: 29,
		TaskbarMode:   workarea.DefaultTaskbarMode,
		MaxAttempts:   DefaultMaxAttempts,
	}
}

func (s Settings) layout() workarea.Layout {
	return workarea.Layout{
		ReserveTaskbar: s.ReserveTaskbar,
		TaskbarMode:    s.TaskbarMode,
		MenuBarHeight:  s.MenuBarHeight,
		TaskbarHeight:  s.TaskbarHeight,
	}
}

func (s Settings) taskbarOptions() taskbar.Options {
	return taskbar.Options{
		TaskbarEnabled: s.TaskbarEnabled,
		TrayEnabled:    s.TrayEnabled,
	}
}

// Engine is the app bar subsystem as seen by the host. It owns the
// registry, so one Engine per process mirrors the shell's own bookkeeping.
type Engine struct {
	windows    interfaces.WindowController
	provider   *display.Provider
	registry   *Registry
	negotiator *Negotiator
	workArea   *workarea.Manager
	taskbar    *taskbar.Coordinator
	log        logger.LoggerInterface

	mu       sync.RWMutex
	settings Settings
}

// NewEngine wires the engine onto a platform backend. Window moves are
// posted to scheduler; tray may be nil.
func NewEngine(
	platform interfaces.Platform,
	scheduler interfaces.Scheduler,
	tray interfaces.Tray,
	settings Settings,
	log logger.LoggerInterface,
) *Engine {
	e := &Engine{
		windows:  platform,
		provider: display.NewProvider(platform, log),
		registry: NewRegistry(platform, log),
		log:      log,
		settings: settings,
	}

	e.taskbar = taskbar.NewCoordinator(platform, platform, platform, tray, settings.taskbarOptions(), log)
	e.workArea = workarea.NewManager(platform, e.provider, func() workarea.Layout { return e.Settings().layout() }, log)
	e.negotiator = NewNegotiator(platform, platform, e.provider, scheduler, e.Settings, e.taskbar.AfterMove, log)

	return e
}

// Settings returns the current settings
func (e *Engine) Settings() Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.settings
}

// SetSettings replaces the settings. Bars are not re-negotiated.
func (e *Engine) SetSettings(s Settings) {
	e.mu.Lock()
	e.settings = s
	e.mu.Unlock()

	e.taskbar.SetOptions(s.taskbarOptions())
}

// Taskbar returns the taskbar coordinator
func (e *Engine) Taskbar() *taskbar.Coordinator {
	return e.taskbar
}

// Display returns the geometry provider
func (e *Engine) Display() *display.Provider {
	return e.provider
}

// SetDesktop attaches the desktop background window refitted after moves and
// work area changes
func (e *Engine) SetDesktop(d interfaces.Desktop) {
	e.taskbar.SetDesktop(d)
	e.workArea.SetDesktop(d)
}

// Register makes bar an app bar and positions it, returning the callback
// message id the window will receive shell notifications on. Registering a
// tracked bar repositions it with the new request.
func (e *Engine) Register(bar Bar) (uint32, Result) {
	if err := bar.validate(); err != nil {
		return 0, fatal(err)
	}

	if !e.windows.IsWindow(bar.Hwnd) {
		return 0, fatal(fmt.Errorf("%w: 0x%X", ErrStaleHandle, bar.Hwnd))
	}

	callback, added, err := e.registry.Add(bar)
	if err != nil && !errors.Is(err, ErrShellRefused) {
		e.log.Warn("Could not register app bar", slog.Uint64("hwnd", uint64(bar.Hwnd)), slog.Any("error", err))
		return 0, fatal(err)
	}

	if added {
		e.log.Info("App bar registered",
			slog.Uint64("hwnd", uint64(bar.Hwnd)),
			slog.String("edge", bar.Edge.String()),
		)
	}

	res := e.negotiator.SetPosition(bar)

	if err != nil {
		e.log.Warn("Shell refused app bar registration", slog.Uint64("hwnd", uint64(bar.Hwnd)), slog.Any("error", err))

		if res.Status == StatusHandled {
			res.Status = StatusIgnored
			res.Err = err
		}
	}

	return callback, res
}

// Unregister removes hwnd from the shell. Handles that are not registered
// are ignored without contacting the shell.
func (e *Engine) Unregister(hwnd uintptr) Result {
	removed, err := e.registry.Remove(hwnd)
	if !removed {
		return ignored(nil)
	}

	if err != nil {
		e.log.Warn("Shell refused app bar removal", slog.Uint64("hwnd", uint64(hwnd)), slog.Any("error", err))
		return ignored(err)
	}

	e.log.Info("App bar unregistered", slog.Uint64("hwnd", uint64(hwnd)))

	return Result{Status: StatusHandled}
}

// Toggle registers bar when it is not registered and unregisters it when it
// is, returning 0 in the second case.
//
// Deprecated: a caller that only wants to reposition a bar unregisters it
// instead. Use Register, SetPosition and Unregister.
func (e *Engine) Toggle(bar Bar) (uint32, Result) {
	if e.registry.Contains(bar.Hwnd) {
		return 0, e.Unregister(bar.Hwnd)
	}

	return e.Register(bar)
}

// UnregisterAll removes every registered bar, newest first
func (e *Engine) UnregisterAll() error {
	bars := e.registry.Bars()

	var errs []error

	for i := len(bars) - 1; i >= 0; i-- {
		if res := e.Unregister(bars[i].Hwnd); res.Err != nil {
			errs = append(errs, res.Err)
		}
	}

	return errors.Join(errs...)
}

// Bars returns the registered bars in registration order
func (e *Engine) Bars() []Bar {
	return e.registry.Bars()
}

// IsRegistered reports whether hwnd is a registered app bar
func (e *Engine) IsRegistered(hwnd uintptr) bool {
	return e.registry.Contains(hwnd)
}

// SetPosition re-negotiates a bar. The stored request of a registered bar
// is updated first, so later re-negotiations keep the new geometry.
func (e *Engine) SetPosition(bar Bar) Result {
	e.registry.Update(bar)
	return e.negotiator.SetPosition(bar)
}

// HandleNotification processes a shell callback message for hwnd
func (e *Engine) HandleNotification(hwnd uintptr, code uint32) Result {
	switch code {
	case NotifyPosChanged:
		bar, ok := e.registry.Get(hwnd)
		if !ok {
			e.log.Debug("Position change for unknown window", slog.Uint64("hwnd", uint64(hwnd)))
			return ignored(nil)
		}

		e.log.Debug("Shell reported position change", slog.Uint64("hwnd", uint64(hwnd)))
		return e.negotiator.SetPosition(bar)
	case NotifyFullScreenApp, NotifyStateChange, NotifyWindowArrange:
		e.log.Debug("Ignoring shell notification", slog.Uint64("hwnd", uint64(hwnd)), slog.Uint64("code", uint64(code)))
		return ignored(nil)
	default:
		e.log.Debug("Unknown shell notification", slog.Uint64("hwnd", uint64(hwnd)), slog.Uint64("code", uint64(code)))
		return ignored(fmt.Errorf("unknown notification code %d", code))
	}
}

// Renegotiate re-resolves every bar's display against screens and positions
// it again. A bar whose display is gone falls back to the primary display.
// The work area is reinstalled if it had been applied.
func (e *Engine) Renegotiate(screens []geometry.Screen) []Result {
	bars := e.registry.Bars()
	results := make([]Result, 0, len(bars))

	for _, bar := range bars {
		if bar.Screen != nil {
			bar.Screen = findScreen(screens, bar.Screen.Device)
			e.registry.Update(bar)
		}

		results = append(results, e.negotiator.SetPosition(bar))
	}

	if _, applied := e.workArea.Current(); applied {
		if _, err := e.workArea.Apply(); err != nil {
			e.log.Warn("Could not reapply work area", slog.Any("error", err))
		}
	}

	return results
}

func findScreen(screens []geometry.Screen, device string) *geometry.Screen {
	for _, s := range screens {
		if s.Device == device {
			return &s
		}
	}

	return nil
}

// SetVisibility hides or shows the OS taskbars
func (e *Engine) SetVisibility(hidden bool) error {
	return e.taskbar.SetVisibility(hidden)
}

// SetState switches the OS taskbar between auto-hide and always-on-top
func (e *Engine) SetState(autoHide bool) error {
	return e.taskbar.SetState(autoHide)
}

// Activate forwards a bar's activation to the shell
func (e *Engine) Activate(hwnd uintptr) error {
	return e.taskbar.Activate(hwnd)
}

// NotifyPositionChanged forwards a bar's move or resize to the shell
func (e *Engine) NotifyPositionChanged(hwnd uintptr) error {
	return e.taskbar.NotifyPositionChanged(hwnd)
}

// ApplyWorkArea installs the work area for the current settings
func (e *Engine) ApplyWorkArea() (geometry.Rect, error) {
	return e.workArea.Apply()
}

// ResetWorkArea restores the full virtual-screen work area
func (e *Engine) ResetWorkArea() (geometry.Rect, error) {
	return e.workArea.Reset()
}

// WorkArea returns the last installed work area
func (e *Engine) WorkArea() (geometry.Rect, bool) {
	return e.workArea.Current()
}

// PrimaryMonitorSize returns the primary display size in device-independent units
func (e *Engine) PrimaryMonitorSize() geometry.Size {
	return e.provider.PrimaryMonitorSize()
}

// PrimaryMonitorDeviceSize returns the primary display size in pixels
func (e *Engine) PrimaryMonitorDeviceSize() geometry.Size {
	return e.provider.PrimaryMonitorDeviceSize()
}

// PrimaryMonitorWorkArea returns the size of the system work area
func (e *Engine) PrimaryMonitorWorkArea() geometry.Size {
	return e.provider.PrimaryMonitorWorkArea()
}

// Shutdown unregisters every bar, restores the full work area and shows
// the OS taskbars again if they were being hidden
func (e *Engine) Shutdown() error {
	var errs []error

	if err := e.UnregisterAll(); err != nil {
		errs = append(errs, err)
	}

	if _, err := e.workArea.Reset(); err != nil {
		errs = append(errs, err)
	}

	if e.Settings().TaskbarEnabled {
		if err := e.taskbar.SetVisibility(false); err != nil {
			errs = append(errs, err)
		}
	}

	e.log.Debug("App bar engine shut down", slog.Int("errors", len(errs)))

	return errors.Join(errs...)
}
