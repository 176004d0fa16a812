package taskbar

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
)

// App bar states understood by ABM_SETSTATE
const (
	StateAutoHide    uint32 = 0x1
	StateAlwaysOnTop uint32 = 0x2
)

// ErrTaskbarNotFound is returned when no OS taskbar window exists, for
// example while Explorer is restarting
var ErrTaskbarNotFound = errors.New("OS taskbar not found")

// Options selects which host features are active
type Options struct {
	// TaskbarEnabled means the host runs its own taskbar, so the OS
	// taskbars are kept hidden.
	TaskbarEnabled bool

	// TrayEnabled means the host owns the notification area window and it
	// has to be raised again whenever taskbar z-order changes.
	TrayEnabled bool
}

// Coordinator toggles the OS taskbars and keeps the host's companion
// windows in sync after app bar changes
type Coordinator struct {
	shell   interfaces.AppBarShell
	windows interfaces.WindowController
	locator *Locator
	tray    interfaces.Tray
	log     logger.LoggerInterface

	mu      sync.Mutex
	opts    Options
	desktop interfaces.Desktop
	shadows []interfaces.Shadow
}

// NewCoordinator creates a coordinator. tray may be nil.
func NewCoordinator(
	shell interfaces.AppBarShell,
	windows interfaces.WindowController,
	finder interfaces.WindowFinder,
	tray interfaces.Tray,
	opts Options,
	log logger.LoggerInterface,
) *Coordinator {
	return &Coordinator{
		shell:   shell,
		windows: windows,
		locator: NewLocator(finder, tray),
		tray:    tray,
		opts:    opts,
		log:     log,
	}
}

// Locator returns the coordinator's taskbar locator
func (c *Coordinator) Locator() *Locator {
	return c.locator
}

// SetOptions replaces the active feature set
func (c *Coordinator) SetOptions(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.opts = opts
}

func (c *Coordinator) options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.opts
}

// SetDesktop sets the desktop background window, or clears it with nil
func (c *Coordinator) SetDesktop(d interfaces.Desktop) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.desktop = d
}

// AddShadow attaches a shadow decoration
func (c *Coordinator) AddShadow(s interfaces.Shadow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.shadows = append(c.shadows, s)
}

// RemoveShadow detaches a shadow decoration
func (c *Coordinator) RemoveShadow(s interfaces.Shadow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.shadows = slices.DeleteFunc(c.shadows, func(x interfaces.Shadow) bool { return x == s })
}

// SetVisibility hides or shows the OS taskbar, start button and every
// secondary taskbar. Handles are looked up fresh on each call.
func (c *Coordinator) SetVisibility(hidden bool) error {
	h := c.locator.Snapshot()

	c.log.Debug("Setting OS taskbar visibility",
		slog.Bool("hidden", hidden),
		slog.Uint64("hwnd", uint64(h.Primary)),
		slog.Int("secondary", len(h.Secondary)),
	)

	var errs []error

	for _, hwnd := range []uintptr{h.Primary, h.StartButton} {
		if hwnd == 0 {
			continue
		}

		if err := c.windows.SetVisible(hwnd, !hidden); err != nil {
			errs = append(errs, fmt.Errorf("taskbar window 0x%X: %w", hwnd, err))
		}
	}

	errs = append(errs, c.setSecondaryVisibility(h.Secondary, !hidden)...)

	return errors.Join(errs...)
}

func (c *Coordinator) setSecondaryVisibility(handles []uintptr, visible bool) []error {
	var errs []error

	for _, hwnd := range handles {
		if err := c.windows.ShowAsync(hwnd, visible); err != nil {
			errs = append(errs, fmt.Errorf("secondary taskbar 0x%X: %w", hwnd, err))
		}
	}

	return errs
}

func (c *Coordinator) hideSecondaryTaskbars() error {
	var handles []uintptr
	for hwnd := range c.locator.SecondaryTaskbars() {
		handles = append(handles, hwnd)
	}

	return errors.Join(c.setSecondaryVisibility(handles, false)...)
}

// SetState switches the OS taskbar between auto-hide and always-on-top
func (c *Coordinator) SetState(autoHide bool) error {
	hwnd := c.locator.PrimaryTaskbar()
	if hwnd == 0 {
		return ErrTaskbarNotFound
	}

	state := StateAlwaysOnTop
	if autoHide {
		state = StateAutoHide
	}

	c.log.Debug("Setting OS taskbar state",
		slog.Uint64("hwnd", uint64(hwnd)),
		slog.Bool("autoHide", autoHide),
	)

	if err := c.shell.SetState(hwnd, state); err != nil {
		return fmt.Errorf("ABM_SETSTATE: %w", err)
	}

	return nil
}

// Activate tells the shell hwnd was activated. Activation reshuffles the
// taskbar z-order, so secondary taskbars are hidden again and the tray is
// raised when those features are on.
func (c *Coordinator) Activate(hwnd uintptr) error {
	var errs []error

	if err := c.shell.Activate(hwnd); err != nil {
		errs = append(errs, fmt.Errorf("ABM_ACTIVATE: %w", err))
	}

	opts := c.options()

	if opts.TaskbarEnabled {
		if err := c.hideSecondaryTaskbars(); err != nil {
			errs = append(errs, err)
		}
	}

	if opts.TrayEnabled && c.tray != nil {
		c.tray.MakeActive()
	}

	return errors.Join(errs...)
}

// NotifyPositionChanged tells the shell hwnd moved or resized
func (c *Coordinator) NotifyPositionChanged(hwnd uintptr) error {
	if err := c.shell.WindowPosChanged(hwnd); err != nil {
		return fmt.Errorf("ABM_WINDOWPOSCHANGED: %w", err)
	}

	return nil
}

// AfterMove runs once a bar has been moved to its negotiated rectangle
func (c *Coordinator) AfterMove(hwnd uintptr) {
	opts := c.options()

	if opts.TaskbarEnabled {
		if err := c.SetVisibility(true); err != nil {
			c.log.Warn("Could not hide OS taskbar", slog.Any("error", err))
		}
	}

	c.mu.Lock()
	shadows := slices.Clone(c.shadows)
	desktop := c.desktop
	c.mu.Unlock()

	for _, s := range shadows {
		if s.Owner() == hwnd {
			s.SetPosition()
		}
	}

	if desktop != nil {
		desktop.ResetPosition()
	}

	if opts.TrayEnabled && c.tray != nil {
		c.tray.MakeActive()
	}
}
