// Package workarea computes and installs the desktop work area, the part of
// the virtual screen left over for ordinary windows once the menu bar and
// taskbar have taken their strips.
package workarea

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Norgate-AV/dockbar/internal/display"
	"github.com/Norgate-AV/dockbar/internal/geometry"
	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
)

// TaskbarMode says where the host taskbar's reservation is taken from
type TaskbarMode int

const (
	// TaskbarDocked places the taskbar directly below the menu bar, so its
	// height comes off the top of the work area.
	TaskbarDocked TaskbarMode = iota

	// TaskbarFloating places the taskbar on the bottom edge.
	TaskbarFloating
)

func (m TaskbarMode) String() string {
	switch m {
	case TaskbarDocked:
		return "docked"
	case TaskbarFloating:
		return "floating"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// DefaultTaskbarMode is used when no mode is configured
const DefaultTaskbarMode = TaskbarFloating

// ParseTaskbarMode converts "docked" or "floating" into a TaskbarMode. An
// empty string yields DefaultTaskbarMode.
func ParseTaskbarMode(s string) (TaskbarMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultTaskbarMode, nil
	case "docked":
		return TaskbarDocked, nil
	case "floating":
		return TaskbarFloating, nil
	default:
		return 0, fmt.Errorf("unknown taskbar mode %q (expected docked or floating)", s)
	}
}

// Layout is the reservation state the work area is derived from. Heights
// are device-independent.
type Layout struct {
	ReserveTaskbar bool
	TaskbarMode    TaskbarMode
	MenuBarHeight  float64
	TaskbarHeight  float64
}

// Compute returns the work area for layout on a virtual screen. Only one top
// and one bottom reservation are modelled; left and right always span the
// whole virtual screen.
func Compute(virtual geometry.Rect, layout Layout, scale float64) geometry.Rect {
	menu := geometry.Scale(layout.MenuBarHeight, scale)
	bar := geometry.Scale(layout.TaskbarHeight, scale)

	rc := geometry.Rect{
		Left:   virtual.Left,
		Top:    virtual.Top + menu,
		Right:  virtual.Right,
		Bottom: virtual.Bottom,
	}

	if !layout.ReserveTaskbar {
		return rc
	}

	switch layout.TaskbarMode {
	case TaskbarFloating:
		rc.Bottom -= bar
	default:
		rc.Top += bar
	}

	return rc
}

// Manager owns the work area
type Manager struct {
	store    interfaces.WorkAreaStore
	provider *display.Provider
	layout   func() Layout
	log      logger.LoggerInterface

	mu      sync.Mutex
	current geometry.Rect
	applied bool
	desktop interfaces.Desktop
}

// NewManager creates a work area manager. layout is read on every Apply so
// setting changes take effect without rebuilding the manager.
func NewManager(
	store interfaces.WorkAreaStore,
	provider *display.Provider,
	layout func() Layout,
	log logger.LoggerInterface,
) *Manager {
	return &Manager{
		store:    store,
		provider: provider,
		layout:   layout,
		log:      log,
	}
}

// SetDesktop sets the desktop background window refitted after Apply
func (m *Manager) SetDesktop(d interfaces.Desktop) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.desktop = d
}

// Apply recomputes the work area from the current layout and installs it,
// broadcasting the change to other applications
func (m *Manager) Apply() (geometry.Rect, error) {
	layout := m.layout()
	rc := Compute(m.provider.VirtualScreen(), layout, m.provider.DpiScale())

	m.log.Debug("Applying work area",
		slog.String("rect", rc.String()),
		slog.Bool("reserveTaskbar", layout.ReserveTaskbar),
		slog.String("taskbarMode", layout.TaskbarMode.String()),
	)

	if err := m.install(rc); err != nil {
		return rc, err
	}

	m.mu.Lock()
	desktop := m.desktop
	m.mu.Unlock()

	if desktop != nil {
		desktop.ResetPosition()
	}

	return rc, nil
}

// Reset restores the work area to the full virtual screen. Reservations
// made by other programs are not recalled: there is no record of which
// parts of the old work area they owned.
func (m *Manager) Reset() (geometry.Rect, error) {
	rc := m.provider.VirtualScreen()

	m.log.Debug("Resetting work area", slog.String("rect", rc.String()))

	return rc, m.install(rc)
}

// Current returns the last installed work area
func (m *Manager) Current() (geometry.Rect, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current, m.applied
}

func (m *Manager) install(rc geometry.Rect) error {
	if err := m.store.SetWorkArea(rc); err != nil {
		m.log.Warn("Could not set work area", slog.String("rect", rc.String()), slog.Any("error", err))
		return fmt.Errorf("set work area %s: %w", rc, err)
	}

	m.mu.Lock()
	m.current = rc
	m.applied = true
	m.mu.Unlock()

	return nil
}
