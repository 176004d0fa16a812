// Package display reports monitor and work area geometry to the app bar engine.
package display

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/Norgate-AV/dockbar/internal/geometry"
	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
)

// Provider answers geometry queries on top of a platform DisplayInfo
type Provider struct {
	info interfaces.DisplayInfo
	log  logger.LoggerInterface
}

// NewProvider creates a geometry provider
func NewProvider(info interfaces.DisplayInfo, log logger.LoggerInterface) *Provider {
	return &Provider{info: info, log: log}
}

// Screens returns the attached displays. Enumeration failures are logged and
// reported as no screens, which callers treat as "use system defaults".
func (p *Provider) Screens() []geometry.Screen {
	screens, err := p.info.Screens()
	if err != nil {
		p.log.Warn("Could not enumerate displays", slog.Any("error", err))
		return nil
	}

	return screens
}

// Screen returns the display at index, in enumeration order
func (p *Provider) Screen(index int) (*geometry.Screen, error) {
	screens := p.Screens()
	if index < 0 || index >= len(screens) {
		return nil, fmt.Errorf("screen %d out of range (%d attached)", index, len(screens))
	}

	s := screens[index]
	return &s, nil
}

// Primary returns the primary display, or nil if none is flagged
func (p *Provider) Primary() *geometry.Screen {
	for _, s := range p.Screens() {
		if s.Primary {
			return &s
		}
	}

	return nil
}

// Reference returns the rectangle a bar on screen is anchored within.
// With a screen, top and bottom come from its full bounds and left and right
// from its work area, so bars sit beside any side-docked OS taskbar. Without
// one, the system work area supplies left and right and the primary
// monitor's device height the bottom.
func (p *Provider) Reference(screen *geometry.Screen) geometry.Rect {
	if screen != nil {
		return geometry.Rect{
			Left:   screen.WorkArea.Left,
			Top:    screen.Bounds.Top,
			Right:  screen.WorkArea.Right,
			Bottom: screen.Bounds.Bottom,
		}
	}

	work := p.info.SystemWorkArea()

	return geometry.Rect{
		Left:   work.Left,
		Top:    0,
		Right:  work.Right,
		Bottom: p.info.PrimaryDeviceSize().Height,
	}
}

// DpiScale returns the system DPI scale factor (1.0 at 96 DPI)
func (p *Provider) DpiScale() float64 {
	scale := p.info.DpiScale()
	if scale <= 0 {
		return 1
	}

	return scale
}

// VirtualScreen returns the bounds of the whole desktop across all displays
func (p *Provider) VirtualScreen() geometry.Rect {
	return p.info.VirtualScreen()
}

// PrimaryMonitorDeviceSize returns the primary display size in device pixels
func (p *Provider) PrimaryMonitorDeviceSize() geometry.Size {
	return p.info.PrimaryDeviceSize()
}

// PrimaryMonitorSize returns the primary display size in device-independent units
func (p *Provider) PrimaryMonitorSize() geometry.Size {
	dev := p.info.PrimaryDeviceSize()
	scale := p.DpiScale()

	return geometry.Size{
		Width:  int32(math.Round(float64(dev.Width) / scale)),
		Height: int32(math.Round(float64(dev.Height) / scale)),
	}
}

// PrimaryMonitorWorkArea returns the size of the system work area
func (p *Provider) PrimaryMonitorWorkArea() geometry.Size {
	return p.info.SystemWorkArea().Size()
}

// SameLayout reports whether two screen lists describe the same display
// configuration, ignoring enumeration order. Work areas are not compared:
// they change whenever a bar is registered.
func SameLayout(a, b []geometry.Screen) bool {
	if len(a) != len(b) {
		return false
	}

	key := func(s geometry.Screen) string {
		return fmt.Sprintf("%s|%v|%t", s.Device, s.Bounds, s.Primary)
	}

	ka := make([]string, len(a))
	kb := make([]string, len(b))

	for i := range a {
		ka[i] = key(a[i])
		kb[i] = key(b[i])
	}

	slices.Sort(ka)
	slices.Sort(kb)

	return slices.Equal(ka, kb)
}
