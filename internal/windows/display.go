//go:build windows

package windows

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/lxn/win"
	winsys "golang.org/x/sys/windows"

	"github.com/Norgate-AV/dockbar/internal/geometry"
)

// EnumDisplayMonitors reports through a callback. The runtime never frees
// callbacks and caps how many a process may create, so one is shared and
// enumerations are serialized on enumMu.
var (
	enumOnce     sync.Once
	enumCallback uintptr

	enumMu      sync.Mutex
	enumScreens []geometry.Screen
)

func monitorEnumCallback() uintptr {
	enumOnce.Do(func() {
		enumCallback = winsys.NewCallback(monitorEnumProc)
	})

	return enumCallback
}

// monitorEnumProc runs on the enumerating goroutine with enumMu held
func monitorEnumProc(hMonitor win.HMONITOR, hdc win.HDC, rect *win.RECT, lparam uintptr) uintptr {
	var info MONITORINFOEX
	info.CbSize = uint32(unsafe.Sizeof(info))

	ret, _, _ := procGetMonitorInfoW.Call(uintptr(hMonitor), uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return 1
	}

	enumScreens = append(enumScreens, geometry.Screen{
		Handle:   uintptr(hMonitor),
		Device:   winsys.UTF16ToString(info.SzDevice[:]),
		Bounds:   fromRECT(info.RcMonitor),
		WorkArea: fromRECT(info.RcWork),
		Primary:  info.DwFlags&win.MONITORINFOF_PRIMARY != 0,
	})

	return 1
}

// Screens enumerates the attached displays
func (c *Client) Screens() ([]geometry.Screen, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumScreens = nil

	ret, _, err := procEnumDisplayMonitors.Call(0, 0, monitorEnumCallback(), 0)

	screens := enumScreens
	enumScreens = nil

	if ret == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors failed: %w", err)
	}

	if len(screens) == 0 {
		return nil, fmt.Errorf("no monitors detected")
	}

	return screens, nil
}

// VirtualScreen returns the bounding rectangle of all displays
func (c *Client) VirtualScreen() geometry.Rect {
	x := win.GetSystemMetrics(SM_XVIRTUALSCREEN)
	y := win.GetSystemMetrics(SM_YVIRTUALSCREEN)

	return geometry.Rect{
		Left:   x,
		Top:    y,
		Right:  x + win.GetSystemMetrics(SM_CXVIRTUALSCREEN),
		Bottom: y + win.GetSystemMetrics(SM_CYVIRTUALSCREEN),
	}
}

// PrimaryDeviceSize returns the primary display size in pixels
func (c *Client) PrimaryDeviceSize() geometry.Size {
	return geometry.Size{
		Width:  win.GetSystemMetrics(SM_CXSCREEN),
		Height: win.GetSystemMetrics(SM_CYSCREEN),
	}
}

// SystemWorkArea returns the current work area, or the primary display
// bounds if it cannot be read
func (c *Client) SystemWorkArea() geometry.Rect {
	rc, err := c.WorkArea()
	if err != nil {
		size := c.PrimaryDeviceSize()
		return geometry.Rect{Right: size.Width, Bottom: size.Height}
	}

	return rc
}

// DpiScale returns the system DPI relative to 96
func (c *Client) DpiScale() float64 {
	hdc := win.GetDC(0)
	if hdc == 0 {
		return 1
	}

	defer win.ReleaseDC(0, hdc)

	dpi := win.GetDeviceCaps(hdc, win.LOGPIXELSY)
	if dpi <= 0 {
		return 1
	}

	return float64(dpi) / defaultDpi
}
