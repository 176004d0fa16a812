//go:build windows

package windows

import (
	"unsafe"

	"github.com/lxn/win"

	"github.com/Norgate-AV/dockbar/internal/geometry"
)

// APPBARDATA for SHAppBarMessage
type APPBARDATA struct {
	CbSize           uint32
	HWnd             win.HWND
	UCallbackMessage uint32
	UEdge            uint32
	Rc               win.RECT
	LParam           uintptr
}

func newAppBarData(hwnd uintptr) APPBARDATA {
	abd := APPBARDATA{HWnd: win.HWND(hwnd)}
	abd.CbSize = uint32(unsafe.Sizeof(abd))

	return abd
}

// MONITORINFOEX adds the device name to MONITORINFO
type MONITORINFOEX struct {
	win.MONITORINFO
	SzDevice [CCHDEVICENAME]uint16
}

func toRECT(rc geometry.Rect) win.RECT {
	return win.RECT{Left: rc.Left, Top: rc.Top, Right: rc.Right, Bottom: rc.Bottom}
}

func fromRECT(rc win.RECT) geometry.Rect {
	return geometry.Rect{Left: rc.Left, Top: rc.Top, Right: rc.Right, Bottom: rc.Bottom}
}
