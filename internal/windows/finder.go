//go:build windows

package windows

import (
	"iter"
	"log/slog"
	"unsafe"

	"github.com/lxn/win"
	winsys "golang.org/x/sys/windows"
)

// Windows yields the top-level windows of class in z-order, calling
// FindWindowEx once per handle consumed
func (c *Client) Windows(class string) iter.Seq[uintptr] {
	return func(yield func(uintptr) bool) {
		cls, err := winsys.UTF16PtrFromString(class)
		if err != nil {
			c.log.Debug("Invalid window class", slog.String("class", class), slog.Any("error", err))
			return
		}

		var hwnd uintptr

		for {
			hwnd, _, _ = procFindWindowExW.Call(0, hwnd, uintptr(unsafe.Pointer(cls)), 0)
			if hwnd == 0 || !yield(hwnd) {
				return
			}
		}
	}
}

// StartButton returns the start button window, or 0 on shells without one
func (c *Client) StartButton() uintptr {
	hwnd, _, _ := procFindWindowExW.Call(0, 0, startButtonAtom, 0)
	return hwnd
}

// FindWindow returns the first top-level window matching class and title.
// An empty string matches any value.
func (c *Client) FindWindow(class, title string) uintptr {
	var clsPtr, titlePtr *uint16

	if class != "" {
		clsPtr, _ = winsys.UTF16PtrFromString(class)
	}

	if title != "" {
		titlePtr, _ = winsys.UTF16PtrFromString(title)
	}

	return uintptr(win.FindWindow(clsPtr, titlePtr))
}

// GetWindowText retrieves the text of a window
func GetWindowText(hwnd uintptr) string {
	buf := make([]uint16, 256)

	ret, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if ret == 0 {
		return ""
	}

	return winsys.UTF16ToString(buf)
}

// GetClassName retrieves the class name of a window
func GetClassName(hwnd uintptr) string {
	buf := make([]uint16, 256)

	ret, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if ret == 0 {
		return ""
	}

	return winsys.UTF16ToString(buf)
}
