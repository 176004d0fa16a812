//go:build windows

package windows

import (
	"fmt"

	"github.com/lxn/win"

	"github.com/Norgate-AV/dockbar/internal/geometry"
)

// Move places hwnd at rc and repaints it
func (c *Client) Move(hwnd uintptr, rc geometry.Rect) error {
	if !win.MoveWindow(win.HWND(hwnd), rc.Left, rc.Top, rc.Width(), rc.Height(), true) {
		return fmt.Errorf("MoveWindow 0x%X to %s failed", hwnd, rc)
	}

	return nil
}

// SetVisible shows or hides hwnd synchronously without moving, resizing or
// activating it
func (c *Client) SetVisible(hwnd uintptr, visible bool) error {
	flags := uint32(win.SWP_NOMOVE | win.SWP_NOSIZE | win.SWP_NOZORDER | win.SWP_NOACTIVATE)
	if visible {
		flags |= win.SWP_SHOWWINDOW
	} else {
		flags |= win.SWP_HIDEWINDOW
	}

	if !win.SetWindowPos(win.HWND(hwnd), 0, 0, 0, 0, 0, flags) {
		return fmt.Errorf("SetWindowPos 0x%X failed", hwnd)
	}

	return nil
}

// ShowAsync posts a show or hide to hwnd's owning thread. The return value
// of ShowWindowAsync only reports the previous visibility.
func (c *Client) ShowAsync(hwnd uintptr, visible bool) error {
	cmd := uintptr(SW_HIDE)
	if visible {
		cmd = SW_SHOWNOACTIVATE
	}

	procShowWindowAsync.Call(hwnd, cmd)

	return nil
}

// IsWindow checks if a window handle is valid
func (c *Client) IsWindow(hwnd uintptr) bool {
	ret, _, _ := procIsWindow.Call(hwnd)
	return ret != 0
}
