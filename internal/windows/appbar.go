//go:build windows

package windows

import (
	"fmt"
	"log/slog"
	"unsafe"

	winsys "golang.org/x/sys/windows"

	"github.com/Norgate-AV/dockbar/internal/geometry"
)

func shAppBarMessage(msg uint32, abd *APPBARDATA) uintptr {
	ret, _, _ := procSHAppBarMessage.Call(uintptr(msg), uintptr(unsafe.Pointer(abd)))
	return ret
}

// RegisterCallbackMessage registers a process-wide window message
func (c *Client) RegisterCallbackMessage(name string) (uint32, error) {
	p, err := winsys.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}

	ret, _, callErr := procRegisterWindowMessageW.Call(uintptr(unsafe.Pointer(p)))
	if ret == 0 {
		return 0, fmt.Errorf("RegisterWindowMessage %q failed: %w", name, callErr)
	}

	return uint32(ret), nil
}

// New sends ABM_NEW. The shell answers FALSE when the window is already
// registered or the request is refused.
func (c *Client) New(hwnd uintptr, callbackMsg uint32) error {
	abd := newAppBarData(hwnd)
	abd.UCallbackMessage = callbackMsg

	if shAppBarMessage(ABM_NEW, &abd) == 0 {
		return fmt.Errorf("ABM_NEW returned FALSE for 0x%X", hwnd)
	}

	return nil
}

// Remove sends ABM_REMOVE
func (c *Client) Remove(hwnd uintptr) error {
	abd := newAppBarData(hwnd)
	shAppBarMessage(ABM_REMOVE, &abd)

	return nil
}

// QueryPos sends ABM_QUERYPOS and returns the shell's adjusted rectangle
func (c *Client) QueryPos(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) (geometry.Rect, error) {
	return c.position(ABM_QUERYPOS, hwnd, edge, rc), nil
}

// SetPos sends ABM_SETPOS and returns the rectangle the shell reserved
func (c *Client) SetPos(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) (geometry.Rect, error) {
	return c.position(ABM_SETPOS, hwnd, edge, rc), nil
}

func (c *Client) position(msg uint32, hwnd uintptr, edge geometry.Edge, rc geometry.Rect) geometry.Rect {
	abd := newAppBarData(hwnd)
	abd.UEdge = uint32(edge)
	abd.Rc = toRECT(rc)

	shAppBarMessage(msg, &abd)

	out := fromRECT(abd.Rc)
	if out != rc {
		c.log.Trace("Shell adjusted app bar rectangle",
			slog.Uint64("hwnd", uint64(hwnd)),
			slog.Uint64("msg", uint64(msg)),
			slog.String("requested", rc.String()),
			slog.String("adjusted", out.String()),
		)
	}

	return out
}

// SetState sends ABM_SETSTATE with the auto-hide/always-on-top flags
func (c *Client) SetState(hwnd uintptr, state uint32) error {
	abd := newAppBarData(hwnd)
	abd.LParam = uintptr(state)

	shAppBarMessage(ABM_SETSTATE, &abd)

	return nil
}

// Activate sends ABM_ACTIVATE
func (c *Client) Activate(hwnd uintptr) error {
	abd := activateData(hwnd)
	shAppBarMessage(ABM_ACTIVATE, &abd)

	return nil
}

// activateData marks hwnd as activated (lParam TRUE)
func activateData(hwnd uintptr) APPBARDATA {
	abd := newAppBarData(hwnd)
	abd.LParam = 1

	return abd
}

// WindowPosChanged sends ABM_WINDOWPOSCHANGED
func (c *Client) WindowPosChanged(hwnd uintptr) error {
	abd := newAppBarData(hwnd)
	shAppBarMessage(ABM_WINDOWPOSCHANGED, &abd)

	return nil
}

// TaskbarState returns the OS taskbar's ABM_GETSTATE flags
func (c *Client) TaskbarState() uint32 {
	abd := newAppBarData(0)
	return uint32(shAppBarMessage(ABM_GETSTATE, &abd))
}

// TaskbarPosition returns the OS taskbar's edge and rectangle
func (c *Client) TaskbarPosition() (geometry.Edge, geometry.Rect, error) {
	abd := newAppBarData(0)

	if shAppBarMessage(ABM_GETTASKBARPOS, &abd) == 0 {
		return 0, geometry.Rect{}, fmt.Errorf("ABM_GETTASKBARPOS failed")
	}

	return geometry.Edge(abd.UEdge), fromRECT(abd.Rc), nil
}
