//go:build !windows

package windows

import (
	"iter"

	"github.com/Norgate-AV/dockbar/internal/geometry"
	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
)

var _ interfaces.Platform = (*Client)(nil)

// Client is a placeholder backend that fails every shell call
type Client struct {
	log logger.LoggerInterface
}

// NewClient creates a client whose shell calls all fail
func NewClient(log logger.LoggerInterface) *Client {
	return &Client{log: log}
}

// NewPlatform reports that no platform backend exists here
func NewPlatform(log logger.LoggerInterface) (*Client, error) {
	return nil, ErrUnsupported
}

func SetConsoleCtrlHandler(handler ConsoleCtrlHandler) error {
	return ErrUnsupported
}

func GetWindowText(hwnd uintptr) string { return "" }
func GetClassName(hwnd uintptr) string  { return "" }

func (c *Client) RegisterCallbackMessage(name string) (uint32, error) { return 0, ErrUnsupported }
func (c *Client) New(hwnd uintptr, callbackMsg uint32) error          { return ErrUnsupported }
func (c *Client) Remove(hwnd uintptr) error                           { return ErrUnsupported }
func (c *Client) SetState(hwnd uintptr, state uint32) error           { return ErrUnsupported }
func (c *Client) Activate(hwnd uintptr) error                         { return ErrUnsupported }
func (c *Client) WindowPosChanged(hwnd uintptr) error                 { return ErrUnsupported }

func (c *Client) QueryPos(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) (geometry.Rect, error) {
	return rc, ErrUnsupported
}

func (c *Client) SetPos(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) (geometry.Rect, error) {
	return rc, ErrUnsupported
}

func (c *Client) TaskbarState() uint32 { return 0 }

func (c *Client) TaskbarPosition() (geometry.Edge, geometry.Rect, error) {
	return 0, geometry.Rect{}, ErrUnsupported
}

func (c *Client) Windows(class string) iter.Seq[uintptr] {
	return func(yield func(uintptr) bool) {}
}

func (c *Client) StartButton() uintptr                   { return 0 }
func (c *Client) FindWindow(class, title string) uintptr { return 0 }

func (c *Client) Move(hwnd uintptr, rc geometry.Rect) error   { return ErrUnsupported }
func (c *Client) SetVisible(hwnd uintptr, visible bool) error { return ErrUnsupported }
func (c *Client) ShowAsync(hwnd uintptr, visible bool) error  { return ErrUnsupported }
func (c *Client) IsWindow(hwnd uintptr) bool                  { return false }

func (c *Client) Screens() ([]geometry.Screen, error) { return nil, ErrUnsupported }
func (c *Client) VirtualScreen() geometry.Rect        { return geometry.Rect{} }
func (c *Client) PrimaryDeviceSize() geometry.Size    { return geometry.Size{} }
func (c *Client) SystemWorkArea() geometry.Rect       { return geometry.Rect{} }
func (c *Client) DpiScale() float64                   { return 1 }

func (c *Client) WorkArea() (geometry.Rect, error)   { return geometry.Rect{}, ErrUnsupported }
func (c *Client) SetWorkArea(rc geometry.Rect) error { return ErrUnsupported }
