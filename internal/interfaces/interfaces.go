// Package interfaces defines core interfaces for dependency injection and testing.
package interfaces

import (
	"iter"

	"github.com/Norgate-AV/dockbar/internal/geometry"
)

// AppBarShell speaks the shell's app bar protocol
type AppBarShell interface {
	// RegisterCallbackMessage returns the process-wide message id the shell
	// uses to notify registered bars.
	RegisterCallbackMessage(name string) (uint32, error)
	New(hwnd uintptr, callbackMsg uint32) error
	Remove(hwnd uintptr) error
	// QueryPos returns the rectangle as adjusted by the shell
	QueryPos(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) (geometry.Rect, error)
	// SetPos commits the rectangle and returns what the shell settled on
	SetPos(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) (geometry.Rect, error)
	SetState(hwnd uintptr, state uint32) error
	Activate(hwnd uintptr) error
	WindowPosChanged(hwnd uintptr) error
}

// WindowFinder locates top-level windows by class
type WindowFinder interface {
	// Windows yields every top-level window of the class, in z-order.
	// Handles are resolved lazily as the sequence is consumed.
	Windows(class string) iter.Seq[uintptr]
	StartButton() uintptr
}

// WindowController moves and shows windows
type WindowController interface {
	Move(hwnd uintptr, rc geometry.Rect) error
	SetVisible(hwnd uintptr, visible bool) error
	ShowAsync(hwnd uintptr, visible bool) error
	IsWindow(hwnd uintptr) bool
}

// DisplayInfo reports display geometry
type DisplayInfo interface {
	Screens() ([]geometry.Screen, error)
	VirtualScreen() geometry.Rect
	PrimaryDeviceSize() geometry.Size
	SystemWorkArea() geometry.Rect
	DpiScale() float64
}

// WorkAreaStore reads and installs the global work area
type WorkAreaStore interface {
	WorkArea() (geometry.Rect, error)
	SetWorkArea(rc geometry.Rect) error
}

// Platform bundles every port a backend must provide
type Platform interface {
	AppBarShell
	WindowFinder
	WindowController
	DisplayInfo
	WorkAreaStore
}

// Scheduler defers work onto the UI loop
type Scheduler interface {
	Post(idle bool, fn func())
}

// Tray is the system tray window owned by the host
type Tray interface {
	Handle() uintptr
	MakeActive()
}

// Desktop is the host's full-screen desktop background window
type Desktop interface {
	ResetPosition()
}

// Shadow is a decoration window that follows an app bar
type Shadow interface {
	Owner() uintptr
	SetPosition()
}
