// Package appbar registers windows as shell app bars and negotiates their
// reserved screen rectangles.
package appbar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Norgate-AV/dockbar/internal/geometry"
)

var (
	// ErrInvalidHandle is returned for a zero window handle
	ErrInvalidHandle = errors.New("invalid window handle")

	// ErrStaleHandle is returned when the handle no longer names a live window
	ErrStaleHandle = errors.New("window no longer exists")

	// ErrInvalidEdge is returned for an edge outside Left..Bottom
	ErrInvalidEdge = errors.New("invalid screen edge")

	// ErrInvalidThickness is returned when the size across the edge is not
	// positive
	ErrInvalidThickness = errors.New("invalid bar thickness")

	// ErrNotConverged is reported when the shell kept shrinking the bar
	// until the attempt limit ran out
	ErrNotConverged = errors.New("position negotiation did not converge")

	// ErrNegotiationInFlight is reported when a negotiation for the same
	// window is already running
	ErrNegotiationInFlight = errors.New("negotiation already in progress")

	// ErrShellRefused wraps a failed app bar protocol message
	ErrShellRefused = errors.New("shell refused app bar request")
)

// Shell notification codes delivered through the callback message
const (
	NotifyStateChange   uint32 = 0
	NotifyPosChanged    uint32 = 1
	NotifyFullScreenApp uint32 = 2
	NotifyWindowArrange uint32 = 3
)

// Role distinguishes the host's menu bar from its other bars. Only the menu
// bar sits flush with the top of the screen; every other top bar is pushed
// down below it.
type Role int

const (
	RoleOther Role = iota
	RoleMenuBar
	RoleTaskbar
)

func (r Role) String() string {
	switch r {
	case RoleMenuBar:
		return "menubar"
	case RoleTaskbar:
		return "taskbar"
	case RoleOther:
		return "other"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole converts "menubar", "taskbar" or "other" into a Role
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "menubar", "menu":
		return RoleMenuBar, nil
	case "taskbar":
		return RoleTaskbar, nil
	case "other", "":
		return RoleOther, nil
	default:
		return 0, fmt.Errorf("unknown role %q (expected menubar, taskbar or other)", s)
	}
}

// Bar is a window's app bar request. Width and Height are device-independent;
// only the one across the anchored edge is used. A nil Screen anchors the bar
// to the primary display using system-wide metrics.
type Bar struct {
	Hwnd   uintptr
	Edge   geometry.Edge
	Width  float64
	Height float64
	Screen *geometry.Screen
	Role   Role
}

// Thickness returns the requested size across the anchored edge
func (b Bar) Thickness() float64 {
	if b.Edge.Horizontal() {
		return b.Height
	}

	return b.Width
}

func (b Bar) validate() error {
	if b.Hwnd == 0 {
		return ErrInvalidHandle
	}

	if !b.Edge.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidEdge, uint32(b.Edge))
	}

	if t := b.Thickness(); !(t > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidThickness, t)
	}

	return nil
}

// Status classifies the outcome of an engine operation
type Status int

const (
	// StatusHandled means the shell accepted the request as asked
	StatusHandled Status = iota

	// StatusIgnored is a soft failure: the window may sit at an imperfect
	// position but the host keeps running
	StatusIgnored

	// StatusFatal means the request could not be acted on at all
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusHandled:
		return "handled"
	case StatusIgnored:
		return "ignored"
	case StatusFatal:
		return "fatal"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result reports what a negotiation or registration achieved
type Result struct {
	Status Status

	// Rect is the last rectangle committed with the shell
	Rect geometry.Rect

	// Attempts counts query/commit round trips
	Attempts int

	// Degraded is set when the committed rectangle is thinner than requested
	Degraded bool

	Err error
}

// OK reports whether the request was fully handled
func (r Result) OK() bool {
	return r.Status == StatusHandled
}

func fatal(err error) Result {
	return Result{Status: StatusFatal, Err: err}
}

func ignored(err error) Result {
	return Result{Status: StatusIgnored, Err: err}
}
