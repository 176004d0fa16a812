// Package geometry provides the rectangle, size and edge types shared by the
// app bar engine and its platform backends.
package geometry

import (
	"fmt"
	"strings"
)

// Edge is the screen side an app bar is anchored to.
// The values match the shell's ABE_* constants.
type Edge uint32

const (
	EdgeLeft   Edge = 0
	EdgeTop    Edge = 1
	EdgeRight  Edge = 2
	EdgeBottom Edge = 3
)

// String returns the lower-case edge name
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	default:
		return fmt.Sprintf("edge(%d)", uint32(e))
	}
}

// Horizontal reports whether the edge spans the screen width (top or bottom).
func (e Edge) Horizontal() bool {
	return e == EdgeTop || e == EdgeBottom
}

// Valid reports whether e is one of the four known edges
func (e Edge) Valid() bool {
	return e <= EdgeBottom
}

// ParseEdge converts a name such as "top" into an Edge.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return EdgeLeft, nil
	case "top":
		return EdgeTop, nil
	case "right":
		return EdgeRight, nil
	case "bottom":
		return EdgeBottom, nil
	default:
		return 0, fmt.Errorf("unknown edge %q (expected left, top, right or bottom)", s)
	}
}

// Rect is a rectangle in device pixels. Right and Bottom are exclusive.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Width returns Right-Left
func (r Rect) Width() int32 { return r.Right - r.Left }

// Height returns Bottom-Top
func (r Rect) Height() int32 { return r.Bottom - r.Top }

// Size returns the rectangle's dimensions
func (r Rect) Size() Size { return Size{Width: r.Width(), Height: r.Height()} }

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Thickness returns the dimension perpendicular to edge: the height for
// top/bottom bars and the width for left/right bars.
func (r Rect) Thickness(edge Edge) int32 {
	if edge.Horizontal() {
		return r.Height()
	}

	return r.Width()
}

// Contains reports whether the point lies inside the rectangle
func (r Rect) Contains(x, y int32) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Union returns the smallest rectangle containing both r and o.
// An empty operand is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}

	if o.Empty() {
		return r
	}

	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// Size is a width/height pair in device pixels
type Size struct {
	Width  int32
	Height int32
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Scale converts a device-independent length into device pixels, dropping
// any fractional pixel. A non-positive scale is treated as 1.
func Scale(v float64, scale float64) int32 {
	if scale <= 0 {
		scale = 1
	}

	return int32(v * scale)
}

// Screen describes one attached display
type Screen struct {
	Handle   uintptr
	Device   string
	Bounds   Rect
	WorkArea Rect
	Primary  bool
}
