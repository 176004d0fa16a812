// Package taskbar locates the OS shell's taskbars and keeps them, and the
// host's own overlapping windows, in order around registered app bars.
package taskbar

import (
	"iter"

	"github.com/Norgate-AV/dockbar/internal/interfaces"
)

const (
	// ClassPrimaryTaskbar is the window class of the OS taskbar. A host that
	// replaces the notification area registers a window of the same class,
	// so lookups must skip the host's own tray handle.
	ClassPrimaryTaskbar = "Shell_TrayWnd"

	// ClassSecondaryTaskbar is the class of taskbars on non-primary displays
	ClassSecondaryTaskbar = "Shell_SecondaryTrayWnd"
)

// Handles is a point-in-time snapshot of the shell's taskbar windows.
// Explorer recreates these windows when it restarts, so a snapshot must not
// be kept across operations.
type Handles struct {
	Primary     uintptr
	StartButton uintptr
	Secondary   []uintptr
}

// Locator finds the OS taskbar windows
type Locator struct {
	finder interfaces.WindowFinder
	tray   interfaces.Tray
}

// NewLocator creates a locator. tray may be nil when the host has no tray.
func NewLocator(finder interfaces.WindowFinder, tray interfaces.Tray) *Locator {
	return &Locator{finder: finder, tray: tray}
}

// PrimaryTaskbar returns the OS taskbar handle, or 0 if there is none
func (l *Locator) PrimaryTaskbar() uintptr {
	return first(Filter(l.finder.Windows(ClassPrimaryTaskbar), l.notOwned()))
}

// StartButton returns the start button handle, or 0
func (l *Locator) StartButton() uintptr {
	return l.finder.StartButton()
}

// SecondaryTaskbars yields every secondary taskbar, one per extra display
func (l *Locator) SecondaryTaskbars() iter.Seq[uintptr] {
	return Filter(l.finder.Windows(ClassSecondaryTaskbar), l.notOwned())
}

// Snapshot resolves all taskbar handles now
func (l *Locator) Snapshot() Handles {
	h := Handles{
		Primary:     l.PrimaryTaskbar(),
		StartButton: l.StartButton(),
	}

	for hwnd := range l.SecondaryTaskbars() {
		h.Secondary = append(h.Secondary, hwnd)
	}

	return h
}

func (l *Locator) notOwned() func(uintptr) bool {
	var own uintptr
	if l.tray != nil {
		own = l.tray.Handle()
	}

	return func(hwnd uintptr) bool {
		return hwnd != 0 && hwnd != own
	}
}

// Filter yields the handles of seq for which keep returns true
func Filter(seq iter.Seq[uintptr], keep func(uintptr) bool) iter.Seq[uintptr] {
	return func(yield func(uintptr) bool) {
		for hwnd := range seq {
			if keep(hwnd) && !yield(hwnd) {
				return
			}
		}
	}
}

func first(seq iter.Seq[uintptr]) uintptr {
	for hwnd := range seq {
		return hwnd
	}

	return 0
}
