// Package windows implements the app bar engine's platform ports with the
// Win32 shell, window and display APIs. On other systems every entry point
// reports ErrUnsupported.
package windows

import "errors"

// ErrUnsupported is returned by the backend on non-Windows systems
var ErrUnsupported = errors.New("the Windows shell is not available on this platform")

// ConsoleCtrlHandler is a callback function for console control events
type ConsoleCtrlHandler func(ctrlType uint32) uintptr

// Console control event types
const (
	CTRL_C_EVENT        = 0
	CTRL_BREAK_EVENT    = 1
	CTRL_CLOSE_EVENT    = 2
	CTRL_LOGOFF_EVENT   = 5
	CTRL_SHUTDOWN_EVENT = 6
)

// GetCtrlTypeName returns a human-readable name for a control event type
func GetCtrlTypeName(ctrlType uint32) string {
	switch ctrlType {
	case CTRL_C_EVENT:
		return "CTRL_C"
	case CTRL_BREAK_EVENT:
		return "CTRL_BREAK"
	case CTRL_CLOSE_EVENT:
		return "CTRL_CLOSE"
	case CTRL_LOGOFF_EVENT:
		return "CTRL_LOGOFF"
	case CTRL_SHUTDOWN_EVENT:
		return "CTRL_SHUTDOWN"
	default:
		return "UNKNOWN"
	}
}
