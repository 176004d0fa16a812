// Package timeouts defines timing constants for the app bar engine and host.
package timeouts

import "time"

const (
	// Dispatcher

	// IdleSettleDelay is how long the dispatcher waits with an empty normal
	// queue before running idle jobs. Shell notifications tend to arrive in
	// bursts after ABM_SETPOS, and moving the window in the middle of a burst
	// makes the OS taskbar pop back up.
	IdleSettleDelay = 50 * time.Millisecond

	// Display watching

	// DisplayPollingInterval is the interval at which the display watcher
	// compares the attached screens against the last known configuration.
	DisplayPollingInterval = 2 * time.Second

	// DisplaySettleDelay gives the shell time to finish rearranging its own
	// taskbars after a display change before bars are re-negotiated.
	DisplaySettleDelay = 500 * time.Millisecond

	// Shutdown

	// DrainTimeout bounds how long shutdown waits for pending moves.
	DrainTimeout = 2 * time.Second
)
