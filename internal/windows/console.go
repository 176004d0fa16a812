//go:build windows

package windows

import (
	winsys "golang.org/x/sys/windows"
)

var globalHandler ConsoleCtrlHandler

// SetConsoleCtrlHandler sets up a Windows console control handler
// This catches Ctrl+C, window close, logoff, and shutdown events
func SetConsoleCtrlHandler(handler ConsoleCtrlHandler) error {
	globalHandler = handler

	ret, _, err := procSetConsoleCtrlHandler.Call(
		winsys.NewCallback(consoleCtrlHandlerCallback),
		1, // TRUE - add handler
	)

	if ret == 0 {
		return err
	}

	return nil
}

// consoleCtrlHandlerCallback is the actual callback that Windows calls
func consoleCtrlHandlerCallback(ctrlType uint32) uintptr {
	if globalHandler != nil {
		return globalHandler(ctrlType)
	}

	return 0 // FALSE - let default handler process it
}
