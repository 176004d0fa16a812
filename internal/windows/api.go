//go:build windows

package windows

import (
	winsys "golang.org/x/sys/windows"
)

// App bar messages for SHAppBarMessage
const (
	ABM_NEW              = 0x00000000
	ABM_REMOVE           = 0x00000001
	ABM_QUERYPOS         = 0x00000002
	ABM_SETPOS           = 0x00000003
	ABM_GETSTATE         = 0x00000004
	ABM_GETTASKBARPOS    = 0x00000005
	ABM_ACTIVATE         = 0x00000006
	ABM_GETAUTOHIDEBAR   = 0x00000007
	ABM_SETAUTOHIDEBAR   = 0x00000008
	ABM_WINDOWPOSCHANGED = 0x00000009
	ABM_SETSTATE         = 0x0000000A
)

const (
	SPI_GETWORKAREA    = 0x0030
	SPI_SETWORKAREA    = 0x002F
	SPIF_UPDATEINIFILE = 0x0001
	SPIF_SENDCHANGE    = 0x0002

	SW_HIDE           = 0
	SW_SHOWNOACTIVATE = 4

	SM_CXSCREEN        = 0
	SM_CYSCREEN        = 1
	SM_XVIRTUALSCREEN  = 76
	SM_YVIRTUALSCREEN  = 77
	SM_CXVIRTUALSCREEN = 78
	SM_CYVIRTUALSCREEN = 79

	CCHDEVICENAME = 32

	// startButtonAtom is the class atom of the taskbar's start button
	startButtonAtom = 0xC017

	defaultDpi = 96
)

var (
	shell32             = winsys.NewLazySystemDLL("shell32.dll")
	procSHAppBarMessage = shell32.NewProc("SHAppBarMessage")

	user32                     = winsys.NewLazySystemDLL("user32.dll")
	procFindWindowExW          = user32.NewProc("FindWindowExW")
	procRegisterWindowMessageW = user32.NewProc("RegisterWindowMessageW")
	procShowWindowAsync        = user32.NewProc("ShowWindowAsync")
	procEnumDisplayMonitors    = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW        = user32.NewProc("GetMonitorInfoW")
	procIsWindow               = user32.NewProc("IsWindow")
	procGetWindowTextW         = user32.NewProc("GetWindowTextW")
	procGetClassNameW          = user32.NewProc("GetClassNameW")

	kernel32                  = winsys.NewLazySystemDLL("kernel32.dll")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)
