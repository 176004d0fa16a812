//go:build windows

package windows

import (
	"fmt"
	"unsafe"

	"github.com/lxn/win"

	"github.com/Norgate-AV/dockbar/internal/geometry"
)

// WorkArea reads the system work area
func (c *Client) WorkArea() (geometry.Rect, error) {
	var rc win.RECT

	if !win.SystemParametersInfo(SPI_GETWORKAREA, 0, unsafe.Pointer(&rc), 0) {
		return geometry.Rect{}, fmt.Errorf("SystemParametersInfo(SPI_GETWORKAREA) failed")
	}

	return fromRECT(rc), nil
}

// SetWorkArea installs rc as the system work area, persisting it and
// broadcasting WM_SETTINGCHANGE to every top-level window
func (c *Client) SetWorkArea(rc geometry.Rect) error {
	r := toRECT(rc)

	if !win.SystemParametersInfo(SPI_SETWORKAREA, 0, unsafe.Pointer(&r), SPIF_UPDATEINIFILE|SPIF_SENDCHANGE) {
		return fmt.Errorf("SystemParametersInfo(SPI_SETWORKAREA) failed")
	}

	return nil
}
