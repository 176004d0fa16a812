package windows_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Norgate-AV/dockbar/internal/windows"
)

func TestGetCtrlTypeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ctrlType uint32
		want     string
	}{
		{windows.CTRL_C_EVENT, "CTRL_C"},
		{windows.CTRL_BREAK_EVENT, "CTRL_BREAK"},
		{windows.CTRL_CLOSE_EVENT, "CTRL_CLOSE"},
		{windows.CTRL_LOGOFF_EVENT, "CTRL_LOGOFF"},
		{windows.CTRL_SHUTDOWN_EVENT, "CTRL_SHUTDOWN"},
		{99, "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, windows.GetCtrlTypeName(tt.ctrlType))
		})
	}
}
