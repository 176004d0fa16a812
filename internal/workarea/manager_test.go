package workarea_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/dockbar/internal/display"
	"github.com/Norgate-AV/dockbar/internal/geometry"
	"github.com/Norgate-AV/dockbar/internal/logger"
	"github.com/Norgate-AV/dockbar/internal/testutil"
	"github.com/Norgate-AV/dockbar/internal/workarea"
)

func newManager(shell *testutil.MockShell, layout workarea.Layout) *workarea.Manager {
	log := logger.NewNoOpLogger()
	return workarea.NewManager(shell, display.NewProvider(shell, log), func() workarea.Layout { return layout }, log)
}

func TestApply_RuleTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		layout workarea.Layout
		want   geometry.Rect
	}{
		{
			name:   "taskbar reserved, docked",
			layout: workarea.Layout{ReserveTaskbar: true, TaskbarMode: workarea.TaskbarDocked, MenuBarHeight: 25, TaskbarHeight: 30},
			want:   geometry.Rect{Left: 0, Top: 55, Right: 1920, Bottom: 1080},
		},
		{
			name:   "taskbar reserved, floating",
			layout: workarea.Layout{ReserveTaskbar: true, TaskbarMode: workarea.TaskbarFloating, MenuBarHeight: 25, TaskbarHeight: 40},
			want:   geometry.Rect{Left: 0, Top: 25, Right: 1920, Bottom: 1040},
		},
		{
			name:   "taskbar not reserved, docked",
			layout: workarea.Layout{ReserveTaskbar: false, TaskbarMode: workarea.TaskbarDocked, MenuBarHeight: 25, TaskbarHeight: 30},
			want:   geometry.Rect{Left: 0, Top: 25, Right: 1920, Bottom: 1080},
		},
		{
			name:   "taskbar not reserved, floating",
			layout: workarea.Layout{ReserveTaskbar: false, TaskbarMode: workarea.TaskbarFloating, MenuBarHeight: 25, TaskbarHeight: 40},
			want:   geometry.Rect{Left: 0, Top: 25, Right: 1920, Bottom: 1080},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			shell := testutil.NewMockShell()
			m := newManager(shell, tt.layout)

			rc, err := m.Apply()
			require.NoError(t, err)
			assert.Equal(t, tt.want, rc)

			installed, ok := shell.LastWorkArea()
			require.True(t, ok)
			assert.Equal(t, tt.want, installed)

			current, ok := m.Current()
			assert.True(t, ok)
			assert.Equal(t, tt.want, current)
		})
	}
}

func TestApply_SpansVirtualScreen(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell().WithScreens(testutil.DualScreens()...)
	m := newManager(shell, workarea.Layout{MenuBarHeight: 25})

	rc, err := m.Apply()
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{Left: 0, Top: 25, Right: 3200, Bottom: 1080}, rc)
}

func TestApply_ScalesHeights(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell().WithDpiScale(1.5)
	m := newManager(shell, workarea.Layout{
		ReserveTaskbar: true,
		TaskbarMode:    workarea.TaskbarFloating,
		MenuBarHeight:  24,
		TaskbarHeight:  40,
	})

	rc, err := m.Apply()
	require.NoError(t, err)
	assert.Equal(t, int32(36), rc.Top)
	assert.Equal(t, int32(1020), rc.Bottom)
}

func TestApply_TruncatesScaledHeights(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell().WithDpiScale(1.25)
	m := newManager(shell, workarea.Layout{
		ReserveTaskbar: true,
		TaskbarMode:    workarea.TaskbarFloating,
		MenuBarHeight:  23,
		TaskbarHeight:  29,
	})

	rc, err := m.Apply()
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{Left: 0, Top: 28, Right: 1920, Bottom: 1044}, rc)
}

func TestApply_ResetsDesktop(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	m := newManager(shell, workarea.Layout{MenuBarHeight: 25})
	desktop := testutil.NewMockDesktop()
	m.SetDesktop(desktop)

	_, err := m.Apply()
	require.NoError(t, err)
	assert.Equal(t, 1, desktop.ResetCalls)
}

func TestApply_StoreFailure(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	shell.SetWorkAreaErr = errors.New("SystemParametersInfo failed")

	m := newManager(shell, workarea.Layout{MenuBarHeight: 25})
	desktop := testutil.NewMockDesktop()
	m.SetDesktop(desktop)

	_, err := m.Apply()
	assert.ErrorIs(t, err, shell.SetWorkAreaErr)
	assert.Zero(t, desktop.ResetCalls)

	_, ok := m.Current()
	assert.False(t, ok)
}

func TestApply_ReadsLayoutEachTime(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	layout := workarea.Layout{MenuBarHeight: 25}
	log := logger.NewNoOpLogger()
	m := workarea.NewManager(shell, display.NewProvider(shell, log), func() workarea.Layout { return layout }, log)

	first, err := m.Apply()
	require.NoError(t, err)

	layout.MenuBarHeight = 30
	second, err := m.Apply()
	require.NoError(t, err)

	assert.Equal(t, int32(25), first.Top)
	assert.Equal(t, int32(30), second.Top)
}

func TestReset_FullVirtualScreen(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell().WithScreens(testutil.DualScreens()...)
	m := newManager(shell, workarea.Layout{ReserveTaskbar: true, MenuBarHeight: 25, TaskbarHeight: 30})

	_, err := m.Apply()
	require.NoError(t, err)

	rc, err := m.Reset()
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{Left: 0, Top: 0, Right: 3200, Bottom: 1080}, rc)

	installed, _ := shell.LastWorkArea()
	assert.Equal(t, rc, installed)
}

func TestParseTaskbarMode(t *testing.T) {
	t.Parallel()

	mode, err := workarea.ParseTaskbarMode("Floating")
	require.NoError(t, err)
	assert.Equal(t, workarea.TaskbarFloating, mode)

	mode, err = workarea.ParseTaskbarMode(" docked ")
	require.NoError(t, err)
	assert.Equal(t, workarea.TaskbarDocked, mode)

	mode, err = workarea.ParseTaskbarMode("")
	require.NoError(t, err)
	assert.Equal(t, workarea.DefaultTaskbarMode, mode)

	_, err = workarea.ParseTaskbarMode("sideways")
	assert.Error(t, err)
}
