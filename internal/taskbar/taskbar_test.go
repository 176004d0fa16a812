package taskbar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
	"github.com/Norgate-AV/dockbar/internal/taskbar"
	"github.com/Norgate-AV/dockbar/internal/testutil"
)

const (
	ownTrayHwnd   = 0x1000
	osTaskbarHwnd = 0x2000
	startHwnd     = 0x3000
)

func newCoordinator(shell *testutil.MockShell, tray *testutil.MockTray, opts taskbar.Options) *taskbar.Coordinator {
	// Keep a nil tray a nil interface
	var tr interfaces.Tray
	if tray != nil {
		tr = tray
	}

	return taskbar.NewCoordinator(shell, shell, shell, tr, opts, logger.NewNoOpLogger())
}

func TestLocator_SkipsOwnTray(t *testing.T) {
	t.Parallel()

	// The host's tray is first in z-order and shares the taskbar class
	shell := testutil.NewMockShell().
		WithWindows(taskbar.ClassPrimaryTaskbar, ownTrayHwnd, osTaskbarHwnd)

	l := taskbar.NewLocator(shell, testutil.NewMockTray(ownTrayHwnd))

	assert.Equal(t, uintptr(osTaskbarHwnd), l.PrimaryTaskbar())
}

func TestLocator_StopsAtFirstMatch(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell().
		WithWindows(taskbar.ClassPrimaryTaskbar, osTaskbarHwnd, 0x2001, 0x2002)

	l := taskbar.NewLocator(shell, nil)

	assert.Equal(t, uintptr(osTaskbarHwnd), l.PrimaryTaskbar())
	assert.Equal(t, 1, shell.Enumerated[taskbar.ClassPrimaryTaskbar], "enumeration should be lazy")
}

func TestLocator_NoTaskbar(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell().WithWindows(taskbar.ClassPrimaryTaskbar, ownTrayHwnd)
	l := taskbar.NewLocator(shell, testutil.NewMockTray(ownTrayHwnd))

	assert.Zero(t, l.PrimaryTaskbar())
}

func TestLocator_Snapshot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		secondary []uintptr
	}{
		{name: "single monitor", secondary: nil},
		{name: "two monitors", secondary: []uintptr{0x4000}},
		{name: "four monitors", secondary: []uintptr{0x4000, 0x4001, 0x4002}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			shell := testutil.NewMockShell().
				WithWindows(taskbar.ClassPrimaryTaskbar, osTaskbarHwnd).
				WithWindows(taskbar.ClassSecondaryTaskbar, tt.secondary...).
				WithStartButton(startHwnd)

			h := taskbar.NewLocator(shell, nil).Snapshot()

			assert.Equal(t, uintptr(osTaskbarHwnd), h.Primary)
			assert.Equal(t, uintptr(startHwnd), h.StartButton)
			assert.Equal(t, tt.secondary, h.Secondary)
		})
	}
}

func TestFilter_EarlyBreak(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell().WithWindows("X", 1, 2, 3, 4)

	var got []uintptr
	for hwnd := range taskbar.Filter(shell.Windows("X"), func(h uintptr) bool { return h%2 == 0 }) {
		got = append(got, hwnd)
		break
	}

	assert.Equal(t, []uintptr{2}, got)
	assert.Equal(t, 2, shell.Enumerated["X"])
}

func TestSetVisibility_HidesEverything(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell().
		WithWindows(taskbar.ClassPrimaryTaskbar, ownTrayHwnd, osTaskbarHwnd).
		WithWindows(taskbar.ClassSecondaryTaskbar, 0x4000, 0x4001).
		WithStartButton(startHwnd)

	c := newCoordinator(shell, testutil.NewMockTray(ownTrayHwnd), taskbar.Options{})

	require.NoError(t, c.SetVisibility(true))

	assert.Equal(t, []testutil.VisibilityCall{
		{Hwnd: osTaskbarHwnd, Visible: false},
		{Hwnd: startHwnd, Visible: false},
	}, shell.Visibility)
	assert.Equal(t, []testutil.VisibilityCall{
		{Hwnd: 0x4000, Visible: false},
		{Hwnd: 0x4001, Visible: false},
	}, shell.AsyncShows)
}

func TestSetVisibility_ShowWithNoTaskbars(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	c := newCoordinator(shell, nil, taskbar.Options{})

	assert.NoError(t, c.SetVisibility(false))
	assert.Empty(t, shell.Visibility)
	assert.Empty(t, shell.AsyncShows)
}

func TestSetState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		autoHide bool
		want     uint32
	}{
		{name: "auto hide", autoHide: true, want: taskbar.StateAutoHide},
		{name: "on top", autoHide: false, want: taskbar.StateAlwaysOnTop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			shell := testutil.NewMockShell().
				WithWindows(taskbar.ClassPrimaryTaskbar, ownTrayHwnd, osTaskbarHwnd)
			c := newCoordinator(shell, testutil.NewMockTray(ownTrayHwnd), taskbar.Options{})

			require.NoError(t, c.SetState(tt.autoHide))

			calls := shell.CallsOf(testutil.OpSetState)
			require.Len(t, calls, 1)
			assert.Equal(t, uintptr(osTaskbarHwnd), calls[0].Hwnd)
			assert.Equal(t, tt.want, calls[0].State)
		})
	}
}

func TestSetState_NoTaskbar(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	c := newCoordinator(shell, nil, taskbar.Options{})

	assert.ErrorIs(t, c.SetState(true), taskbar.ErrTaskbarNotFound)
	assert.Empty(t, shell.CallsOf(testutil.OpSetState))
}

func TestActivate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		opts           taskbar.Options
		wantHidden     int
		wantTrayRaises int
	}{
		{name: "no features", opts: taskbar.Options{}},
		{name: "own taskbar", opts: taskbar.Options{TaskbarEnabled: true}, wantHidden: 2},
		{name: "own tray", opts: taskbar.Options{TrayEnabled: true}, wantTrayRaises: 1},
		{name: "both", opts: taskbar.Options{TaskbarEnabled: true, TrayEnabled: true}, wantHidden: 2, wantTrayRaises: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			shell := testutil.NewMockShell().
				WithWindows(taskbar.ClassSecondaryTaskbar, 0x4000, 0x4001)
			tray := testutil.NewMockTray(ownTrayHwnd)
			c := newCoordinator(shell, tray, tt.opts)

			require.NoError(t, c.Activate(0x9000))

			assert.Equal(t, []string{testutil.OpActivate}, shell.Ops(0x9000))
			assert.Len(t, shell.AsyncShows, tt.wantHidden)
			for _, call := range shell.AsyncShows {
				assert.False(t, call.Visible)
			}
			assert.Equal(t, tt.wantTrayRaises, tray.MakeActiveCalls)
		})
	}
}

func TestNotifyPositionChanged(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	c := newCoordinator(shell, nil, taskbar.Options{})

	require.NoError(t, c.NotifyPositionChanged(0x9000))
	assert.Equal(t, []string{testutil.OpWindowPosChanged}, shell.Ops(0x9000))
}

func TestAfterMove_SyncsCompanions(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell().
		WithWindows(taskbar.ClassPrimaryTaskbar, osTaskbarHwnd)
	tray := testutil.NewMockTray(ownTrayHwnd)
	c := newCoordinator(shell, tray, taskbar.Options{TaskbarEnabled: true, TrayEnabled: true})

	desktop := testutil.NewMockDesktop()
	mine := testutil.NewMockShadow(0x9000)
	other := testutil.NewMockShadow(0x9001)

	c.SetDesktop(desktop)
	c.AddShadow(mine)
	c.AddShadow(other)

	c.AfterMove(0x9000)

	assert.Equal(t, 1, mine.SetPositionCalls)
	assert.Zero(t, other.SetPositionCalls, "shadows of other bars stay put")
	assert.Equal(t, 1, desktop.ResetCalls)
	assert.Equal(t, 1, tray.MakeActiveCalls)
	assert.Equal(t, []testutil.VisibilityCall{{Hwnd: osTaskbarHwnd, Visible: false}}, shell.Visibility)
}

func TestAfterMove_FeaturesOff(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell().
		WithWindows(taskbar.ClassPrimaryTaskbar, osTaskbarHwnd)
	tray := testutil.NewMockTray(ownTrayHwnd)
	c := newCoordinator(shell, tray, taskbar.Options{})

	shadow := testutil.NewMockShadow(0x9000)
	c.AddShadow(shadow)
	c.RemoveShadow(shadow)

	c.AfterMove(0x9000)

	assert.Empty(t, shell.Visibility)
	assert.Zero(t, tray.MakeActiveCalls)
	assert.Zero(t, shadow.SetPositionCalls)
}
