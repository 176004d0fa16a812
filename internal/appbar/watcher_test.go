package appbar_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/dockbar/internal/appbar"
	"github.com/Norgate-AV/dockbar/internal/logger"
	"github.com/Norgate-AV/dockbar/internal/testutil"
)

func TestWatcher_NoChange(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	e, d := newEngine(shell, testSettings())
	w := appbar.NewWatcher(e, d, logger.NewNoOpLogger())

	assert.False(t, w.Changed())
	assert.False(t, w.Poll())
	assert.Zero(t, d.Pending())
}

func TestWatcher_WorkAreaChangeIsNotALayoutChange(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	e, d := newEngine(shell, testSettings())
	w := appbar.NewWatcher(e, d, logger.NewNoOpLogger())

	screens, err := shell.Screens()
	require.NoError(t, err)
	screens[0].WorkArea.Top = 55
	shell.SetScreens(screens...)

	assert.False(t, w.Poll())
}

func TestWatcher_HotPlugRenegotiates(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	e, d := newEngine(shell, testSettings())
	w := appbar.NewWatcher(e, d, logger.NewNoOpLogger())

	_, res := e.Register(bottomBar(bottomHwnd, 40))
	require.True(t, res.OK())
	d.RunPending()

	shell.SetScreens(testutil.DualScreens()...)

	assert.True(t, w.Changed())
	assert.True(t, w.Poll())
	assert.Equal(t, 1, d.Pending())
	assert.Len(t, shell.CallsOf(testutil.OpSetPos), 1, "negotiation runs on the scheduler")

	d.RunPending()

	assert.Len(t, shell.CallsOf(testutil.OpSetPos), 2)
	assert.False(t, w.Poll(), "new layout becomes the baseline")
}

func TestWatcher_EnumerationFailureKeepsBaseline(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	e, d := newEngine(shell, testSettings())
	w := appbar.NewWatcher(e, d, logger.NewNoOpLogger())

	shell.ScreensErr = errors.New("EnumDisplayMonitors failed")

	assert.False(t, w.Changed())
	assert.False(t, w.Poll())
	assert.Zero(t, d.Pending())
}

func TestWatcher_Start(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	e, d := newEngine(shell, testSettings())
	w := appbar.NewWatcher(e, d, logger.NewNoOpLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w.Start(ctx, 5*time.Millisecond, time.Millisecond)

	shell.SetScreens(testutil.DualScreens()...)

	assert.Eventually(t, func() bool {
		return d.Pending() == 1
	}, time.Second, 5*time.Millisecond)
}
