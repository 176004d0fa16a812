package appbar_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/dockbar/internal/appbar"
	"github.com/Norgate-AV/dockbar/internal/geometry"
	"github.com/Norgate-AV/dockbar/internal/logger"
	"github.com/Norgate-AV/dockbar/internal/testutil"
)

func TestRegistry_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	r := appbar.NewRegistry(shell, logger.NewNoOpLogger())

	bar := appbar.Bar{Hwnd: 0x9000, Edge: geometry.EdgeTop, Height: 30}

	cb, added, err := r.Add(bar)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, shell.CallbackMessage, cb)

	bar.Height = 40
	cb, added, err = r.Add(bar)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, shell.CallbackMessage, cb)

	assert.Equal(t, []string{testutil.OpNew}, shell.Ops(0x9000))
	assert.Equal(t, 1, r.Len())

	stored, ok := r.Get(0x9000)
	require.True(t, ok)
	assert.Equal(t, 40.0, stored.Height)

	calls := shell.CallsOf(testutil.OpNew)
	require.Len(t, calls, 1)
	assert.Equal(t, shell.CallbackMessage, calls[0].State, "ABM_NEW should carry the callback message")
}

func TestRegistry_RemoveUntracked(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	r := appbar.NewRegistry(shell, logger.NewNoOpLogger())

	removed, err := r.Remove(0x9000)

	assert.False(t, removed)
	assert.NoError(t, err)
	assert.Empty(t, shell.Calls)
}

func TestRegistry_RefusedBarIsTracked(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell().WithNewError(errors.New("access denied"))
	r := appbar.NewRegistry(shell, logger.NewNoOpLogger())

	_, added, err := r.Add(appbar.Bar{Hwnd: 0x9000})

	assert.True(t, added)
	assert.ErrorIs(t, err, appbar.ErrShellRefused)
	assert.ErrorIs(t, err, shell.NewErr)
	assert.True(t, r.Contains(0x9000))
}

func TestRegistry_CallbackMessageFailure(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	shell.CallbackMessageErr = errors.New("RegisterWindowMessage failed")
	r := appbar.NewRegistry(shell, logger.NewNoOpLogger())

	_, added, err := r.Add(appbar.Bar{Hwnd: 0x9000})

	assert.False(t, added)
	assert.ErrorIs(t, err, shell.CallbackMessageErr)
	assert.False(t, r.Contains(0x9000))
	assert.Empty(t, shell.Calls)
}

func TestRegistry_BarsInRegistrationOrder(t *testing.T) {
	t.Parallel()

	shell := testutil.NewMockShell()
	r := appbar.NewRegistry(shell, logger.NewNoOpLogger())

	for _, hwnd := range []uintptr{0x9003, 0x9001, 0x9002} {
		_, _, err := r.Add(appbar.Bar{Hwnd: hwnd})
		require.NoError(t, err)
	}

	_, err := r.Remove(0x9001)
	require.NoError(t, err)

	var got []uintptr
	for _, b := range r.Bars() {
		got = append(got, b.Hwnd)
	}

	assert.Equal(t, []uintptr{0x9003, 0x9002}, got)
}

func TestRegistry_UpdateUntracked(t *testing.T) {
	t.Parallel()

	r := appbar.NewRegistry(testutil.NewMockShell(), logger.NewNoOpLogger())

	assert.False(t, r.Update(appbar.Bar{Hwnd: 0x9000}))
	assert.Zero(t, r.Len())
}
