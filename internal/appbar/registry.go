package appbar

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
)

// CallbackMessageName is the window message the shell uses to notify bars
const CallbackMessageName = "AppBarMessage"

// Registry is the set of windows registered with the shell, in registration
// order. Each handle appears at most once.
type Registry struct {
	shell interfaces.AppBarShell
	log   logger.LoggerInterface

	mu       sync.Mutex
	order    []uintptr
	bars     map[uintptr]Bar
	callback uint32
}

// NewRegistry creates an empty registry
func NewRegistry(shell interfaces.AppBarShell, log logger.LoggerInterface) *Registry {
	return &Registry{
		shell: shell,
		log:   log,
		bars:  make(map[uintptr]Bar),
	}
}

// CallbackMessage returns the process-wide callback message id, registering
// it with the system on first use
func (r *Registry) CallbackMessage() (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.callbackLocked()
}

func (r *Registry) callbackLocked() (uint32, error) {
	if r.callback != 0 {
		return r.callback, nil
	}

	id, err := r.shell.RegisterCallbackMessage(CallbackMessageName)
	if err != nil {
		return 0, fmt.Errorf("register %s: %w", CallbackMessageName, err)
	}

	r.callback = id
	return id, nil
}

// Add sends ABM_NEW for an untracked bar and starts tracking it. added is
// false when the handle was already tracked, in which case the stored
// request is replaced and no shell traffic occurs. A bar the shell refuses
// is tracked anyway and the refusal is returned as err.
func (r *Registry) Add(bar Bar) (callback uint32, added bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	callback, err = r.callbackLocked()
	if err != nil {
		return 0, false, err
	}

	if _, ok := r.bars[bar.Hwnd]; ok {
		r.bars[bar.Hwnd] = bar
		return callback, false, nil
	}

	if nerr := r.shell.New(bar.Hwnd, callback); nerr != nil {
		err = fmt.Errorf("%w: ABM_NEW: %w", ErrShellRefused, nerr)
	}

	r.order = append(r.order, bar.Hwnd)
	r.bars[bar.Hwnd] = bar

	r.log.Debug("Registered app bar",
		slog.Uint64("hwnd", uint64(bar.Hwnd)),
		slog.String("edge", bar.Edge.String()),
		slog.String("role", bar.Role.String()),
		slog.Bool("accepted", err == nil),
	)

	return callback, true, err
}

// Remove sends ABM_REMOVE for a tracked handle and stops tracking it.
// Untracked handles are ignored without contacting the shell.
func (r *Registry) Remove(hwnd uintptr) (removed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bars[hwnd]; !ok {
		return false, nil
	}

	if rerr := r.shell.Remove(hwnd); rerr != nil {
		err = fmt.Errorf("%w: ABM_REMOVE: %w", ErrShellRefused, rerr)
	}

	delete(r.bars, hwnd)
	r.order = slices.DeleteFunc(r.order, func(h uintptr) bool { return h == hwnd })

	r.log.Debug("Unregistered app bar", slog.Uint64("hwnd", uint64(hwnd)), slog.Bool("accepted", err == nil))

	return true, err
}

// Update replaces the stored request of a tracked bar
func (r *Registry) Update(bar Bar) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bars[bar.Hwnd]; !ok {
		return false
	}

	r.bars[bar.Hwnd] = bar
	return true
}

// Get returns the stored request for hwnd
func (r *Registry) Get(hwnd uintptr) (Bar, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bar, ok := r.bars[hwnd]
	return bar, ok
}

// Contains reports whether hwnd is registered
func (r *Registry) Contains(hwnd uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.bars[hwnd]
	return ok
}

// Bars returns the registered bars in registration order
func (r *Registry) Bars() []Bar {
	r.mu.Lock()
	defer r.mu.Unlock()

	bars := make([]Bar, 0, len(r.order))
	for _, hwnd := range r.order {
		bars = append(bars, r.bars[hwnd])
	}

	return bars
}

// Len returns the number of registered bars
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.order)
}
