package appbar

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Norgate-AV/dockbar/internal/display"
	"github.com/Norgate-AV/dockbar/internal/geometry"
	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
)

// DefaultMaxAttempts bounds the query/commit round trips of one negotiation
const DefaultMaxAttempts = 5

// Negotiator agrees a bar's rectangle with the shell and schedules the move
type Negotiator struct {
	shell     interfaces.AppBarShell
	windows   interfaces.WindowController
	provider  *display.Provider
	scheduler interfaces.Scheduler
	settings  func() Settings
	afterMove func(hwnd uintptr)
	log       logger.LoggerInterface

	mu       sync.Mutex
	inFlight map[uintptr]struct{}
}

// NewNegotiator creates a negotiator. afterMove, if set, runs on the
// scheduler right after each window move.
func NewNegotiator(
	shell interfaces.AppBarShell,
	windows interfaces.WindowController,
	provider *display.Provider,
	scheduler interfaces.Scheduler,
	settings func() Settings,
	afterMove func(hwnd uintptr),
	log logger.LoggerInterface,
) *Negotiator {
	return &Negotiator{
		shell:     shell,
		windows:   windows,
		provider:  provider,
		scheduler: scheduler,
		settings:  settings,
		afterMove: afterMove,
		log:       log,
		inFlight:  make(map[uintptr]struct{}),
	}
}

// SetPosition negotiates bar's rectangle and schedules the window move at
// idle priority. When the shell keeps returning a thinner rectangle than
// requested, the negotiation restarts up to MaxAttempts times and then
// settles for the last committed rectangle.
func (n *Negotiator) SetPosition(bar Bar) Result {
	if err := bar.validate(); err != nil {
		return fatal(err)
	}

	if !n.windows.IsWindow(bar.Hwnd) {
		return fatal(fmt.Errorf("%w: 0x%X", ErrStaleHandle, bar.Hwnd))
	}

	if !n.acquire(bar.Hwnd) {
		n.log.Debug("Negotiation already running", slog.Uint64("hwnd", uint64(bar.Hwnd)))
		return ignored(ErrNegotiationInFlight)
	}

	defer n.release(bar.Hwnd)

	settings := n.settings()

	maxAttempts := settings.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	scale := n.provider.DpiScale()
	want := geometry.Scale(bar.Thickness(), scale)
	menu := geometry.Scale(settings.MenuBarHeight, scale)

	var (
		res      Result
		shellErr error
	)

	for res.Attempts < maxAttempts {
		res.Attempts++

		rc, err := n.negotiate(bar, want, menu)
		if err != nil {
			shellErr = err
		}

		res.Rect = rc

		n.log.Trace("App bar thickness",
			slog.Uint64("hwnd", uint64(bar.Hwnd)),
			slog.String("edge", bar.Edge.String()),
			slog.Int("thickness", int(rc.Thickness(bar.Edge))),
			slog.Int("requested", int(want)),
		)

		if rc.Thickness(bar.Edge) >= want {
			break
		}
	}

	n.scheduleMove(bar.Hwnd, res.Rect)

	switch {
	case res.Rect.Thickness(bar.Edge) < want:
		res.Status = StatusIgnored
		res.Degraded = true
		res.Err = fmt.Errorf("%w after %d attempts: got %d of %d px",
			ErrNotConverged, res.Attempts, res.Rect.Thickness(bar.Edge), want)

		n.log.Warn("App bar position did not converge",
			slog.Uint64("hwnd", uint64(bar.Hwnd)),
			slog.String("rect", res.Rect.String()),
			slog.Int("attempts", res.Attempts),
		)
	case shellErr != nil:
		res.Status = StatusIgnored
		res.Err = shellErr

		n.log.Warn("Shell rejected app bar position",
			slog.Uint64("hwnd", uint64(bar.Hwnd)),
			slog.Any("error", shellErr),
		)
	default:
		res.Status = StatusHandled

		n.log.Debug("App bar positioned",
			slog.Uint64("hwnd", uint64(bar.Hwnd)),
			slog.String("rect", res.Rect.String()),
			slog.Int("attempts", res.Attempts),
		)
	}

	return res
}

// negotiate runs one query/adjust/commit round trip. Shell failures are
// returned but never abort the round trip: the last good rectangle is used.
func (n *Negotiator) negotiate(bar Bar, want, menu int32) (geometry.Rect, error) {
	ref := n.provider.Reference(bar.Screen)
	candidate := Candidate(ref, bar.Edge, want, menu, bar.Role)

	var shellErr error

	adjusted, err := n.shell.QueryPos(bar.Hwnd, bar.Edge, candidate)
	if err != nil {
		shellErr = fmt.Errorf("%w: ABM_QUERYPOS: %w", ErrShellRefused, err)
		adjusted = candidate
	}

	// The shell only moves the anchored side; put the thickness back
	adjusted = Clamp(adjusted, bar.Edge, want)

	committed, err := n.shell.SetPos(bar.Hwnd, bar.Edge, adjusted)
	if err != nil {
		shellErr = fmt.Errorf("%w: ABM_SETPOS: %w", ErrShellRefused, err)
		committed = adjusted
	}

	return committed, shellErr
}

func (n *Negotiator) scheduleMove(hwnd uintptr, rc geometry.Rect) {
	n.scheduler.Post(true, func() {
		if err := n.windows.Move(hwnd, rc); err != nil {
			n.log.Warn("Could not move app bar",
				slog.Uint64("hwnd", uint64(hwnd)),
				slog.String("rect", rc.String()),
				slog.Any("error", err),
			)
		}

		if n.afterMove != nil {
			n.afterMove(hwnd)
		}
	})
}

func (n *Negotiator) acquire(hwnd uintptr) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, busy := n.inFlight[hwnd]; busy {
		return false
	}

	n.inFlight[hwnd] = struct{}{}
	return true
}

func (n *Negotiator) release(hwnd uintptr) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.inFlight, hwnd)
}

// Candidate builds the rectangle first offered to the shell: the full
// reference span along edge, thickness pixels deep. Top bars other than the
// menu bar start below the menu bar.
func Candidate(ref geometry.Rect, edge geometry.Edge, thickness, menu int32, role Role) geometry.Rect {
	rc := ref

	switch edge {
	case geometry.EdgeLeft:
		rc.Right = rc.Left + thickness
	case geometry.EdgeRight:
		rc.Left = rc.Right - thickness
	case geometry.EdgeTop:
		if role != RoleMenuBar {
			rc.Top += menu
		}

		rc.Bottom = rc.Top + thickness
	case geometry.EdgeBottom:
		rc.Top = rc.Bottom - thickness
	}

	return rc
}

// Clamp restores the requested thickness measured from the anchored side
func Clamp(rc geometry.Rect, edge geometry.Edge, thickness int32) geometry.Rect {
	switch edge {
	case geometry.EdgeLeft:
		rc.Right = rc.Left + thickness
	case geometry.EdgeRight:
		rc.Left = rc.Right - thickness
	case geometry.EdgeTop:
		rc.Bottom = rc.Top + thickness
	case geometry.EdgeBottom:
		rc.Top = rc.Bottom - thickness
	}

	return rc
}
