package testutil

import (
	"iter"
	"sync"

	"github.com/Norgate-AV/dockbar/internal/geometry"
)

// Shell protocol operations recorded by MockShell
const (
	OpNew              = "new"
	OpRemove           = "remove"
	OpQueryPos         = "querypos"
	OpSetPos           = "setpos"
	OpSetState         = "setstate"
	OpActivate         = "activate"
	OpWindowPosChanged = "windowposchanged"
)

// ShellCall is one app bar protocol message sent to the mock
type ShellCall struct {
	Op    string
	Hwnd  uintptr
	Edge  geometry.Edge
	Rect  geometry.Rect
	State uint32
}

// MoveCall records a window move
type MoveCall struct {
	Hwnd uintptr
	Rect geometry.Rect
}

// VisibilityCall records a show/hide request
type VisibilityCall struct {
	Hwnd    uintptr
	Visible bool
}

type reservation struct {
	edge geometry.Edge
	rect geometry.Rect
}

// MockShell implements interfaces.Platform in memory. By default it models a
// single 1920x1080 display at 96 DPI and a shell that accepts every
// rectangle unchanged.
type MockShell struct {
	mu sync.Mutex

	CallbackMessage    uint32
	CallbackMessageErr error
	NewErr             error
	QueryPosErr        error
	QueryPosFunc       func(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) geometry.Rect
	SetPosFunc         func(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) geometry.Rect
	Calls              []ShellCall

	ScreenList  []geometry.Screen
	ScreensErr  error
	Virtual     geometry.Rect
	PrimarySize geometry.Size
	SysWorkArea geometry.Rect
	Scale       float64

	InstalledWorkAreas []geometry.Rect
	SetWorkAreaErr     error

	WindowsByClass  map[string][]uintptr
	StartButtonHwnd uintptr
	Enumerated      map[string]int

	Moves       []MoveCall
	Visibility  []VisibilityCall
	AsyncShows  []VisibilityCall
	DeadWindows map[uintptr]bool

	reservations map[uintptr]reservation
}

// NewMockShell creates a mock shell with a single primary 1920x1080 display
func NewMockShell() *MockShell {
	full := geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}

	return &MockShell{
		CallbackMessage: 0xC0DE,
		ScreenList: []geometry.Screen{
			{Handle: 0x10001, Device: `\\.\DISPLAY1`, Bounds: full, WorkArea: full, Primary: true},
		},
		Virtual:        full,
		PrimarySize:    geometry.Size{Width: 1920, Height: 1080},
		SysWorkArea:    full,
		Scale:          1,
		WindowsByClass: make(map[string][]uintptr),
		Enumerated:     make(map[string]int),
		DeadWindows:    make(map[uintptr]bool),
		reservations:   make(map[uintptr]reservation),
	}
}

// WithScreens replaces the attached displays and derives the virtual screen
// and primary size from them
func (m *MockShell) WithScreens(screens ...geometry.Screen) *MockShell {
	m.ScreenList = screens

	var virtual geometry.Rect
	for _, s := range screens {
		virtual = virtual.Union(s.Bounds)

		if s.Primary {
			m.PrimarySize = s.Bounds.Size()
			m.SysWorkArea = s.WorkArea
		}
	}

	m.Virtual = virtual
	return m
}

// WithDpiScale sets the reported DPI scale
func (m *MockShell) WithDpiScale(scale float64) *MockShell {
	m.Scale = scale
	return m
}

// WithQueryPos installs a custom ABM_QUERYPOS adjustment
func (m *MockShell) WithQueryPos(fn func(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) geometry.Rect) *MockShell {
	m.QueryPosFunc = fn
	return m
}

// WithReservations makes ABM_QUERYPOS behave like the real shell: a
// candidate is pushed off every rectangle other bars have committed on the
// same edge, shrinking it rather than moving it.
func (m *MockShell) WithReservations() *MockShell {
	m.QueryPosFunc = m.avoidReservations
	return m
}

// WithShrinkingQueryPos makes the first n queries return a rectangle one
// pixel thinner than requested on the anchored side
func (m *MockShell) WithShrinkingQueryPos(n int) *MockShell {
	m.QueryPosFunc = shrinker(n)
	return m
}

// WithShrinkingSetPos makes the first n commits settle on a rectangle one
// pixel thinner than requested, as the shell does when another bar claims
// the edge between query and commit. A negative n shrinks every commit.
func (m *MockShell) WithShrinkingSetPos(n int) *MockShell {
	m.SetPosFunc = shrinker(n)
	return m
}

func shrinker(n int) func(uintptr, geometry.Edge, geometry.Rect) geometry.Rect {
	remaining := n

	return func(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) geometry.Rect {
		if remaining == 0 {
			return rc
		}

		if remaining > 0 {
			remaining--
		}

		switch edge {
		case geometry.EdgeTop:
			rc.Top++
		case geometry.EdgeBottom:
			rc.Bottom--
		case geometry.EdgeLeft:
			rc.Left++
		case geometry.EdgeRight:
			rc.Right--
		}

		return rc
	}
}

// WithNewError makes ABM_NEW fail
func (m *MockShell) WithNewError(err error) *MockShell {
	m.NewErr = err
	return m
}

// WithWindows registers top-level windows of class, in z-order
func (m *MockShell) WithWindows(class string, hwnds ...uintptr) *MockShell {
	m.WindowsByClass[class] = append(m.WindowsByClass[class], hwnds...)
	return m
}

// WithStartButton sets the start button handle
func (m *MockShell) WithStartButton(hwnd uintptr) *MockShell {
	m.StartButtonHwnd = hwnd
	return m
}

// WithDeadWindow marks hwnd as destroyed
func (m *MockShell) WithDeadWindow(hwnd uintptr) *MockShell {
	m.DeadWindows[hwnd] = true
	return m
}

// Ops returns the recorded protocol operations for hwnd, or for every
// window when hwnd is zero
func (m *MockShell) Ops(hwnd uintptr) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ops []string
	for _, c := range m.Calls {
		if hwnd == 0 || c.Hwnd == hwnd {
			ops = append(ops, c.Op)
		}
	}

	return ops
}

// CallsOf returns the recorded calls of one operation
func (m *MockShell) CallsOf(op string) []ShellCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var calls []ShellCall
	for _, c := range m.Calls {
		if c.Op == op {
			calls = append(calls, c)
		}
	}

	return calls
}

// Reserved returns the rectangle committed for hwnd
func (m *MockShell) Reserved(hwnd uintptr) (geometry.Rect, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reservations[hwnd]
	return r.rect, ok
}

// LastWorkArea returns the most recently installed work area
func (m *MockShell) LastWorkArea() (geometry.Rect, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.InstalledWorkAreas) == 0 {
		return geometry.Rect{}, false
	}

	return m.InstalledWorkAreas[len(m.InstalledWorkAreas)-1], true
}

// LastMove returns the most recent move of hwnd
func (m *MockShell) LastMove(hwnd uintptr) (geometry.Rect, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.Moves) - 1; i >= 0; i-- {
		if m.Moves[i].Hwnd == hwnd {
			return m.Moves[i].Rect, true
		}
	}

	return geometry.Rect{}, false
}

func (m *MockShell) record(c ShellCall) {
	m.mu.Lock()
	m.Calls = append(m.Calls, c)
	m.mu.Unlock()
}

func (m *MockShell) avoidReservations(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) geometry.Rect {
	m.mu.Lock()
	defer m.mu.Unlock()

	for other, r := range m.reservations {
		if other == hwnd || r.edge != edge {
			continue
		}

		switch edge {
		case geometry.EdgeTop:
			rc.Top = max(rc.Top, r.rect.Bottom)
		case geometry.EdgeBottom:
			rc.Bottom = min(rc.Bottom, r.rect.Top)
		case geometry.EdgeLeft:
			rc.Left = max(rc.Left, r.rect.Right)
		case geometry.EdgeRight:
			rc.Right = min(rc.Right, r.rect.Left)
		}
	}

	return rc
}

// AppBarShell

func (m *MockShell) RegisterCallbackMessage(name string) (uint32, error) {
	return m.CallbackMessage, m.CallbackMessageErr
}

func (m *MockShell) New(hwnd uintptr, callbackMsg uint32) error {
	m.record(ShellCall{Op: OpNew, Hwnd: hwnd, State: callbackMsg})
	return m.NewErr
}

func (m *MockShell) Remove(hwnd uintptr) error {
	m.record(ShellCall{Op: OpRemove, Hwnd: hwnd})

	m.mu.Lock()
	delete(m.reservations, hwnd)
	m.mu.Unlock()

	return nil
}

func (m *MockShell) QueryPos(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) (geometry.Rect, error) {
	m.record(ShellCall{Op: OpQueryPos, Hwnd: hwnd, Edge: edge, Rect: rc})

	if m.QueryPosErr != nil {
		return rc, m.QueryPosErr
	}

	if m.QueryPosFunc != nil {
		return m.QueryPosFunc(hwnd, edge, rc), nil
	}

	return rc, nil
}

func (m *MockShell) SetPos(hwnd uintptr, edge geometry.Edge, rc geometry.Rect) (geometry.Rect, error) {
	m.record(ShellCall{Op: OpSetPos, Hwnd: hwnd, Edge: edge, Rect: rc})

	if m.SetPosFunc != nil {
		rc = m.SetPosFunc(hwnd, edge, rc)
	}

	m.mu.Lock()
	m.reservations[hwnd] = reservation{edge: edge, rect: rc}
	m.mu.Unlock()

	return rc, nil
}

func (m *MockShell) SetState(hwnd uintptr, state uint32) error {
	m.record(ShellCall{Op: OpSetState, Hwnd: hwnd, State: state})
	return nil
}

func (m *MockShell) Activate(hwnd uintptr) error {
	m.record(ShellCall{Op: OpActivate, Hwnd: hwnd})
	return nil
}

func (m *MockShell) WindowPosChanged(hwnd uintptr) error {
	m.record(ShellCall{Op: OpWindowPosChanged, Hwnd: hwnd})
	return nil
}

// WindowFinder

func (m *MockShell) Windows(class string) iter.Seq[uintptr] {
	return func(yield func(uintptr) bool) {
		for _, hwnd := range m.WindowsByClass[class] {
			m.mu.Lock()
			m.Enumerated[class]++
			m.mu.Unlock()

			if !yield(hwnd) {
				return
			}
		}
	}
}

func (m *MockShell) StartButton() uintptr {
	return m.StartButtonHwnd
}

// WindowController

func (m *MockShell) Move(hwnd uintptr, rc geometry.Rect) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Moves = append(m.Moves, MoveCall{Hwnd: hwnd, Rect: rc})
	return nil
}

func (m *MockShell) SetVisible(hwnd uintptr, visible bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Visibility = append(m.Visibility, VisibilityCall{Hwnd: hwnd, Visible: visible})
	return nil
}

func (m *MockShell) ShowAsync(hwnd uintptr, visible bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AsyncShows = append(m.AsyncShows, VisibilityCall{Hwnd: hwnd, Visible: visible})
	return nil
}

func (m *MockShell) IsWindow(hwnd uintptr) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return hwnd != 0 && !m.DeadWindows[hwnd]
}

// DisplayInfo

func (m *MockShell) Screens() ([]geometry.Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ScreensErr != nil {
		return nil, m.ScreensErr
	}

	out := make([]geometry.Screen, len(m.ScreenList))
	copy(out, m.ScreenList)

	return out, nil
}

func (m *MockShell) VirtualScreen() geometry.Rect     { return m.Virtual }
func (m *MockShell) PrimaryDeviceSize() geometry.Size { return m.PrimarySize }
func (m *MockShell) SystemWorkArea() geometry.Rect    { return m.SysWorkArea }
func (m *MockShell) DpiScale() float64                { return m.Scale }

// SetScreens swaps the display configuration at runtime, as a hot-plug would
func (m *MockShell) SetScreens(screens ...geometry.Screen) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ScreenList = screens
}

// WorkAreaStore

func (m *MockShell) WorkArea() (geometry.Rect, error) {
	if rc, ok := m.LastWorkArea(); ok {
		return rc, nil
	}

	return m.SysWorkArea, nil
}

func (m *MockShell) SetWorkArea(rc geometry.Rect) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetWorkAreaErr != nil {
		return m.SetWorkAreaErr
	}

	m.InstalledWorkAreas = append(m.InstalledWorkAreas, rc)
	return nil
}
