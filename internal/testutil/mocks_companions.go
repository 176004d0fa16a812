package testutil

// MockTray implements interfaces.Tray
type MockTray struct {
	Hwnd            uintptr
	MakeActiveCalls int
}

func NewMockTray(hwnd uintptr) *MockTray {
	return &MockTray{Hwnd: hwnd}
}

func (m *MockTray) Handle() uintptr { return m.Hwnd }
func (m *MockTray) MakeActive()     { m.MakeActiveCalls++ }

// MockDesktop implements interfaces.Desktop
type MockDesktop struct {
	ResetCalls int
}

func NewMockDesktop() *MockDesktop {
	return &MockDesktop{}
}

func (m *MockDesktop) ResetPosition() { m.ResetCalls++ }

// MockShadow implements interfaces.Shadow
type MockShadow struct {
	OwnerHwnd        uintptr
	SetPositionCalls int
}

func NewMockShadow(owner uintptr) *MockShadow {
	return &MockShadow{OwnerHwnd: owner}
}

func (m *MockShadow) Owner() uintptr { return m.OwnerHwnd }
func (m *MockShadow) SetPosition()   { m.SetPositionCalls++ }
