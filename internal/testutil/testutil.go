// Package testutil provides test utilities and mock implementations.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Norgate-AV/dockbar/internal/geometry"
)

// WriteConfigFile writes a settings file into a fresh temp directory and
// returns its path
func WriteConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	return path
}

// DualScreens returns a 1920x1080 primary display with a 1280x1024 display
// to its right, neither with any reserved space
func DualScreens() []geometry.Screen {
	primary := geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	secondary := geometry.Rect{Left: 1920, Top: 0, Right: 3200, Bottom: 1024}

	return []geometry.Screen{
		{Handle: 0x10001, Device: `\\.\DISPLAY1`, Bounds: primary, WorkArea: primary, Primary: true},
		{Handle: 0x10002, Device: `\\.\DISPLAY2`, Bounds: secondary, WorkArea: secondary},
	}
}
