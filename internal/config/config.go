// Package config loads the dockbar settings file.
//
// Settings are read-only: dockbar never writes the file back. A missing file
// yields the defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Norgate-AV/dockbar/internal/appbar"
	"github.com/Norgate-AV/dockbar/internal/logger"
	"github.com/Norgate-AV/dockbar/internal/workarea"
)

// EnvConfigPath overrides the default settings file location
const EnvConfigPath = "DOCKBAR_CONFIG"

const (
	maxBarHeight   = 500
	maxMaxAttempts = 50
	maxLogSizeMB   = 1024
)

// Settings is the on-disk settings file
type Settings struct {
	MenuBar     MenuBarSettings     `yaml:"menu_bar"`
	Taskbar     TaskbarSettings     `yaml:"taskbar"`
	Tray        TraySettings        `yaml:"tray"`
	Negotiation NegotiationSettings `yaml:"negotiation"`
	Logging     LoggingSettings     `yaml:"logging"`
}

type MenuBarSettings struct {
	// Height in device-independent pixels
	Height float64 `yaml:"height"`
}

type TaskbarSettings struct {
	// Enabled hides the OS taskbars in favour of the host's own
	Enabled bool `yaml:"enabled"`

	Height float64 `yaml:"height"`

	// ReserveSpace removes the taskbar's strip from the work area
	ReserveSpace bool `yaml:"reserve_space"`

	// Mode is "docked" (below the menu bar) or "floating" (bottom edge)
	Mode string `yaml:"mode"`
}

type TraySettings struct {
	Enabled bool `yaml:"enabled"`
}

type NegotiationSettings struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// LoggingSettings controls the diagnostic log file and its rotation
type LoggingSettings struct {
	// Dir overrides %LOCALAPPDATA%\dockbar
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() *Settings {
	d := appbar.DefaultSettings()

	return &Settings{
		MenuBar: MenuBarSettings{Height: d.MenuBarHeight},
		Taskbar: TaskbarSettings{
			Height:       d.TaskbarHeight,
			ReserveSpace: d.ReserveTaskbar,
			Mode:         d.TaskbarMode.String(),
		},
		Negotiation: NegotiationSettings{MaxAttempts: d.MaxAttempts},
		Logging: LoggingSettings{
			MaxSizeMB:  logger.DefaultMaxSizeMB,
			MaxBackups: logger.DefaultMaxBackups,
			MaxAgeDays: logger.DefaultMaxAgeDays,
			Compress:   true,
		},
	}
}

// DefaultPath returns the per-user settings file path
// (%APPDATA%\dockbar\config.yaml on Windows)
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(dir, "dockbar", "config.yaml"), nil
}

// ResolvePath picks the settings file: an explicit flag value wins, then the
// DOCKBAR_CONFIG environment variable, then DefaultPath
func ResolvePath(flagValue string) (string, error) {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p, nil
	}

	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}

	return DefaultPath()
}

// Load reads and validates the settings file at path. Keys missing from the
// file keep their default values; unknown keys are rejected.
func Load(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}

		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return s, nil
}

// Validate checks value ranges
func (s *Settings) Validate() error {
	var errs []error

	if s.MenuBar.Height < 0 || s.MenuBar.Height > maxBarHeight {
		errs = append(errs, fmt.Errorf("menu_bar.height must be between 0 and %d, got %v", maxBarHeight, s.MenuBar.Height))
	}

	if s.Taskbar.Height < 0 || s.Taskbar.Height > maxBarHeight {
		errs = append(errs, fmt.Errorf("taskbar.height must be between 0 and %d, got %v", maxBarHeight, s.Taskbar.Height))
	}

	if _, err := workarea.ParseTaskbarMode(s.Taskbar.Mode); err != nil {
		errs = append(errs, fmt.Errorf("taskbar.mode: %w", err))
	}

	if s.Negotiation.MaxAttempts < 1 || s.Negotiation.MaxAttempts > maxMaxAttempts {
		errs = append(errs, fmt.Errorf("negotiation.max_attempts must be between 1 and %d, got %d", maxMaxAttempts, s.Negotiation.MaxAttempts))
	}

	if s.Logging.MaxSizeMB < 1 || s.Logging.MaxSizeMB > maxLogSizeMB {
		errs = append(errs, fmt.Errorf("logging.max_size_mb must be between 1 and %d, got %d", maxLogSizeMB, s.Logging.MaxSizeMB))
	}

	if s.Logging.MaxBackups < 0 {
		errs = append(errs, fmt.Errorf("logging.max_backups must not be negative, got %d", s.Logging.MaxBackups))
	}

	if s.Logging.MaxAgeDays < 0 {
		errs = append(errs, fmt.Errorf("logging.max_age_days must not be negative, got %d", s.Logging.MaxAgeDays))
	}

	return errors.Join(errs...)
}

// Engine converts the file settings into engine settings. Settings must
// have passed Validate.
func (s *Settings) Engine() appbar.Settings {
	mode, _ := workarea.ParseTaskbarMode(s.Taskbar.Mode)

	return appbar.Settings{
		MenuBarHeight:  s.MenuBar.Height,
		TaskbarHeight:  s.Taskbar.Height,
		ReserveTaskbar: s.Taskbar.ReserveSpace,
		TaskbarMode:    mode,
		TaskbarEnabled: s.Taskbar.Enabled,
		TrayEnabled:    s.Tray.Enabled,
		MaxAttempts:    s.Negotiation.MaxAttempts,
	}
}

// LogOptions converts the logging section into logger options
func (s *Settings) LogOptions(verbose bool) logger.Options {
	return logger.Options{
		Verbose:    verbose,
		Dir:        s.Logging.Dir,
		MaxSizeMB:  s.Logging.MaxSizeMB,
		MaxBackups: s.Logging.MaxBackups,
		MaxAgeDays: s.Logging.MaxAgeDays,
		Compress:   s.Logging.Compress,
	}
}
