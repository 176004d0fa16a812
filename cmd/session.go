package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/dockbar/internal/appbar"
	"github.com/Norgate-AV/dockbar/internal/config"
	"github.com/Norgate-AV/dockbar/internal/dispatch"
	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
	"github.com/Norgate-AV/dockbar/internal/timeouts"
	"github.com/Norgate-AV/dockbar/internal/windows"
)

// Injectable for testing
var (
	newLogger   = initializeLogger
	newPlatform = openPlatform
)

func openPlatform(log logger.LoggerInterface) (interfaces.Platform, error) {
	c, err := windows.NewPlatform(log)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// session holds everything a subcommand needs to drive the engine
type session struct {
	cfg        *Config
	log        logger.LoggerInterface
	settings   *config.Settings
	platform   interfaces.Platform
	dispatcher *dispatch.Dispatcher
	engine     *appbar.Engine
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg := NewConfigFromFlags(cmd)

	path, err := config.ResolvePath(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(settings.LogOptions(cfg.Verbose))
	if err != nil {
		return nil, err
	}

	log.Debug("Starting dockbar",
		slog.String("command", cmd.Name()),
		slog.String("version", cmd.Root().Version),
	)

	log.Debug("Settings loaded",
		slog.String("path", path),
		slog.Float64("menuBarHeight", settings.MenuBar.Height),
		slog.Float64("taskbarHeight", settings.Taskbar.Height),
		slog.Bool("reserveTaskbar", settings.Taskbar.ReserveSpace),
		slog.String("logPath", log.GetLogPath()),
	)

	platform, err := newPlatform(log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to open shell: %w", err)
	}

	d := dispatch.New(log, timeouts.IdleSettleDelay)

	return &session{
		cfg:        cfg,
		log:        log,
		settings:   settings,
		platform:   platform,
		dispatcher: d,
		engine:     appbar.NewEngine(platform, d, nil, settings.Engine(), log),
	}, nil
}

func (s *session) Close() {
	s.log.Close()
}

// runSession opens a session, runs fn and recovers any panic it raises
func runSession(cmd *cobra.Command, fn func(s *session) error) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	defer s.Close()
	defer recoverPanic(s.log, &err)

	return fn(s)
}
