package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/dockbar/internal/config"
	"github.com/Norgate-AV/dockbar/internal/logger"
	"github.com/Norgate-AV/dockbar/internal/version"
)

// RootCmd is the root command for the dockbar CLI application.
var RootCmd = &cobra.Command{
	Use:   "dockbar",
	Short: "dockbar - Dock windows to screen edges as shell app bars",
	Long: `dockbar registers top-level windows with the Windows shell as app bars,
reserving a strip of screen space for them and keeping them docked as
displays come and go.`,
	Version:      version.Get().String(),
	Args:         cobra.NoArgs,
	RunE:         Execute,
	SilenceUsage: true, // Don't show usage on runtime errors
}

func init() {
	RootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	RootCmd.PersistentFlags().BoolP("verbose", "V", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolP("logs", "l", false, "print the current log file to stdout and exit")
	RootCmd.PersistentFlags().StringP("config", "c", "", "settings file (default $DOCKBAR_CONFIG or the user config dir)")
}

// handleLogsFlag processes the --logs flag and exits if needed
func handleLogsFlag(cfg *Config, exitFunc func(int)) error {
	if !cfg.ShowLogs {
		return nil
	}

	opts := logOptions(cfg)

	if err := logger.PrintLogFile(nil, opts); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Log file does not exist: %s\n", opts.Path())
			exitFunc(1)
		}

		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		exitFunc(1)
	}

	exitFunc(0)
	return nil // Won't actually reach here due to exitFunc
}

// logOptions reads the logging section of the settings file. An unreadable
// file falls back to the default log location so --logs still works.
func logOptions(cfg *Config) logger.Options {
	settings := config.DefaultSettings()

	if path, err := config.ResolvePath(cfg.ConfigPath); err == nil {
		if s, err := config.Load(path); err == nil {
			settings = s
		}
	}

	return settings.LogOptions(cfg.Verbose)
}

// initializeLogger opens the log file
func initializeLogger(opts logger.Options) (logger.LoggerInterface, error) {
	log, err := logger.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

// recoverPanic logs a recovered panic with its stack and turns it into an
// error. It must be deferred directly.
func recoverPanic(log logger.LoggerInterface, err *error) {
	r := recover()
	if r == nil {
		return
	}

	log.Error("PANIC RECOVERED",
		slog.Any("panic", r),
		slog.String("stack", string(debug.Stack())),
	)

	fmt.Fprintf(os.Stderr, "\n*** PANIC: %v ***\n", r)
	fmt.Fprintf(os.Stderr, "Check log file for details\n")

	*err = fmt.Errorf("panic: %v", r)
}

// Execute runs the root command. Without a subcommand it only serves --logs.
func Execute(cmd *cobra.Command, args []string) error {
	cfg := NewConfigFromFlags(cmd)

	if err := handleLogsFlag(cfg, os.Exit); err != nil {
		return err
	}

	return cmd.Help()
}
