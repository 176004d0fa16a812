package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var taskbarCmd = &cobra.Command{
	Use:   "taskbar",
	Short: "Control the OS taskbar",
}

// taskbarAction builds a subcommand that runs one coordinator call
func taskbarAction(use, short string, fn func(s *session) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, func(s *session) error {
				if err := fn(s); err != nil {
					return err
				}

				s.log.Info("OS taskbar updated", slog.String("action", use))
				return nil
			})
		},
	}
}

func init() {
	taskbarCmd.AddCommand(
		taskbarAction("hide", "Hide the OS taskbar, start button and secondary taskbars", func(s *session) error {
			return s.engine.SetVisibility(true)
		}),
		taskbarAction("show", "Show the OS taskbars again", func(s *session) error {
			return s.engine.SetVisibility(false)
		}),
		taskbarAction("autohide", "Switch the OS taskbar to auto-hide", func(s *session) error {
			return s.engine.SetState(true)
		}),
		taskbarAction("ontop", "Switch the OS taskbar to always-on-top", func(s *session) error {
			return s.engine.SetState(false)
		}),
	)

	RootCmd.AddCommand(taskbarCmd)
}
