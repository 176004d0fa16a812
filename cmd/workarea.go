package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var workAreaCmd = &cobra.Command{
	Use:   "workarea",
	Short: "Set the desktop work area from the bar settings",
}

var workAreaApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Reserve the menu bar and taskbar space from settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, func(s *session) error {
			rc, err := s.engine.ApplyWorkArea()
			if err != nil {
				return err
			}

			s.log.Info("Work area applied", slog.String("rect", rc.String()))
			fmt.Fprintln(cmd.OutOrStdout(), rc)

			return nil
		})
	},
}

var workAreaResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Give the whole virtual screen back to ordinary windows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, func(s *session) error {
			rc, err := s.engine.ResetWorkArea()
			if err != nil {
				return err
			}

			s.log.Info("Work area reset", slog.String("rect", rc.String()))
			fmt.Fprintln(cmd.OutOrStdout(), rc)

			return nil
		})
	},
}

func init() {
	workAreaCmd.AddCommand(workAreaApplyCmd, workAreaResetCmd)
	RootCmd.AddCommand(workAreaCmd)
}
