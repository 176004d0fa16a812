package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/dockbar/internal/geometry"
	"github.com/Norgate-AV/dockbar/internal/interfaces"
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List displays and the geometry the engine sees",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, func(s *session) error {
			return printMonitors(cmd.OutOrStdout(), s)
		})
	},
}

func init() {
	RootCmd.AddCommand(monitorsCmd)
}

// taskbarInfo is implemented by backends that can report the OS taskbar
type taskbarInfo interface {
	TaskbarPosition() (geometry.Edge, geometry.Rect, error)
}

var header = color.New(color.FgCyan, color.Bold)

func printMonitors(w io.Writer, s *session) error {
	p := s.engine.Display()

	screens, err := s.platform.Screens()
	if err != nil {
		return fmt.Errorf("failed to enumerate displays: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	_, _ = header.Fprintln(tw, "#\tDEVICE\tPRIMARY\tBOUNDS\tWORK AREA")
	for i, sc := range screens {
		primary := ""
		if sc.Primary {
			primary = "yes"
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, sc.Device, primary, sc.Bounds, sc.WorkArea)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	_, _ = header.Fprintln(w, "GEOMETRY")

	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Virtual screen\t%s\n", p.VirtualScreen())
	fmt.Fprintf(tw, "Primary size\t%s\n", p.PrimaryMonitorSize())
	fmt.Fprintf(tw, "Primary device size\t%s\n", p.PrimaryMonitorDeviceSize())
	fmt.Fprintf(tw, "Primary work area\t%s\n", p.PrimaryMonitorWorkArea())
	fmt.Fprintf(tw, "DPI scale\t%.2f\n", p.DpiScale())
	printTaskbar(tw, s.platform)

	return tw.Flush()
}

func printTaskbar(w io.Writer, platform interfaces.Platform) {
	info, ok := platform.(taskbarInfo)
	if !ok {
		return
	}

	edge, rc, err := info.TaskbarPosition()
	if err != nil {
		fmt.Fprintf(w, "OS taskbar\tunavailable (%v)\n", err)
		return
	}

	fmt.Fprintf(w, "OS taskbar\t%s %s\n", edge, rc)
}
