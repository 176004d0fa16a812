// Package main is the entry point for the dockbar command-line tool.
package main

import (
	"os"

	"github.com/Norgate-AV/dockbar/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
