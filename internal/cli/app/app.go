// Package app contains the app entry point.
package app

import (
	"os"

	"github.com/ooni/wcanalysis/internal/cli/root"
	"github.com/ooni/wcanalysis/internal/version"
)

// Run the app. This is the main app entry point
func Run() error {
	return RunWithArgs(os.Args[1:])
}

// RunWithArgs is like [Run] with explicit command line arguments.
func RunWithArgs(args []string) error {
	root.Cmd.Version(version.Version)
	_, err := root.Cmd.Parse(args)
	return err
}
