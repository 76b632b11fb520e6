// Package version contains the version command.
package version

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/ooni/wcanalysis/internal/cli/root"
	"github.com/ooni/wcanalysis/internal/version"
)

func init() {
	cmd := root.Command("version", "Show version.")
	cmd.Action(func(_ *kingpin.ParseContext) error {
		fmt.Println(version.Version)
		return nil
	})
}
