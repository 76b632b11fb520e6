// Command wcanalysis classifies Web Connectivity measurements.
package main

import (
	"github.com/apex/log"
	"github.com/ooni/wcanalysis/internal/cli/app"
	_ "github.com/ooni/wcanalysis/internal/cli/classify"
	_ "github.com/ooni/wcanalysis/internal/cli/qa"
	_ "github.com/ooni/wcanalysis/internal/cli/serve"
	_ "github.com/ooni/wcanalysis/internal/cli/version"
)

func main() {
	err := app.Run()
	if err == nil {
		return
	}
	log.WithError(err).Fatal("main exit")
}
