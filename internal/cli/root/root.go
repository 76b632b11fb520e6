// Package root contains the root command.
package root

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/ooni/wcanalysis/internal/config"
	"github.com/ooni/wcanalysis/internal/log/handlers/cli"
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/version"
)

// Cmd is the root command
var Cmd = kingpin.New("wcanalysis", "Web Connectivity blocking classifier.")

// Command is syntax sugar for defining sub-commands
var Command = Cmd.Command

var (
	configPath = Cmd.Flag("config", "Set a custom config file path").Short('c').Default("").String()
	verbose    = Cmd.Flag("verbose", "Enable verbose log output.").Short('v').Default("false").Bool()
)

func init() {
	Cmd.PreAction(func(ctx *kingpin.ParseContext) error {
		log.SetHandler(cli.Default)
		log.SetLevel(log.InfoLevel)
		if *verbose {
			log.SetLevel(log.DebugLevel)
			log.Debugf("wcanalysis version %s", version.Version)
		}
		return nil
	})
}

// Init loads the configuration for the subcommands that need it.
func Init() (*config.Config, error) {
	if *configPath == "" {
		log.Debug("Using the default config")
		return config.Default(), nil
	}
	log.Debugf("Reading config file from %s", *configPath)
	return config.LoadFile(*configPath)
}

// Logger returns the logger for the analyzers, which are
// only chatty when running in verbose mode.
func Logger() model.Logger {
	if *verbose {
		return log.Log
	}
	return model.DiscardLogger
}
