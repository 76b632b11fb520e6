// Package serve contains the serve command.
package serve

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/ooni/wcanalysis/internal/cli/root"
	"github.com/ooni/wcanalysis/internal/wcanalysisd"
	"github.com/pkg/errors"
)

func init() {
	cmd := root.Command("serve", "Serve classification requests over HTTP.")
	listenFlag := cmd.Flag("listen", "Endpoint where to listen (overrides service.listen)").Default("").String()
	skipSelfCheck := cmd.Flag("skip-self-check", "Do not run the QA test cases before serving").Default("false").Bool()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		cfg, err := root.Init()
		if err != nil {
			return err
		}
		if *listenFlag != "" {
			cfg.Service.Listen = *listenFlag
		}
		if !*skipSelfCheck {
			if err := wcanalysisd.SelfCheck(log.Log); err != nil {
				return err
			}
		}

		listener, err := net.Listen("tcp", cfg.Service.Listen)
		if err != nil {
			return errors.Wrap(err, "listening")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return wcanalysisd.Serve(ctx, log.Log, listener, wcanalysisd.NewHandler(cfg))
	})
}
