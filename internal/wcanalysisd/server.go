package wcanalysisd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/webconnectivityqa"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux returns the mux serving the handler at / and the
// prometheus metrics at /metrics.
func NewMux(handler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Serve serves requests on the listener until ctx is done. The
// listener address is logged, so listening on port zero works.
func Serve(ctx context.Context, logger model.Logger, listener net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           NewMux(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Infof("serving classification requests at http://%s/", listener.Addr().String())
	logger.Infof("serving prometheus metrics at http://%s/metrics", listener.Addr().String())

	errch := make(chan error, 1)
	go func() {
		errch <- srv.Serve(listener)
	}()

	select {
	case err := <-errch:
		return err
	case <-ctx.Done():
	}

	// shutdown the server awaiting for connections being
	// served to terminate before returning.
	logger.Infof("waiting for pending requests to complete")
	shutdown(srv)
	if err := <-errch; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// shutdown calls srv.Shutdown with a reasonably long timeout such that
// pending requests have time to complete.
func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

// ErrSelfCheck indicates that the classifier does not pass the QA test cases.
var ErrSelfCheck = errors.New("wcanalysisd: self check failed")

// SelfCheck runs the QA test cases with the default classifier settings
// and returns an error wrapping [ErrSelfCheck] on the first failure.
func SelfCheck(logger model.Logger) error {
	cases := webconnectivityqa.AllTestCases()
	for _, tc := range cases {
		err := webconnectivityqa.RunTestCase(model.DiscardLogger, tc, nil, webconnectivityqa.ScenarioASNs())
		if err != nil {
			return fmt.Errorf("%w: %s: %s", ErrSelfCheck, tc.Name, err.Error())
		}
	}
	logger.Infof("self check: %d test cases passed", len(cases))
	return nil
}
