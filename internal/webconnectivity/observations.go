package webconnectivity

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ooni/wcanalysis/internal/config"
	"github.com/ooni/wcanalysis/internal/errorsx"
	"github.com/ooni/wcanalysis/internal/geoipx"
	"github.com/ooni/wcanalysis/internal/model"
)

// Observations contains what the probe and the control observed when
// measuring a single URL. The requests are in reverse order: the final
// request of the redirect chain comes first.
type Observations struct {
	Input                 string                                    `json:"input"`
	Queries               []*model.ArchivalDNSLookupResult          `json:"queries"`
	TCPConnect            []*model.ArchivalTCPConnectResult         `json:"tcp_connect"`
	TLSHandshakes         []*model.ArchivalTLSOrQUICHandshakeResult `json:"tls_handshakes"`
	Requests              []*model.ArchivalHTTPRequestResult        `json:"requests"`
	Control               *model.THResponse                         `json:"control"`
	ControlFailure        *string                                   `json:"control_failure"`
	DNSExperimentFailure  *string                                   `json:"dns_experiment_failure"`
	HTTPExperimentFailure *string                                   `json:"http_experiment_failure"`
	HTTPFailedOperation   string                                    `json:"http_failed_operation,omitempty"`
}

// ErrInvalidInput indicates that the observations input is not a valid URL.
var ErrInvalidInput = errors.New("webconnectivity: invalid input URL")

// AnalyzeObservations runs the analyzers on the observations and
// returns the resulting signals. A nil lookup means [geoipx.LookupASN].
func AnalyzeObservations(
	logger model.Logger, obs *Observations, cfg *config.Classifier, lookup geoipx.ASNLookupper) (*Signals, error) {
	logger = model.ValidLoggerOrDefault(logger)
	URL, err := url.Parse(obs.Input)
	if err != nil || URL.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInput, obs.Input)
	}
	domain := URL.Hostname()
	out := &Signals{}

	var ctrl ControlResult
	if obs.ControlFailure != nil {
		ctrl.ControlFailure = obs.ControlFailure
	} else {
		ctrl = ReconcileControl(logger, obs.Control, nil)
	}
	out.ControlFailure = ctrl.ControlFailure
	out.ControlHTTPFailure = ctrl.ControlHTTPFailure

	out.DNSExperimentFailure = obs.DNSExperimentFailure
	if out.DNSExperimentFailure == nil {
		out.DNSExperimentFailure = DNSExperimentFailure(domain, obs.Queries)
	}
	if ctrl.Usable() {
		out.DNSAnalysisResult, _ = AnalyzeDNS(
			logger, domain, obs.Queries, obs.TLSHandshakes, &ctrl.Response.DNS, lookup)
	}

	for _, tcp := range obs.TCPConnect {
		out.TCPConnectAttempts++
		if tcp.Status.Success {
			out.TCPConnectSuccesses++
		}
	}

	out.HTTPExperimentFailure = obs.HTTPExperimentFailure
	if out.HTTPExperimentFailure == nil && len(obs.Requests) > 0 {
		out.HTTPExperimentFailure = obs.Requests[0].Failure
	}
	if out.HTTPExperimentFailure != nil {
		out.HTTPFailedOperation = obs.HTTPFailedOperation
		if out.HTTPFailedOperation == "" {
			out.HTTPFailedOperation = failedOperation(*out.HTTPExperimentFailure, obs)
		}
	}

	out.NoRequests = len(obs.Requests) <= 0 && out.HTTPExperimentFailure == nil

	if len(obs.Requests) > 0 && out.HTTPExperimentFailure == nil {
		final := obs.Requests[0]
		out.Secure = strings.HasPrefix(final.Request.URL, "https://")
		if ctrl.Usable() && ctrl.ControlHTTPFailure == nil {
			out.HTTPAnalysisResult = AnalyzeHTTP(&final.Response, &ctrl.Response.HTTPRequest, cfg)
		}
	}
	return out, nil
}

// failedOperation guesses the operation that caused failure by looking
// for the same failure among the TLS handshakes and the TCP connects.
func failedOperation(failure string, obs *Observations) string {
	for _, hs := range obs.TLSHandshakes {
		if hs.Failure != nil && *hs.Failure == failure {
			return errorsx.TLSHandshakeOperation
		}
	}
	for _, tcp := range obs.TCPConnect {
		if tcp.Status.Failure != nil && *tcp.Status.Failure == failure {
			return errorsx.ConnectOperation
		}
	}
	if len(obs.TCPConnect) > 0 {
		return errorsx.HTTPRoundTripOperation
	}
	return errorsx.UnknownOperation
}

// Measure analyzes the observations and classifies the resulting signals.
func Measure(
	logger model.Logger, obs *Observations, cfg *config.Classifier, lookup geoipx.ASNLookupper) (*TestKeys, error) {
	signals, err := AnalyzeObservations(logger, obs, cfg, lookup)
	if err != nil {
		return nil, err
	}
	tk := &TestKeys{Signals: *signals}
	if err := ClassifyTestKeysSafely(tk, cfg); err != nil {
		return nil, err
	}
	tk.Log(model.ValidLoggerOrDefault(logger))
	return tk, nil
}
